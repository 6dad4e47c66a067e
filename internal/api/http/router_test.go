package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/observability"
)

func newRoutedApp(t *testing.T, rateLimit config.RateLimitConfig) *fiber.App {
	t.Helper()

	tokens, err := auth.NewTokenManager("test-secret", 0)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(errorHandlingMiddleware(zap.NewNop(), observability.NewMetrics(), false))

	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("catalog-service", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(nil),
		Products:       handlers.NewProductsHandler(nil, nil),
		Categories:     handlers.NewCategoriesHandler(nil),
		Uploads:        handlers.NewUploadsHandler(nil),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, nil),
		RateLimit:      rateLimit,
		UploadDir:      t.TempDir(),
	})
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	payload := map[string]any{}
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp.StatusCode, payload
}

func TestUnknownRouteEnvelope(t *testing.T) {
	app := newRoutedApp(t, config.RateLimitConfig{Max: 100, WindowSeconds: 60})

	status, payload := getJSON(t, app, "/definitely-missing")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "error", payload["status"])
	assert.Equal(t, "Can't find /definitely-missing on this server!", payload["message"])
}

func TestRateLimitEnvelope(t *testing.T) {
	app := newRoutedApp(t, config.RateLimitConfig{Max: 1, WindowSeconds: 60})

	status, _ := getJSON(t, app, "/api/health")
	require.Equal(t, http.StatusOK, status)

	status, payload := getJSON(t, app, "/api/health")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "fail", payload["status"])
	assert.Equal(t, "Too many requests from this IP, please try again later.", payload["message"])
}

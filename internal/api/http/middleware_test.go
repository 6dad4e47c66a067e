package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/observability"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

func newBoundaryApp(devMode bool, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(errorHandlingMiddleware(zap.NewNop(), observability.NewMetrics(), devMode))
	app.Get("/test", handler)
	return app
}

func performBoundary(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	payload := map[string]any{}
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp.StatusCode, payload
}

func TestErrorBoundaryProduction(t *testing.T) {
	t.Run("StoreConflict", func(t *testing.T) {
		app := newBoundaryApp(false, func(c *fiber.Ctx) error {
			return &pgconn.PgError{Code: "23505", Message: "duplicate key"}
		})
		status, payload := performBoundary(t, app)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "fail", payload["status"])
		assert.Equal(t, "Duplicate field value entered", payload["message"])
	})

	t.Run("NotFoundOnMutate", func(t *testing.T) {
		app := newBoundaryApp(false, func(c *fiber.Ctx) error {
			return pgx.ErrNoRows
		})
		status, payload := performBoundary(t, app)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Record not found", payload["message"])
	})

	t.Run("OperationalMessageKept", func(t *testing.T) {
		app := newBoundaryApp(false, func(c *fiber.Ctx) error {
			return apperrors.NewForbidden("Your account has been deactivated")
		})
		status, payload := performBoundary(t, app)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "fail", payload["status"])
		assert.Equal(t, "Your account has been deactivated", payload["message"])
	})

	t.Run("UnknownFaultSuppressed", func(t *testing.T) {
		app := newBoundaryApp(false, func(c *fiber.Ctx) error {
			return errors.New("nil pointer in productFromInput")
		})
		status, payload := performBoundary(t, app)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "error", payload["status"])
		assert.Equal(t, "Something went wrong!", payload["message"])
		_, hasStack := payload["stack"]
		assert.False(t, hasStack)
		_, hasError := payload["error"]
		assert.False(t, hasError)
	})

	t.Run("PanicRecovered", func(t *testing.T) {
		app := newBoundaryApp(false, func(c *fiber.Ctx) error {
			panic("boom")
		})
		status, payload := performBoundary(t, app)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Something went wrong!", payload["message"])
	})

	t.Run("SuccessUntouched", func(t *testing.T) {
		app := newBoundaryApp(false, func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "success"})
		})
		status, payload := performBoundary(t, app)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "success", payload["status"])
	})
}

func TestErrorBoundaryDevelopment(t *testing.T) {
	app := newBoundaryApp(true, func(c *fiber.Ctx) error {
		return errors.New("nil pointer in productFromInput")
	})
	status, payload := performBoundary(t, app)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, payload["message"], "nil pointer")
	assert.Contains(t, payload, "stack")
	assert.Contains(t, payload, "error")
}

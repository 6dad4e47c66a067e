package http

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/observability"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg config.AppConfig) {
	if timeout := cfg.RequestTimeout(); timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics, !cfg.IsProduction()))
	app.Use(observability.RequestLogger(logger, metrics))

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join([]string{cfg.FrontendURL, cfg.BaseURL}, ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
	}))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware is the single boundary where every fault becomes a
// response. Production mode sends the normalized envelope; development mode
// returns the raw fault detail instead.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, devMode bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = fmt.Errorf("panic: %v", r)
			}
			if err == nil {
				return
			}

			appErr := apperrors.Normalize(err)
			metrics.RecordError(c.Path(), c.Method(), appErr.StatusCode)

			if devMode {
				c.Status(appErr.StatusCode)
				_ = c.JSON(fiber.Map{
					"status":  appErr.Status,
					"message": err.Error(),
					"error":   fmt.Sprintf("%+v", err),
					"stack":   string(debug.Stack()),
				})
				err = nil
				return
			}

			if !appErr.IsOperational {
				logger.Error("request failed", zap.Error(err))
			}
			c.Status(appErr.StatusCode)
			_ = c.JSON(fiber.Map{
				"status":  appErr.Status,
				"message": appErr.Message,
			})
			err = nil
		}()
		return c.Next()
	}
}

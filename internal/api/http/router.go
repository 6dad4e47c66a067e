package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductsHandler
	Categories     *handlers.CategoriesHandler
	Uploads        *handlers.UploadsHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimit      config.RateLimitConfig
	UploadDir      string
}

// RegisterRoutes wires HTTP routes. Protected groups run Authenticate before
// any role gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	// Uploaded images are public and cacheable for a year.
	app.Static("/uploads", cfg.UploadDir, fiber.Static{
		MaxAge: 31536000,
	})

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: cfg.RateLimit.Window(),
		LimitReached: func(c *fiber.Ctx) error {
			return apperrors.New("Too many requests from this IP, please try again later.", fiber.StatusTooManyRequests)
		},
	}))

	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Authenticate, cfg.Auth.Me)

	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/trending", cfg.Products.Trending)
	products.Get("/featured", cfg.Products.Featured)
	products.Get("/:slug", cfg.Products.Get)

	adminProducts := products.Group("", cfg.AuthMiddleware.Authenticate, auth.RequireRole(domain.RoleAdmin))
	adminProducts.Post("/", cfg.Products.Create)
	adminProducts.Post("/bulk", cfg.Products.CreateBulk)
	adminProducts.Patch("/:slug", cfg.Products.Update)
	adminProducts.Patch("/:slug/image", cfg.Products.UploadImage)
	adminProducts.Delete("/:slug", cfg.Products.Delete)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:slug", cfg.Categories.Get)

	adminCategories := categories.Group("", cfg.AuthMiddleware.Authenticate, auth.RequireRole(domain.RoleAdmin))
	adminCategories.Post("/", cfg.Categories.Create)
	adminCategories.Post("/bulk", cfg.Categories.CreateBulk)
	adminCategories.Patch("/:slug", cfg.Categories.Update)
	adminCategories.Delete("/:slug", cfg.Categories.Delete)

	uploads := api.Group("/upload", cfg.AuthMiddleware.Authenticate, auth.RequireRole(domain.RoleAdmin))
	uploads.Post("/single", cfg.Uploads.Single)
	uploads.Post("/multiple", cfg.Uploads.Multiple)
	uploads.Delete("/", cfg.Uploads.Delete)

	// 404 catch-all, after every registered route. Unknown routes always
	// report status "error", bypassing the boundary's fail/error split.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": fmt.Sprintf("Can't find %s on this server!", c.OriginalURL()),
		})
	})
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/repository"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// ProductsHandler manages catalog product endpoints.
type ProductsHandler struct {
	products *service.ProductService
	uploads  *service.UploadService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService, uploads *service.UploadService) *ProductsHandler {
	return &ProductsHandler{products: products, uploads: uploads}
}

// List GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		CategorySlug: c.Query("categorySlug"),
		Search:       c.Query("search"),
	}
	if raw := c.Query("trending"); raw != "" {
		v := raw == "true"
		filter.Trending = &v
	}
	if raw := c.Query("isFeatured"); raw != "" {
		v := raw == "true"
		filter.IsFeatured = &v
	}
	if raw := c.Query("inStock"); raw != "" {
		v := raw == "true"
		filter.InStock = &v
	}

	products, pagination, err := h.products.List(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"results":    len(products),
		"pagination": pagination,
		"data":       dto.NewProductResponses(products),
	})
}

// Trending GET /api/products/trending.
func (h *ProductsHandler) Trending(c *fiber.Ctx) error {
	products, err := h.products.Trending(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(products),
		"data":    dto.NewProductResponses(products),
	})
}

// Featured GET /api/products/featured.
func (h *ProductsHandler) Featured(c *fiber.Ctx) error {
	products, err := h.products.Featured(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(products),
		"data":    dto.NewProductResponses(products),
	})
}

// Get GET /api/products/:slug.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   dto.NewProductResponse(product),
	})
}

// Create POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Name == "" || req.Slug == "" || req.CategoryID == "" {
		return apperrors.NewBadRequest("name, slug, categoryId required")
	}

	product, err := h.products.Create(c.Context(), req.ToProductInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   dto.NewProductResponse(product),
	})
}

// CreateBulk POST /api/products/bulk.
func (h *ProductsHandler) CreateBulk(c *fiber.Ctx) error {
	var req dto.BulkCreateProductsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if len(req.Products) == 0 {
		return apperrors.NewBadRequest("products required")
	}

	inputs := make([]service.ProductInput, 0, len(req.Products))
	for _, product := range req.Products {
		if product.Name == "" || product.Slug == "" || product.CategoryID == "" {
			return apperrors.NewBadRequest("name, slug, categoryId required for every product")
		}
		inputs = append(inputs, product.ToProductInput())
	}

	created, err := h.products.CreateBulk(c.Context(), inputs)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("%d products created successfully", created),
	})
}

// Update PATCH /api/products/:slug.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	product, err := h.products.Update(c.Context(), c.Params("slug"), req.ToProductUpdateInput())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   dto.NewProductResponse(product),
	})
}

// UploadImage PATCH /api/products/:slug/image.
func (h *ProductsHandler) UploadImage(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewBadRequest("Please upload an image file")
	}

	stored, err := h.uploads.Save(header)
	if err != nil {
		return err
	}

	product, err := h.products.AddImage(c.Context(), c.Params("slug"), stored.URL)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   dto.NewProductResponse(product),
	})
}

// Delete DELETE /api/products/:slug.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.Context(), c.Params("slug")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

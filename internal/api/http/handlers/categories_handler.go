package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// CategoriesHandler manages catalog category endpoints.
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// List GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(categories),
		"data":    dto.NewCategoryResponses(categories),
	})
}

// Get GET /api/categories/:slug — the category plus a page of its products.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, products, pagination, err := h.categories.GetWithProducts(
		c.Context(), c.Params("slug"), c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"category":   dto.NewCategoryResponse(category),
			"products":   dto.NewProductResponses(products),
			"pagination": pagination,
		},
	})
}

// Create POST /api/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Name == "" || req.Slug == "" {
		return apperrors.NewBadRequest("name and slug required")
	}

	category, err := h.categories.Create(c.Context(), req.ToCategoryInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   dto.NewCategoryResponse(category),
	})
}

// CreateBulk POST /api/categories/bulk.
func (h *CategoriesHandler) CreateBulk(c *fiber.Ctx) error {
	var req dto.BulkCreateCategoriesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if len(req.Categories) == 0 {
		return apperrors.NewBadRequest("categories required")
	}

	inputs := make([]service.CategoryInput, 0, len(req.Categories))
	for _, category := range req.Categories {
		if category.Name == "" || category.Slug == "" {
			return apperrors.NewBadRequest("name and slug required for every category")
		}
		inputs = append(inputs, category.ToCategoryInput())
	}

	created, err := h.categories.CreateBulk(c.Context(), inputs)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("%d categories created successfully", created),
	})
}

// Update PATCH /api/categories/:slug.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	category, err := h.categories.Update(c.Context(), c.Params("slug"), req.ToCategoryUpdateInput())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   dto.NewCategoryResponse(category),
	})
}

// Delete DELETE /api/categories/:slug.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.Context(), c.Params("slug")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

package dto

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/service"
)

// CreateCategoryRequest payload for new categories.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	Order       *int    `json:"order,omitempty"`
}

// UpdateCategoryRequest payload for partial updates.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	Order       *int    `json:"order,omitempty"`
}

// BulkCreateCategoriesRequest payload for batch creation.
type BulkCreateCategoriesRequest struct {
	Categories []CreateCategoryRequest `json:"categories"`
}

// CategoryResponse is the API shape for categories.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Image       *string   `json:"image,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToCategoryInput maps the request into the service input.
func (r CreateCategoryRequest) ToCategoryInput() service.CategoryInput {
	return service.CategoryInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Image:       r.Image,
		Description: r.Description,
		IsActive:    r.IsActive,
		Order:       r.Order,
	}
}

// ToCategoryUpdateInput maps the request into the service input.
func (r UpdateCategoryRequest) ToCategoryUpdateInput() service.CategoryUpdateInput {
	return service.CategoryUpdateInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Image:       r.Image,
		Description: r.Description,
		IsActive:    r.IsActive,
		Order:       r.Order,
	}
}

// NewCategoryResponse maps a domain category to its API shape.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Image:       category.Image,
		Description: category.Description,
		IsActive:    category.IsActive,
		Order:       category.Order,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// NewCategoryResponses maps a category list.
func NewCategoryResponses(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, NewCategoryResponse(category))
	}
	return out
}

package dto

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/service"
)

// CreateProductRequest payload for new products.
type CreateProductRequest struct {
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	CategoryID        string   `json:"categoryId"`
	Description       string   `json:"description"`
	LongDescription   string   `json:"longDescription"`
	Images            []string `json:"images"`
	Materials         []string `json:"materials"`
	KeyFeatures       []string `json:"keyFeatures"`
	Trending          bool     `json:"trending"`
	IsFeatured        bool     `json:"isFeatured"`
	InStock           *bool    `json:"inStock,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	MetaDescription   *string  `json:"metaDescription,omitempty"`
	SchemaType        *string  `json:"schemaType,omitempty"`
	SchemaDescription *string  `json:"schemaDescription,omitempty"`
	SchemaImage       *string  `json:"schemaImage,omitempty"`
	SchemaCategory    *string  `json:"schemaCategory,omitempty"`
}

// UpdateProductRequest payload for partial updates.
type UpdateProductRequest struct {
	Name              *string  `json:"name,omitempty"`
	Slug              *string  `json:"slug,omitempty"`
	CategoryID        *string  `json:"categoryId,omitempty"`
	Description       *string  `json:"description,omitempty"`
	LongDescription   *string  `json:"longDescription,omitempty"`
	Images            []string `json:"images,omitempty"`
	Materials         []string `json:"materials,omitempty"`
	KeyFeatures       []string `json:"keyFeatures,omitempty"`
	Trending          *bool    `json:"trending,omitempty"`
	IsFeatured        *bool    `json:"isFeatured,omitempty"`
	InStock           *bool    `json:"inStock,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	MetaDescription   *string  `json:"metaDescription,omitempty"`
	SchemaType        *string  `json:"schemaType,omitempty"`
	SchemaDescription *string  `json:"schemaDescription,omitempty"`
	SchemaImage       *string  `json:"schemaImage,omitempty"`
	SchemaCategory    *string  `json:"schemaCategory,omitempty"`
}

// BulkCreateProductsRequest payload for batch creation.
type BulkCreateProductsRequest struct {
	Products []CreateProductRequest `json:"products"`
}

// CategoryRefResponse is the joined category summary on product payloads.
type CategoryRefResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductResponse is the API shape for products.
type ProductResponse struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Slug              string               `json:"slug"`
	CategoryID        string               `json:"categoryId"`
	CategorySlug      string               `json:"categorySlug"`
	Description       string               `json:"description"`
	LongDescription   string               `json:"longDescription"`
	Images            []string             `json:"images"`
	Materials         []string             `json:"materials"`
	KeyFeatures       []string             `json:"keyFeatures"`
	Trending          bool                 `json:"trending"`
	IsFeatured        bool                 `json:"isFeatured"`
	InStock           bool                 `json:"inStock"`
	Price             *float64             `json:"price,omitempty"`
	MetaDescription   *string              `json:"metaDescription,omitempty"`
	SchemaType        *string              `json:"schemaType,omitempty"`
	SchemaDescription *string              `json:"schemaDescription,omitempty"`
	SchemaImage       *string              `json:"schemaImage,omitempty"`
	SchemaCategory    *string              `json:"schemaCategory,omitempty"`
	Category          *CategoryRefResponse `json:"category,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// ToProductInput maps the request into the service input.
func (r CreateProductRequest) ToProductInput() service.ProductInput {
	return service.ProductInput{
		Name:              r.Name,
		Slug:              r.Slug,
		CategoryID:        r.CategoryID,
		Description:       r.Description,
		LongDescription:   r.LongDescription,
		Images:            r.Images,
		Materials:         r.Materials,
		KeyFeatures:       r.KeyFeatures,
		Trending:          r.Trending,
		IsFeatured:        r.IsFeatured,
		InStock:           r.InStock,
		Price:             r.Price,
		MetaDescription:   r.MetaDescription,
		SchemaType:        r.SchemaType,
		SchemaDescription: r.SchemaDescription,
		SchemaImage:       r.SchemaImage,
		SchemaCategory:    r.SchemaCategory,
	}
}

// ToProductUpdateInput maps the request into the service input.
func (r UpdateProductRequest) ToProductUpdateInput() service.ProductUpdateInput {
	return service.ProductUpdateInput{
		Name:              r.Name,
		Slug:              r.Slug,
		CategoryID:        r.CategoryID,
		Description:       r.Description,
		LongDescription:   r.LongDescription,
		Images:            r.Images,
		Materials:         r.Materials,
		KeyFeatures:       r.KeyFeatures,
		Trending:          r.Trending,
		IsFeatured:        r.IsFeatured,
		InStock:           r.InStock,
		Price:             r.Price,
		MetaDescription:   r.MetaDescription,
		SchemaType:        r.SchemaType,
		SchemaDescription: r.SchemaDescription,
		SchemaImage:       r.SchemaImage,
		SchemaCategory:    r.SchemaCategory,
	}
}

// NewProductResponse maps a domain product to its API shape.
func NewProductResponse(product *domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:                product.ID,
		Name:              product.Name,
		Slug:              product.Slug,
		CategoryID:        product.CategoryID,
		CategorySlug:      product.CategorySlug,
		Description:       product.Description,
		LongDescription:   product.LongDescription,
		Images:            product.Images,
		Materials:         product.Materials,
		KeyFeatures:       product.KeyFeatures,
		Trending:          product.Trending,
		IsFeatured:        product.IsFeatured,
		InStock:           product.InStock,
		Price:             product.Price,
		MetaDescription:   product.MetaDescription,
		SchemaType:        product.SchemaType,
		SchemaDescription: product.SchemaDescription,
		SchemaImage:       product.SchemaImage,
		SchemaCategory:    product.SchemaCategory,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
	if product.Category != nil {
		resp.Category = &CategoryRefResponse{Name: product.Category.Name, Slug: product.Category.Slug}
	}
	return resp
}

// NewProductResponses maps a product list.
func NewProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, NewProductResponse(product))
	}
	return out
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/cache"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	"github.com/spec-kit/catalog-service/pkg/util"
)

const curatedListSize = 6

// ProductInput carries fields for creating a product.
type ProductInput struct {
	Name              string
	Slug              string
	CategoryID        string
	Description       string
	LongDescription   string
	Images            []string
	Materials         []string
	KeyFeatures       []string
	Trending          bool
	IsFeatured        bool
	InStock           *bool
	Price             *float64
	MetaDescription   *string
	SchemaType        *string
	SchemaDescription *string
	SchemaImage       *string
	SchemaCategory    *string
}

// ProductUpdateInput carries partial-update fields; nil means unchanged.
type ProductUpdateInput struct {
	Name              *string
	Slug              *string
	CategoryID        *string
	Description       *string
	LongDescription   *string
	Images            []string
	Materials         []string
	KeyFeatures       []string
	Trending          *bool
	IsFeatured        *bool
	InStock           *bool
	Price             *float64
	MetaDescription   *string
	SchemaType        *string
	SchemaDescription *string
	SchemaImage       *string
	SchemaCategory    *string
}

// ProductService coordinates product CRUD and curated list caching.
type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      *cache.CatalogCache
	dispatcher events.Dispatcher
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, catalogCache *cache.CatalogCache, dispatcher events.Dispatcher) *ProductService {
	return &ProductService{products: products, categories: categories, cache: catalogCache, dispatcher: dispatcher}
}

// List returns a filtered product page, newest first.
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter, page, limit int) ([]*domain.Product, util.Pagination, error) {
	page, limit, offset := util.PageParams(page, limit)

	products, err := s.products.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	return products, util.NewPagination(page, limit, total), nil
}

// GetBySlug loads a single product.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

// Trending returns the curated trending list, served from cache when warm.
func (s *ProductService) Trending(ctx context.Context) ([]*domain.Product, error) {
	return s.curatedList(ctx, cache.KeyTrending, func(f *repository.ProductFilter, flag *bool) {
		f.Trending = flag
	})
}

// Featured returns the curated featured list, served from cache when warm.
func (s *ProductService) Featured(ctx context.Context) ([]*domain.Product, error) {
	return s.curatedList(ctx, cache.KeyFeatured, func(f *repository.ProductFilter, flag *bool) {
		f.IsFeatured = flag
	})
}

func (s *ProductService) curatedList(ctx context.Context, key string, mark func(*repository.ProductFilter, *bool)) ([]*domain.Product, error) {
	if products, ok := s.cache.GetProducts(ctx, key); ok {
		return products, nil
	}

	flag := true
	inStock := true
	filter := repository.ProductFilter{InStock: &inStock}
	mark(&filter, &flag)

	products, err := s.products.List(ctx, filter, curatedListSize, 0)
	if err != nil {
		return nil, err
	}
	s.cache.SetProducts(ctx, key, products)
	return products, nil
}

// Create adds a product after validating its category and slug.
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Category not found")
		}
		return nil, err
	}

	if _, err := s.products.GetBySlug(ctx, input.Slug); err == nil {
		return nil, util.NewBadRequest("Product with this slug already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	product := productFromInput(input, category)
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	product.Category = &domain.CategoryRef{Name: category.Name, Slug: category.Slug}

	s.publish(ctx, events.EventProductCreated, product.Slug)
	return product, nil
}

// CreateBulk inserts several products after validating every category and slug.
func (s *ProductService) CreateBulk(ctx context.Context, inputs []ProductInput) (int, error) {
	categoryIDs := make([]string, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		if _, ok := seen[input.CategoryID]; ok {
			continue
		}
		seen[input.CategoryID] = struct{}{}
		categoryIDs = append(categoryIDs, input.CategoryID)
	}

	categories, err := s.categories.ListByIDs(ctx, categoryIDs)
	if err != nil {
		return 0, err
	}
	if len(categories) != len(categoryIDs) {
		return 0, util.NewNotFound("One or more categories not found")
	}
	byID := make(map[string]*domain.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	slugs := make([]string, 0, len(inputs))
	for _, input := range inputs {
		slugs = append(slugs, input.Slug)
	}
	existing, err := s.products.ListSlugs(ctx, slugs)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, util.NewBadRequest("Some products with these slugs already exist")
	}

	products := make([]*domain.Product, 0, len(inputs))
	for _, input := range inputs {
		products = append(products, productFromInput(input, byID[input.CategoryID]))
	}

	created, err := s.products.CreateMany(ctx, products)
	if err != nil {
		return created, err
	}

	s.publish(ctx, events.EventProductCreated, "")
	return created, nil
}

// Update applies a partial update addressed by slug.
func (s *ProductService) Update(ctx context.Context, slug string, input ProductUpdateInput) (*domain.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *input.CategoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, util.NewNotFound("Category not found")
			}
			return nil, err
		}
		product.CategoryID = category.ID
		product.CategorySlug = category.Slug
		product.Category = &domain.CategoryRef{Name: category.Name, Slug: category.Slug}
	}

	if input.Slug != nil && *input.Slug != slug {
		if _, err := s.products.GetBySlug(ctx, *input.Slug); err == nil {
			return nil, util.NewBadRequest("Product with this slug already exists")
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		product.Slug = *input.Slug
	}

	applyProductUpdate(product, input)

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventProductUpdated, product.Slug)
	return product, nil
}

// Delete removes a product by slug.
func (s *ProductService) Delete(ctx context.Context, slug string) error {
	if _, err := s.products.GetBySlug(ctx, slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Product not found")
		}
		return err
	}

	if err := s.products.Delete(ctx, slug); err != nil {
		return err
	}

	s.publish(ctx, events.EventProductDeleted, slug)
	return nil
}

// AddImage appends an uploaded image URL to the product's gallery.
func (s *ProductService) AddImage(ctx context.Context, slug, fileURL string) (*domain.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Product not found")
		}
		return nil, err
	}

	product.Images = append(product.Images, fileURL)
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventProductUpdated, slug)
	return product, nil
}

func (s *ProductService) publish(ctx context.Context, eventType events.EventType, slug string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Slug:      slug,
		Timestamp: time.Now(),
	})
}

func productFromInput(input ProductInput, category *domain.Category) *domain.Product {
	product := &domain.Product{
		Name:              input.Name,
		Slug:              input.Slug,
		CategoryID:        category.ID,
		CategorySlug:      category.Slug,
		Description:       input.Description,
		LongDescription:   input.LongDescription,
		Images:            input.Images,
		Materials:         input.Materials,
		KeyFeatures:       input.KeyFeatures,
		Trending:          input.Trending,
		IsFeatured:        input.IsFeatured,
		InStock:           true,
		Price:             input.Price,
		MetaDescription:   input.MetaDescription,
		SchemaType:        input.SchemaType,
		SchemaDescription: input.SchemaDescription,
		SchemaImage:       input.SchemaImage,
		SchemaCategory:    input.SchemaCategory,
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	return product
}

func applyProductUpdate(product *domain.Product, input ProductUpdateInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.LongDescription != nil {
		product.LongDescription = *input.LongDescription
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Materials != nil {
		product.Materials = input.Materials
	}
	if input.KeyFeatures != nil {
		product.KeyFeatures = input.KeyFeatures
	}
	if input.Trending != nil {
		product.Trending = *input.Trending
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.Price != nil {
		product.Price = input.Price
	}
	if input.MetaDescription != nil {
		product.MetaDescription = input.MetaDescription
	}
	if input.SchemaType != nil {
		product.SchemaType = input.SchemaType
	}
	if input.SchemaDescription != nil {
		product.SchemaDescription = input.SchemaDescription
	}
	if input.SchemaImage != nil {
		product.SchemaImage = input.SchemaImage
	}
	if input.SchemaCategory != nil {
		product.SchemaCategory = input.SchemaCategory
	}
}

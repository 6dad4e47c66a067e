package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	"github.com/spec-kit/catalog-service/pkg/util"
)

// CategoryInput carries fields for creating a category.
type CategoryInput struct {
	Name        string
	Slug        string
	Image       *string
	Description *string
	IsActive    *bool
	Order       *int
}

// CategoryUpdateInput carries partial-update fields; nil means unchanged.
type CategoryUpdateInput struct {
	Name        *string
	Slug        *string
	Image       *string
	Description *string
	IsActive    *bool
	Order       *int
}

// CategoryService coordinates category CRUD.
type CategoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
}

// NewCategoryService builds the service.
func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository, dispatcher events.Dispatcher) *CategoryService {
	return &CategoryService{categories: categories, products: products, dispatcher: dispatcher}
}

// List returns active categories in display order.
func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.ListActive(ctx)
}

// GetWithProducts loads an active category plus a page of its in-stock products.
func (s *CategoryService) GetWithProducts(ctx context.Context, slug string, page, limit int) (*domain.Category, []*domain.Product, util.Pagination, error) {
	page, limit, offset := util.PageParams(page, limit)

	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, util.Pagination{}, util.NewNotFound("Category not found")
		}
		return nil, nil, util.Pagination{}, err
	}
	if !category.IsActive {
		return nil, nil, util.Pagination{}, util.NewNotFound("Category not found")
	}

	inStock := true
	filter := repository.ProductFilter{CategorySlug: slug, InStock: &inStock}

	products, err := s.products.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, nil, util.Pagination{}, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, nil, util.Pagination{}, err
	}

	return category, products, util.NewPagination(page, limit, total), nil
}

// Create adds a category after checking the slug is free.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	if _, err := s.categories.GetBySlug(ctx, input.Slug); err == nil {
		return nil, util.NewBadRequest("Category with this slug already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	category := categoryFromInput(input)
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.publish(ctx, category.Slug)
	return category, nil
}

// CreateBulk inserts several categories, rejecting the batch when any slug exists.
func (s *CategoryService) CreateBulk(ctx context.Context, inputs []CategoryInput) (int, error) {
	slugs := make([]string, 0, len(inputs))
	categories := make([]*domain.Category, 0, len(inputs))
	for _, input := range inputs {
		slugs = append(slugs, input.Slug)
		categories = append(categories, categoryFromInput(input))
	}

	existing, err := s.categories.ListSlugs(ctx, slugs)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, util.NewBadRequest("Some categories with these slugs already exist")
	}

	created, err := s.categories.CreateMany(ctx, categories)
	if err != nil {
		return created, err
	}

	s.publish(ctx, "")
	return created, nil
}

// Update applies a partial update addressed by slug.
func (s *CategoryService) Update(ctx context.Context, slug string, input CategoryUpdateInput) (*domain.Category, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if input.Slug != nil && *input.Slug != slug {
		if _, err := s.categories.GetBySlug(ctx, *input.Slug); err == nil {
			return nil, util.NewBadRequest("Category with this slug already exists")
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		category.Slug = *input.Slug
	}
	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Image != nil {
		category.Image = input.Image
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if input.Order != nil {
		category.Order = *input.Order
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}

	s.publish(ctx, category.Slug)
	return category, nil
}

// Delete removes a category that has no products left.
func (s *CategoryService) Delete(ctx context.Context, slug string) error {
	if _, err := s.categories.GetBySlug(ctx, slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Category not found")
		}
		return err
	}

	count, err := s.products.CountByCategorySlug(ctx, slug)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.NewBadRequest("Cannot delete category with existing products")
	}

	if err := s.categories.Delete(ctx, slug); err != nil {
		return err
	}

	s.publish(ctx, slug)
	return nil
}

func (s *CategoryService) publish(ctx context.Context, slug string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCategoryChanged,
		Slug:      slug,
		Timestamp: time.Now(),
	})
}

func categoryFromInput(input CategoryInput) *domain.Category {
	category := &domain.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Image:       input.Image,
		Description: input.Description,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if input.Order != nil {
		category.Order = *input.Order
	}
	return category
}

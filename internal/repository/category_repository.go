package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// CategoryRepository defines persistence access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	CreateMany(ctx context.Context, categories []*domain.Category) (int, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, slug string) error
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	ListActive(ctx context.Context) ([]*domain.Category, error)
	ListSlugs(ctx context.Context, slugs []string) ([]string, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Category, error)
}

type categoryRepository struct {
	db DB
}

// NewCategoryRepository returns a Postgres-backed implementation.
func NewCategoryRepository(db DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `id, name, slug, image, description, is_active, sort_order, created_at, updated_at`

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, slug, image, description, is_active, sort_order)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		category.Name,
		category.Slug,
		category.Image,
		category.Description,
		category.IsActive,
		category.Order,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

// CreateMany inserts categories, skipping slugs that already exist.
func (r *categoryRepository) CreateMany(ctx context.Context, categories []*domain.Category) (int, error) {
	const query = `
        INSERT INTO categories (name, slug, image, description, is_active, sort_order)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (slug) DO NOTHING`

	created := 0
	for _, category := range categories {
		cmd, err := r.db.Exec(ctx, query,
			category.Name,
			category.Slug,
			category.Image,
			category.Description,
			category.IsActive,
			category.Order,
		)
		if err != nil {
			return created, err
		}
		created += int(cmd.RowsAffected())
	}
	return created, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories
        SET name=$1, slug=$2, image=$3, description=$4, is_active=$5, sort_order=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.db.Exec(ctx, query,
		category.Name,
		category.Slug,
		category.Image,
		category.Description,
		category.IsActive,
		category.Order,
		category.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, slug string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM categories WHERE slug=$1`, slug)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE slug=$1`
	return r.scanCategory(r.db.QueryRow(ctx, query, slug))
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE id=$1`
	return r.scanCategory(r.db.QueryRow(ctx, query, id))
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]*domain.Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE is_active ORDER BY sort_order ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := r.scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// ListSlugs returns the subset of the given slugs that already exist.
func (r *categoryRepository) ListSlugs(ctx context.Context, slugs []string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT slug FROM categories WHERE slug = ANY($1)`, slugs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make([]string, 0)
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		existing = append(existing, slug)
	}
	return existing, rows.Err()
}

func (r *categoryRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := r.scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	if err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Image,
		&category.Description,
		&category.IsActive,
		&category.Order,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}

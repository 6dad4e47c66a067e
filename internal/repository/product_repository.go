package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/pkg/util"
)

// ProductFilter narrows product listings. Nil pointers mean "not filtered".
type ProductFilter struct {
	CategorySlug string
	Trending     *bool
	IsFeatured   *bool
	InStock      *bool
	Search       string
}

// ProductRepository defines persistence access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	CreateMany(ctx context.Context, products []*domain.Product) (int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, slug string) error
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*domain.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
	CountByCategorySlug(ctx context.Context, categorySlug string) (int, error)
	ListSlugs(ctx context.Context, slugs []string) ([]string, error)
}

type productRepository struct {
	db DB
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(db DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `p.id, p.name, p.slug, p.category_id, p.category_slug, p.description,
        p.long_description, p.images, p.materials, p.key_features, p.trending, p.is_featured,
        p.in_stock, p.price, p.meta_description, p.schema_type, p.schema_description,
        p.schema_image, p.schema_category, c.name, c.slug, p.created_at, p.updated_at`

const productSelect = `SELECT ` + productColumns + `
        FROM products p JOIN categories c ON c.id = p.category_id`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, slug, category_id, category_slug, description, long_description,
            images, materials, key_features, trending, is_featured, in_stock, price,
            meta_description, schema_type, schema_description, schema_image, schema_category)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		product.Name,
		product.Slug,
		product.CategoryID,
		product.CategorySlug,
		product.Description,
		product.LongDescription,
		util.StringifyJSONArray(product.Images),
		util.StringifyJSONArray(product.Materials),
		util.StringifyJSONArray(product.KeyFeatures),
		product.Trending,
		product.IsFeatured,
		product.InStock,
		product.Price,
		product.MetaDescription,
		product.SchemaType,
		product.SchemaDescription,
		product.SchemaImage,
		product.SchemaCategory,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

// CreateMany inserts products, skipping slugs that already exist.
func (r *productRepository) CreateMany(ctx context.Context, products []*domain.Product) (int, error) {
	const query = `
        INSERT INTO products (name, slug, category_id, category_slug, description, long_description,
            images, materials, key_features, trending, is_featured, in_stock, price,
            meta_description, schema_type, schema_description, schema_image, schema_category)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        ON CONFLICT (slug) DO NOTHING`

	created := 0
	for _, product := range products {
		cmd, err := r.db.Exec(ctx, query,
			product.Name,
			product.Slug,
			product.CategoryID,
			product.CategorySlug,
			product.Description,
			product.LongDescription,
			util.StringifyJSONArray(product.Images),
			util.StringifyJSONArray(product.Materials),
			util.StringifyJSONArray(product.KeyFeatures),
			product.Trending,
			product.IsFeatured,
			product.InStock,
			product.Price,
			product.MetaDescription,
			product.SchemaType,
			product.SchemaDescription,
			product.SchemaImage,
			product.SchemaCategory,
		)
		if err != nil {
			return created, err
		}
		created += int(cmd.RowsAffected())
	}
	return created, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products
        SET name=$1, slug=$2, category_id=$3, category_slug=$4, description=$5, long_description=$6,
            images=$7, materials=$8, key_features=$9, trending=$10, is_featured=$11, in_stock=$12,
            price=$13, meta_description=$14, schema_type=$15, schema_description=$16,
            schema_image=$17, schema_category=$18, updated_at=NOW()
        WHERE id=$19`

	cmd, err := r.db.Exec(ctx, query,
		product.Name,
		product.Slug,
		product.CategoryID,
		product.CategorySlug,
		product.Description,
		product.LongDescription,
		util.StringifyJSONArray(product.Images),
		util.StringifyJSONArray(product.Materials),
		util.StringifyJSONArray(product.KeyFeatures),
		product.Trending,
		product.IsFeatured,
		product.InStock,
		product.Price,
		product.MetaDescription,
		product.SchemaType,
		product.SchemaDescription,
		product.SchemaImage,
		product.SchemaCategory,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, slug string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE slug=$1`, slug)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := productSelect + ` WHERE p.slug=$1`
	return r.scanProduct(r.db.QueryRow(ctx, query, slug))
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*domain.Product, error) {
	where, args := buildProductWhere(filter)
	query := fmt.Sprintf(`%s%s ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`,
		productSelect, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepository) Count(ctx context.Context, filter ProductFilter) (int, error) {
	where, args := buildProductWhere(filter)
	query := `SELECT COUNT(*) FROM products p` + where

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *productRepository) CountByCategorySlug(ctx context.Context, categorySlug string) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_slug=$1`, categorySlug).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ListSlugs returns the subset of the given slugs that already exist.
func (r *productRepository) ListSlugs(ctx context.Context, slugs []string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT slug FROM products WHERE slug = ANY($1)`, slugs)
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

func buildProductWhere(filter ProductFilter) (string, []any) {
	clauses := make([]string, 0, 5)
	args := make([]any, 0, 5)

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.CategorySlug != "" {
		add("p.category_slug = $%d", filter.CategorySlug)
	}
	if filter.Trending != nil {
		add("p.trending = $%d", *filter.Trending)
	}
	if filter.IsFeatured != nil {
		add("p.is_featured = $%d", *filter.IsFeatured)
	}
	if filter.InStock != nil {
		add("p.in_stock = $%d", *filter.InStock)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *productRepository) scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		product   domain.Product
		images    string
		materials string
		features  string
		catRef    domain.CategoryRef
	)
	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.CategoryID,
		&product.CategorySlug,
		&product.Description,
		&product.LongDescription,
		&images,
		&materials,
		&features,
		&product.Trending,
		&product.IsFeatured,
		&product.InStock,
		&product.Price,
		&product.MetaDescription,
		&product.SchemaType,
		&product.SchemaDescription,
		&product.SchemaImage,
		&product.SchemaCategory,
		&catRef.Name,
		&catRef.Slug,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}

	product.Images = util.ParseJSONArray(images)
	product.Materials = util.ParseJSONArray(materials)
	product.KeyFeatures = util.ParseJSONArray(features)
	product.Category = &catRef
	return &product, nil
}

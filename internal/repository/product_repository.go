package repository

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = "id, name, description, price, category, image_url, stock, created_at, updated_at"

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.Stock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// GetAll retrieves all products, optionally filtered by category.
func (r *productRepository) GetAll(ctx context.Context, category string) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY id`, productColumns)
	args := []any{}
	if category != "" {
		query = fmt.Sprintf(`SELECT %s FROM products WHERE category = $1 ORDER BY id`, productColumns)
		args = append(args, category)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product and returns the stored row.
func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := fmt.Sprintf(`
		INSERT INTO products (name, description, price, category, image_url, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.ImageURL,
		product.Stock,
	), &p)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", p.ID).Str("name", p.Name).Msg("product created")

	return &p, nil
}

// Update applies a partial update and returns the stored row.
func (r *productRepository) Update(ctx context.Context, id int64, update model.ProductUpdate) (*model.Product, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id}

	assign := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		assign("name", *update.Name)
	}
	if update.Description != nil {
		assign("description", *update.Description)
	}
	if update.Price != nil {
		assign("price", *update.Price)
	}
	if update.Category != nil {
		assign("category", *update.Category)
	}
	if update.ImageURL != nil {
		assign("image_url", *update.ImageURL)
	}
	if update.Stock != nil {
		assign("stock", *update.Stock)
	}

	query := fmt.Sprintf(`
		UPDATE products SET %s
		WHERE id = $1
		RETURNING %s
	`, strings.Join(set, ", "), productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, args...), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found for update")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	r.logger.Debug().Int64("product_id", p.ID).Msg("product updated")

	return &p, nil
}

// Delete removes a product. Deleting a missing id is not an error.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().Int64("product_id", id).Msg("product deleted")

	return nil
}

// Count returns the number of product rows.
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

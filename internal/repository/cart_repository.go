package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

const cartColumns = "id, user_id, product_id, quantity, created_at, updated_at"

func scanCartItem(row pgx.Row, item *model.CartItem) error {
	return row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}

// GetByUser retrieves all cart rows for a user.
func (r *cartRepository) GetByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM cart_items WHERE user_id = $1 ORDER BY id`, cartColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		if err := scanCartItem(rows, &item); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// AddItem inserts a cart row or atomically increments the quantity of the
// existing (user, product) row. The ON CONFLICT clause makes concurrent adds
// for the same pair safe without a prior read.
func (r *cartRepository) AddItem(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	query := fmt.Sprintf(`
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE
			SET quantity = cart_items.quantity + EXCLUDED.quantity,
			    updated_at = NOW()
		RETURNING %s
	`, cartColumns)

	var item model.CartItem
	err := scanCartItem(r.pool.QueryRow(ctx, query, userID, productID, quantity), &item)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("product_id", productID).
			Msg("failed to add cart item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	r.logger.Debug().
		Int64("cart_item_id", item.ID).
		Int("quantity", item.Quantity).
		Msg("cart item added")

	return &item, nil
}

// UpdateQuantity sets the row's quantity to exactly the given value.
func (r *cartRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) (*model.CartItem, error) {
	query := fmt.Sprintf(`
		UPDATE cart_items SET quantity = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, cartColumns)

	var item model.CartItem
	err := scanCartItem(r.pool.QueryRow(ctx, query, id, quantity), &item)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("cart_item_id", id).Msg("cart item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("cart_item_id", id).Msg("failed to update cart item")
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return &item, nil
}

// Remove deletes a cart row. Removing a missing id is not an error.
func (r *cartRepository) Remove(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("cart_item_id", id).Msg("failed to remove cart item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear deletes all cart rows for a user.
func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	r.logger.Debug().Int64("user_id", userID).Msg("cart cleared")

	return nil
}

// ClearTx deletes all cart rows for a user within the provided transaction.
func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear cart in transaction")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

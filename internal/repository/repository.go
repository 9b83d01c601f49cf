package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Upsert inserts a new user row or updates the existing one matched by
	// open id. Nil fields are left untouched on update. Returns an error if
	// the open id is empty (caller contract violation).
	Upsert(ctx context.Context, user model.UserUpsert) error

	// GetByOpenID retrieves a user by external identity. Returns (nil, nil)
	// when no row exists.
	GetByOpenID(ctx context.Context, openID string) (*model.User, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products, optionally filtered by category.
	// An empty category means no filter.
	GetAll(ctx context.Context, category string) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns (nil, nil) when
	// no row exists.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create inserts a new product and returns the stored row.
	Create(ctx context.Context, product *model.Product) (*model.Product, error)

	// Update applies a partial update and returns the stored row, or
	// (nil, nil) when the product does not exist.
	Update(ctx context.Context, id int64, update model.ProductUpdate) (*model.Product, error)

	// Delete removes a product. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of product rows.
	Count(ctx context.Context) (int64, error)
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// GetByUser retrieves all cart rows for a user.
	GetByUser(ctx context.Context, userID int64) ([]model.CartItem, error)

	// AddItem inserts a cart row or atomically increments the quantity of
	// the existing (user, product) row, and returns the stored row.
	AddItem(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error)

	// UpdateQuantity sets the row's quantity to exactly the given value and
	// returns the stored row, or (nil, nil) when the row does not exist.
	UpdateQuantity(ctx context.Context, id int64, quantity int) (*model.CartItem, error)

	// Remove deletes a cart row. Removing a missing id is not an error.
	Remove(ctx context.Context, id int64) error

	// Clear deletes all cart rows for a user.
	Clear(ctx context.Context, userID int64) error

	// ClearTx deletes all cart rows for a user within the provided
	// transaction. Used by the checkout workflow.
	ClearTx(ctx context.Context, tx pgx.Tx, userID int64) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and
	// fills in the generated ID and timestamps.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided
	// transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID. Returns (nil, nil) when no row
	// exists.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetByUser retrieves a user's orders, newest first.
	GetByUser(ctx context.Context, userID int64) ([]model.Order, error)

	// GetAll retrieves all orders, newest first.
	GetAll(ctx context.Context) ([]model.Order, error)

	// GetItems retrieves the line items of an order.
	GetItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	// UpdateStatus sets an order's status and returns the stored row, or
	// (nil, nil) when the order does not exist.
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error)
}

package service

import (
	"context"

	"storefront/internal/model"
)

// UserService defines operations for user identity management.
type UserService interface {
	// SignIn upserts the user row for a verified external identity and
	// returns the stored user. First sign-in of the configured owner
	// identity yields an admin role.
	SignIn(ctx context.Context, upsert model.UserUpsert) (*model.User, error)

	// GetByOpenID resolves a user by external identity. Returns (nil, nil)
	// when no row exists or storage is unavailable.
	GetByOpenID(ctx context.Context, openID string) (*model.User, error)
}

// ProductService defines operations for product management.
type ProductService interface {
	// List retrieves products, optionally filtered by category. Storage
	// failures degrade to an empty sequence.
	List(ctx context.Context, category string) ([]model.Product, error)

	// GetByID retrieves a single product. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create creates a product (admin operation, gated at the API boundary).
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// Update applies a partial update to a product.
	Update(ctx context.Context, req *model.UpdateProductRequest) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error
}

// CartService defines operations on one user's shopping cart.
type CartService interface {
	// GetItems returns the user's cart rows, each enriched with the current
	// product record. Storage failures degrade to an empty sequence.
	GetItems(ctx context.Context, userID int64) ([]model.CartItemWithProduct, error)

	// AddItem adds quantity of a product to the cart, merging with any
	// existing row for the same product.
	AddItem(ctx context.Context, userID int64, req *model.AddCartItemRequest) (*model.CartItem, error)

	// UpdateItem sets a cart row's quantity to exactly the given value.
	UpdateItem(ctx context.Context, req *model.UpdateCartItemRequest) (*model.CartItem, error)

	// RemoveItem deletes a cart row. Missing rows are not an error.
	RemoveItem(ctx context.Context, id int64) error

	// Clear deletes all of the user's cart rows.
	Clear(ctx context.Context, userID int64) error
}

// OrderService defines operations for order placement and history.
type OrderService interface {
	// Checkout converts the submitted cart snapshot into a persisted order.
	// Order insert, line-item inserts and the cart clear run in a single
	// transaction; the total is recomputed server-side and verified.
	Checkout(ctx context.Context, userID int64, req *model.CheckoutRequest) (*model.Order, error)

	// GetMyOrders returns a user's orders, newest first.
	GetMyOrders(ctx context.Context, userID int64) ([]model.Order, error)

	// GetByID retrieves an order. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetItems returns the line items of an order.
	GetItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	// UpdateStatus sets an order's status (admin operation).
	UpdateStatus(ctx context.Context, req *model.UpdateOrderStatusRequest) (*model.Order, error)

	// GetAllOrders returns every order, newest first (admin operation).
	GetAllOrders(ctx context.Context) ([]model.Order, error)
}

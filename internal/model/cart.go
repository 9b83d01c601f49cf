package model

import "time"

// CartItem binds one user to one product with a quantity. At most one row
// exists per (user, product) pair, backed by a unique constraint.
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CartItemWithProduct is a cart row enriched with the current product record.
// Product is nil when the referenced product no longer exists.
type CartItemWithProduct struct {
	CartItem
	Product *Product `json:"product"`
}

// AddCartItemRequest is the payload for cart.addItem.
type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartItemRequest is the payload for cart.updateItem. Quantity is the
// exact new value, not an increment.
type UpdateCartItemRequest struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalogue product. Price is a fixed-point decimal and
// serialises as a 2-fraction-digit string on the wire.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	ImageURL    *string         `json:"imageUrl" db:"image_url"`
	Stock       int             `json:"stock" db:"stock"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// CreateProductRequest is the payload for products.create.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       string  `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Stock       int     `json:"stock"`
}

// UpdateProductRequest is the payload for products.update. Nil fields are
// left unchanged.
type UpdateProductRequest struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	Category    *string `json:"category,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
}

// ProductUpdate is the repository-level partial update derived from an
// UpdateProductRequest after validation.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	ImageURL    *string
	Stock       *int
}

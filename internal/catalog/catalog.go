package catalog

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// Loader reads a product seed file and returns the seed records. The path
// meaning depends on the implementation (local file path or S3 key).
type Loader interface {
	Load(ctx context.Context, path string) ([]SeedProduct, error)
}

// SeedProduct is one line of a gzipped JSONL seed file.
type SeedProduct struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       string  `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Stock       int     `json:"stock"`
}

// ToProduct converts a seed record into a product, validating the price.
func (s SeedProduct) ToProduct() (*model.Product, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("seed product name is required")
	}
	if s.Category == "" {
		return nil, fmt.Errorf("seed product category is required")
	}
	price, err := decimal.NewFromString(s.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid seed price %q: %w", s.Price, err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("seed price %q is negative", s.Price)
	}

	return &model.Product{
		Name:        s.Name,
		Description: s.Description,
		Price:       price,
		Category:    s.Category,
		ImageURL:    s.ImageURL,
		Stock:       s.Stock,
	}, nil
}

package service

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products, optionally filtered by category. Storage failures
// degrade to an empty sequence so the catalogue stays browsable.
func (s *productService) List(ctx context.Context, category string) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx, category)
	if err != nil {
		s.logger.Warn().Err(err).Str("category", category).Msg("product listing failed, returning empty")
		return []model.Product{}, nil
	}
	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("category", category).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product. Absent products and storage failures
// both yield (nil, nil).
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("product lookup failed, returning absent")
		return nil, nil
	}
	return product, nil
}

// parsePrice parses a fixed-point decimal price string and enforces the
// non-negative invariant.
func parsePrice(raw string) (decimal.Decimal, *model.DomainError) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "price must be a decimal string")
	}
	if price.IsNegative() {
		return decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "price must not be negative")
	}
	return price, nil
}

// Create creates a product.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req == nil || req.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "product name is required")
	}
	if req.Category == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "product category is required")
	}
	price, derr := parsePrice(req.Price)
	if derr != nil {
		return nil, derr
	}
	if req.Stock < 0 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "stock must not be negative")
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return nil, model.ErrStorageUnavailable
	}

	s.logger.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("product created")

	return created, nil
}

// Update applies a partial update to a product.
func (s *productService) Update(ctx context.Context, req *model.UpdateProductRequest) (*model.Product, error) {
	if req == nil || req.ID <= 0 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "product id is required")
	}

	update := model.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}
	if req.Price != nil {
		price, derr := parsePrice(*req.Price)
		if derr != nil {
			return nil, derr
		}
		update.Price = &price
	}

	updated, err := s.productRepo.Update(ctx, req.ID, update)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", req.ID).Msg("failed to update product")
		return nil, model.ErrStorageUnavailable
	}
	if updated == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", updated.ID).Msg("product updated")

	return updated, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.NewDomainError(model.ErrCodeValidation, "product id is required")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return model.ErrStorageUnavailable
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return nil
}

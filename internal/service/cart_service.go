package service

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// GetItems returns the user's cart rows enriched with current product records.
// Prices reflect the catalogue as of now, not as of add-time.
func (s *cartService) GetItems(ctx context.Context, userID int64) ([]model.CartItemWithProduct, error) {
	items, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("cart listing failed, returning empty")
		return []model.CartItemWithProduct{}, nil
	}

	enriched := make([]model.CartItemWithProduct, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int64("product_id", item.ProductID).
				Msg("failed to enrich cart item with product")
			product = nil
		}
		enriched = append(enriched, model.CartItemWithProduct{
			CartItem: item,
			Product:  product,
		})
	}

	s.logger.Debug().
		Int64("user_id", userID).
		Int("count", len(enriched)).
		Msg("retrieved cart items")

	return enriched, nil
}

// AddItem adds quantity of a product to the cart. The quantity floor is
// enforced before any storage call.
func (s *cartService) AddItem(ctx context.Context, userID int64, req *model.AddCartItemRequest) (*model.CartItem, error) {
	if req == nil || req.ProductID <= 0 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "product id is required")
	}
	if req.Quantity < 1 {
		s.logger.Warn().
			Int64("user_id", userID).
			Int64("product_id", req.ProductID).
			Int("quantity", req.Quantity).
			Msg("rejected cart add with invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	item, err := s.cartRepo.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("product_id", req.ProductID).
			Msg("failed to add cart item")
		return nil, model.ErrStorageUnavailable
	}

	s.logger.Debug().
		Int64("cart_item_id", item.ID).
		Int("quantity", item.Quantity).
		Msg("cart item added")

	return item, nil
}

// UpdateItem sets a cart row's quantity to exactly the given value.
func (s *cartService) UpdateItem(ctx context.Context, req *model.UpdateCartItemRequest) (*model.CartItem, error) {
	if req == nil || req.ID <= 0 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "cart item id is required")
	}
	if req.Quantity < 1 {
		s.logger.Warn().
			Int64("cart_item_id", req.ID).
			Int("quantity", req.Quantity).
			Msg("rejected cart update with invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	item, err := s.cartRepo.UpdateQuantity(ctx, req.ID, req.Quantity)
	if err != nil {
		s.logger.Error().Err(err).Int64("cart_item_id", req.ID).Msg("failed to update cart item")
		return nil, model.ErrStorageUnavailable
	}
	if item == nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "cart item not found")
	}

	return item, nil
}

// RemoveItem deletes a cart row. Removing a missing id is not an error.
func (s *cartService) RemoveItem(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.NewDomainError(model.ErrCodeValidation, "cart item id is required")
	}

	if err := s.cartRepo.Remove(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("cart_item_id", id).Msg("failed to remove cart item")
		return model.ErrStorageUnavailable
	}
	return nil
}

// Clear deletes all of the user's cart rows.
func (s *cartService) Clear(ctx context.Context, userID int64) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear cart")
		return model.ErrStorageUnavailable
	}
	return nil
}

package service

import (
	"context"
	"regexp"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// taxRate is the fixed tax applied on top of the line-item subtotal.
var taxRate = decimal.NewFromFloat(0.10)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// ComputeTotal returns the order total for a set of line items: the sum of
// price times quantity, plus 10% tax, rounded half-away-from-zero to two
// decimal places. The same rule applies to cart preview and stored totals.
func ComputeTotal(items []model.OrderItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal.Mul(decimal.NewFromInt(1).Add(taxRate)).Round(2)
}

// Checkout converts the submitted cart snapshot into a persisted order.
func (s *orderService) Checkout(ctx context.Context, userID int64, req *model.CheckoutRequest) (*model.Order, error) {
	items, clientTotal, derr := s.validateCheckout(req)
	if derr != nil {
		return nil, derr
	}

	// The total is recomputed from the submitted line items rather than
	// trusted from the client.
	total := ComputeTotal(items)
	if !total.Equal(clientTotal) {
		s.logger.Warn().
			Int64("user_id", userID).
			Str("client_total", clientTotal.String()).
			Str("computed_total", total.String()).
			Msg("checkout total mismatch")
		return nil, model.ErrTotalMismatch
	}

	// Order insert, line-item inserts and the cart clear share one
	// transaction: a failure anywhere leaves no partial state.
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin checkout transaction")
		return nil, model.NewDomainError(model.ErrCodeInternalError, "Failed to place order")
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback checkout transaction")
			}
		}
	}()

	order := &model.Order{
		UserID:          userID,
		TotalAmount:     total,
		Status:          model.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create order")
		return nil, model.NewDomainError(model.ErrCodeInternalError, "Failed to place order")
	}

	for i := range items {
		items[i].OrderID = order.ID
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Int64("order_id", order.ID).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, model.NewDomainError(model.ErrCodeInternalError, "Failed to place order")
	}

	if err = s.cartRepo.ClearTx(ctx, tx, userID); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to clear cart during checkout")
		return nil, model.NewDomainError(model.ErrCodeInternalError, "Failed to place order")
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit checkout transaction")
		return nil, model.NewDomainError(model.ErrCodeInternalError, "Failed to place order")
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("user_id", userID).
		Str("total", order.TotalAmount.StringFixed(2)).
		Int("item_count", len(items)).
		Msg("order placed")

	return order, nil
}

// validateCheckout validates the request and converts it into line-item
// snapshots plus the client-claimed total.
func (s *orderService) validateCheckout(req *model.CheckoutRequest) ([]model.OrderItem, decimal.Decimal, *model.DomainError) {
	if req == nil {
		return nil, decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "checkout request is required")
	}
	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return nil, decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "payment method must be cod or card")
	}
	if req.CustomerName == "" {
		return nil, decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "customer name is required")
	}
	if !emailRegex.MatchString(req.CustomerEmail) {
		return nil, decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "customer email is malformed")
	}
	if req.CustomerPhone == "" {
		return nil, decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "customer phone is required")
	}
	if req.ShippingAddress == "" {
		return nil, decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "shipping address is required")
	}
	if len(req.Items) == 0 {
		return nil, decimal.Zero, model.ErrEmptyOrder
	}

	clientTotal, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return nil, decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "total amount must be a decimal string")
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, in := range req.Items {
		if in.ProductID <= 0 {
			return nil, decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "line item product id is required")
		}
		if in.ProductName == "" {
			return nil, decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "line item product name is required")
		}
		if in.Quantity < 1 {
			return nil, decimal.Zero, model.ErrInvalidQuantity
		}
		price, err := decimal.NewFromString(in.Price)
		if err != nil || price.IsNegative() {
			return nil, decimal.Zero, model.NewDomainError(model.ErrCodeValidation, "line item price must be a non-negative decimal string")
		}

		// Name and price are stored verbatim as the order snapshot, never
		// re-read from the product table.
		items[i] = model.OrderItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			Price:       price,
		}
	}

	return items, clientTotal, nil
}

// GetMyOrders returns a user's orders, newest first. Storage failures degrade
// to an empty sequence.
func (s *orderService) GetMyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := s.orderRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("order listing failed, returning empty")
		return []model.Order{}, nil
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// GetByID retrieves an order. Returns (nil, nil) when absent.
func (s *orderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("order_id", id).Msg("order lookup failed, returning absent")
		return nil, nil
	}
	return order, nil
}

// GetItems returns the line items of an order. Storage failures degrade to an
// empty sequence.
func (s *orderService) GetItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("order_id", orderID).Msg("order item listing failed, returning empty")
		return []model.OrderItem{}, nil
	}
	if items == nil {
		items = []model.OrderItem{}
	}
	return items, nil
}

// UpdateStatus sets an order's status. The enum is validated; transitions are
// not restricted.
func (s *orderService) UpdateStatus(ctx context.Context, req *model.UpdateOrderStatusRequest) (*model.Order, error) {
	if req == nil || req.ID <= 0 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "order id is required")
	}
	if !model.ValidOrderStatus(req.Status) {
		return nil, model.NewDomainError(model.ErrCodeValidation, "unknown order status")
	}

	order, err := s.orderRepo.UpdateStatus(ctx, req.ID, req.Status)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", req.ID).Msg("failed to update order status")
		return nil, model.ErrStorageUnavailable
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Str("status", order.Status).
		Msg("order status updated")

	return order, nil
}

// GetAllOrders returns every order, newest first. Storage failures degrade to
// an empty sequence.
func (s *orderService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("all-orders listing failed, returning empty")
		return []model.Order{}, nil
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

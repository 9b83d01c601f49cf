package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment methods.
const (
	PaymentMethodCOD  = "cod"
	PaymentMethodCard = "card"
)

// ValidOrderStatus reports whether s is a recognised order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a recognised payment method.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodCOD || m == PaymentMethodCard
}

// Order represents a placed order with a snapshot of the customer's contact
// details at checkout time.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	UserID          int64           `json:"userId" db:"user_id"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Status          string          `json:"status" db:"status"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	CustomerName    string          `json:"customerName" db:"customer_name"`
	CustomerEmail   string          `json:"customerEmail" db:"customer_email"`
	CustomerPhone   string          `json:"customerPhone" db:"customer_phone"`
	ShippingAddress string          `json:"shippingAddress" db:"shipping_address"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item copied from the cart at order-creation time.
// ProductName and Price are snapshots and never change after placement, even
// if the source product is later edited or deleted.
type OrderItem struct {
	ID          int64           `json:"id" db:"id"`
	OrderID     int64           `json:"orderId" db:"order_id"`
	ProductID   int64           `json:"productId" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Price       decimal.Decimal `json:"price" db:"price"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// CheckoutItem is a single line item submitted with orders.create. Name and
// price come from the cart view the client currently holds and are stored
// verbatim as the order snapshot.
type CheckoutItem struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

// CheckoutRequest is the payload for orders.create.
type CheckoutRequest struct {
	TotalAmount     string         `json:"totalAmount"`
	PaymentMethod   string         `json:"paymentMethod"`
	CustomerName    string         `json:"customerName"`
	CustomerEmail   string         `json:"customerEmail"`
	CustomerPhone   string         `json:"customerPhone"`
	ShippingAddress string         `json:"shippingAddress"`
	Items           []CheckoutItem `json:"items"`
}

// UpdateOrderStatusRequest is the payload for orders.updateStatus.
type UpdateOrderStatusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

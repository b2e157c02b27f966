package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a purchase.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// orderTransitions is the full transition table. Completed and cancelled
// are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPaid, OrderCancelled},
	OrderPaid:      {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderCompleted, OrderCancelled},
	OrderCompleted: {},
	OrderCancelled: {},
}

// CanTransition reports whether an order may move from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a purchase transaction snapshot. Price and SellerID are copied
// from the vinyl at creation time and are immune to later listing edits.
// Orders are never deleted.
type Order struct {
	ID        string
	Price     decimal.Decimal
	Status    OrderStatus
	OrderDate time.Time
	BuyerID   string
	SellerID  string
	VinylID   string

	// Populated references, loaded on reads.
	Buyer  *User
	Seller *User
	Vinyl  *Vinyl
}

// OrderFilter restricts an order listing. Status filters on exact match
// when non-empty. When exactly one of AsBuyer/AsSeller is set the listing
// is restricted to that role; both set or both unset means "either role".
type OrderFilter struct {
	Status   OrderStatus
	AsBuyer  bool
	AsSeller bool
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	// GetByID returns the order with buyer, seller and vinyl populated.
	GetByID(ctx context.Context, id string) (*Order, error)
	// ListByUser returns orders where the user participates per the filter,
	// sorted by order date descending.
	ListByUser(ctx context.Context, userID string, filter OrderFilter) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error
}

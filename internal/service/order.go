package service

import (
	"context"
	"fmt"

	"github.com/mqlstam/vinylplatz2025/internal/domain"
)

// OrderService owns the purchase workflow and its status state machine.
type OrderService struct {
	orders domain.OrderRepository
	vinyls domain.VinylRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders domain.OrderRepository, vinyls domain.VinylRepository) *OrderService {
	return &OrderService{orders: orders, vinyls: vinyls}
}

// Create places an order against a listing. The listing's current price
// and seller are snapshotted into the order; later edits to the listing do
// not touch existing orders. The listing itself is not reserved or
// withdrawn, so further orders against it remain possible.
func (s *OrderService) Create(ctx context.Context, buyerID, vinylID string) (*domain.Order, error) {
	vinyl, err := s.vinyls.GetByID(ctx, vinylID)
	if err != nil {
		return nil, fmt.Errorf("resolve vinyl %s: %w", vinylID, err)
	}

	if vinyl.SellerID == buyerID {
		return nil, fmt.Errorf("%w: you cannot buy your own vinyl", domain.ErrInvalidInput)
	}

	order := &domain.Order{
		Price:    vinyl.Price,
		Status:   domain.OrderPending,
		BuyerID:  buyerID,
		SellerID: vinyl.SellerID,
		VinylID:  vinyl.ID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return s.orders.GetByID(ctx, order.ID)
}

// List returns the user's orders, newest first. By default orders where
// the user is buyer or seller are included; the filter can restrict to one
// role and/or an exact status.
func (s *OrderService) List(ctx context.Context, userID string, filter domain.OrderFilter) ([]domain.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, filter.Status)
	}
	return s.orders.ListByUser(ctx, userID, filter)
}

// Get retrieves an order. Only the buyer or the seller may view it.
func (s *OrderService) Get(ctx context.Context, id, userID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, fmt.Errorf("%w: you do not have permission to view this order", domain.ErrForbidden)
	}
	return order, nil
}

// UpdateStatus advances an order through the state machine. Only the
// seller may change the status, and only along a valid transition:
// pending→{paid,cancelled}, paid→{shipped,cancelled},
// shipped→{completed,cancelled}; completed and cancelled are terminal.
func (s *OrderService) UpdateStatus(ctx context.Context, id, userID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, status)
	}

	order, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if order.SellerID != userID {
		return nil, fmt.Errorf("%w: only the seller can update the order status", domain.ErrForbidden)
	}

	if !order.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: cannot transition order from %q to %q",
			domain.ErrInvalidInput, order.Status, status)
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = status
	return order, nil
}

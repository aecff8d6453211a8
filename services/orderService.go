package services

import (
	"context"
	"errors"
	"time"

	"go-restaurant-pos/helpers"
	"go-restaurant-pos/logger"
	"go-restaurant-pos/metrics"
	"go-restaurant-pos/models"
	"go-restaurant-pos/notify"
	"go-restaurant-pos/repositories"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceOrderInput is the body of POST /orders/place.
type PlaceOrderInput struct {
	TableNo             int               `json:"tableNo" validate:"gte=1"`
	CustomerName        string            `json:"customerName" validate:"required"`
	ContactNumber       string            `json:"contactNumber" validate:"required"`
	Email               string            `json:"email" validate:"required,email"`
	CartItems           []models.CartLine `json:"cartItems" validate:"required,min=1,dive"`
	SubTotal            *float64          `json:"subTotal"`
	Tax                 *float64          `json:"tax"`
	GrandTotal          *float64          `json:"grandTotal"`
	SpecialInstructions string            `json:"specialInstructions"`
}

type OrderService struct {
	orders   repositories.OrderRepository
	notifier notify.Notifier
	now      func() time.Time
}

func NewOrderService(orders repositories.OrderRepository, notifier notify.Notifier) *OrderService {
	return &OrderService{orders: orders, notifier: notifier, now: time.Now}
}

func (s *OrderService) Place(ctx context.Context, in PlaceOrderInput) (models.Order, error) {
	return s.place(ctx, in, "direct")
}

func (s *OrderService) place(ctx context.Context, in PlaceOrderInput, source string) (models.Order, error) {
	if err := helpers.Validate(in); err != nil {
		return models.Order{}, err
	}
	totals, err := checkTotals(in.CartItems, ClientTotals{SubTotal: in.SubTotal, Tax: in.Tax, GrandTotal: in.GrandTotal})
	if err != nil {
		return models.Order{}, err
	}

	lines := make([]models.CartLine, len(in.CartItems))
	for i, line := range in.CartItems {
		line.LineID = uuid.NewString()
		lines[i] = line
	}

	now := s.now().UTC()
	order := models.Order{
		ID:                  primitive.NewObjectID(),
		TableNo:             in.TableNo,
		CustomerName:        in.CustomerName,
		ContactNumber:       in.ContactNumber,
		Email:               in.Email,
		CartItems:           lines,
		SubTotal:            totals.SubTotal,
		Tax:                 totals.Tax,
		GrandTotal:          totals.GrandTotal,
		SpecialInstructions: in.SpecialInstructions,
		Status:              models.StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	order.OrderID = order.ID.Hex()

	if err := s.orders.Insert(ctx, &order); err != nil {
		return models.Order{}, helpers.Persistence("insert order", err)
	}
	metrics.OrdersPlaced.WithLabelValues(source).Inc()
	logger.FromCtx(ctx).Info("order placed",
		"order_id", order.OrderID, "table_no", order.TableNo, "grand_total", order.GrandTotal, "source", source)
	s.notifier.OrderPlaced(ctx, order)
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (models.Order, error) {
	if err := checkID("order", orderID); err != nil {
		return models.Order{}, err
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return models.Order{}, storeError("find order", "order", orderID, err)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, helpers.Invalid("unknown status %q", filter.Status)
	}
	if filter.TableNo < 0 {
		return nil, helpers.Invalid("tableNo must be at least 1")
	}
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, helpers.Persistence("list orders", err)
	}
	return orders, nil
}

// UpdateStatus moves an order along the transition table and notifies the
// kitchen feed.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, next models.OrderStatus) (models.Order, error) {
	order, changed, err := s.transition(ctx, orderID, next)
	if err != nil {
		return models.Order{}, err
	}
	if changed {
		s.notifier.StatusChanged(ctx, order)
	}
	return order, nil
}

// transition does the checked compare-and-swap. changed is false when the
// order already had the requested status.
func (s *OrderService) transition(ctx context.Context, orderID string, next models.OrderStatus) (models.Order, bool, error) {
	if err := checkID("order", orderID); err != nil {
		return models.Order{}, false, err
	}
	if !next.Valid() {
		return models.Order{}, false, helpers.Invalid("unknown status %q", next)
	}

	current, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return models.Order{}, false, storeError("find order", "order", orderID, err)
	}
	if current.Status == next {
		return current, false, nil
	}
	if !current.Status.CanTransitionTo(next) {
		metrics.OrderTransitions.WithLabelValues(string(next), "rejected").Inc()
		return models.Order{}, false, helpers.Conflict("order %s cannot move from %s to %s", orderID, current.Status, next)
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, current.Status, next, s.now().UTC())
	switch {
	case errors.Is(err, repositories.ErrConflict):
		metrics.OrderTransitions.WithLabelValues(string(next), "conflict").Inc()
		return models.Order{}, false, helpers.Conflict("order %s changed status while updating to %s", orderID, next)
	case err != nil:
		return models.Order{}, false, storeError("update order status", "order", orderID, err)
	}

	metrics.OrderTransitions.WithLabelValues(string(next), "ok").Inc()
	logger.FromCtx(ctx).Info("order status changed", "order_id", orderID, "from", current.Status, "to", next)
	return updated, true, nil
}

func (s *OrderService) Delete(ctx context.Context, orderID string) error {
	if err := checkID("order", orderID); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, orderID); err != nil {
		return storeError("delete order", "order", orderID, err)
	}
	logger.FromCtx(ctx).Info("order deleted", "order_id", orderID)
	return nil
}

package services

import (
	"context"
	"errors"

	"go-restaurant-pos/cart"
	"go-restaurant-pos/helpers"
	"go-restaurant-pos/logger"
	"go-restaurant-pos/metrics"
	"go-restaurant-pos/models"
)

// OpenCartInput is the body of POST /cart.
type OpenCartInput struct {
	QRPayload string `json:"qrPayload"`
}

// CheckoutInput is the body of POST /cart/:session_id/checkout. TableNo is
// only read for sessions that were opened without a QR payload.
type CheckoutInput struct {
	TableNo             int    `json:"tableNo"`
	CustomerName        string `json:"customerName"`
	ContactNumber       string `json:"contactNumber"`
	Email               string `json:"email"`
	SpecialInstructions string `json:"specialInstructions"`
}

type CartService struct {
	store  cart.Store
	menu   *MenuService
	tables *TableService
	orders *OrderService
}

func NewCartService(store cart.Store, menu *MenuService, tables *TableService, orders *OrderService) *CartService {
	return &CartService{store: store, menu: menu, tables: tables, orders: orders}
}

func (s *CartService) Open(ctx context.Context, in OpenCartInput) (cart.View, error) {
	tableNo := 0
	if in.QRPayload != "" {
		n, err := s.tables.ResolveTable(in.QRPayload)
		if err != nil {
			return cart.View{}, err
		}
		tableNo = n
	}
	c := cart.New(tableNo, s.orders.now().UTC())
	if err := s.store.Create(ctx, c); err != nil {
		return cart.View{}, helpers.Persistence("open cart", err)
	}
	metrics.CartOperations.WithLabelValues("open").Inc()
	logger.FromCtx(ctx).Info("cart opened", "session_id", c.SessionID, "table_no", tableNo)
	return c.View(), nil
}

func (s *CartService) Get(ctx context.Context, sessionID string) (cart.View, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return cart.View{}, storeError("get cart", "cart session", sessionID, err)
	}
	return c.View(), nil
}

func (s *CartService) update(ctx context.Context, op, sessionID string, fn func(*cart.Cart) error) (cart.View, error) {
	c, err := s.store.Update(ctx, sessionID, fn)
	if err != nil {
		var nf *helpers.NotFoundError
		if errors.As(err, &nf) {
			return cart.View{}, err
		}
		return cart.View{}, storeError(op+" cart", "cart session", sessionID, err)
	}
	metrics.CartOperations.WithLabelValues(op).Inc()
	return c.View(), nil
}

func lineMustExist(lineID string, apply func(*cart.Cart)) func(*cart.Cart) error {
	return func(c *cart.Cart) error {
		if !c.Has(lineID) {
			return helpers.NotFound("cart line", lineID)
		}
		apply(c)
		return nil
	}
}

// AddItem snapshots a menu item into the cart.
func (s *CartService) AddItem(ctx context.Context, sessionID, itemID string) (cart.View, error) {
	item, err := s.menu.Get(ctx, itemID)
	if err != nil {
		return cart.View{}, err
	}
	return s.update(ctx, "add", sessionID, func(c *cart.Cart) error {
		c.AddItem(item)
		return nil
	})
}

func (s *CartService) Increment(ctx context.Context, sessionID, lineID string) (cart.View, error) {
	return s.update(ctx, "increment", sessionID, lineMustExist(lineID, func(c *cart.Cart) { c.Increment(lineID) }))
}

func (s *CartService) Decrement(ctx context.Context, sessionID, lineID string) (cart.View, error) {
	return s.update(ctx, "decrement", sessionID, lineMustExist(lineID, func(c *cart.Cart) { c.Decrement(lineID) }))
}

func (s *CartService) RemoveLine(ctx context.Context, sessionID, lineID string) (cart.View, error) {
	return s.update(ctx, "remove", sessionID, lineMustExist(lineID, func(c *cart.Cart) { c.RemoveLine(lineID) }))
}

// Abandon throws the session away.
func (s *CartService) Abandon(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return storeError("abandon cart", "cart session", sessionID, err)
	}
	metrics.CartOperations.WithLabelValues("abandon").Inc()
	return nil
}

// Checkout turns the session into an order for the table it is bound to and
// clears the session. The session is claimed before anything is read from it,
// so line changes racing the checkout fail with 404 instead of being dropped.
func (s *CartService) Checkout(ctx context.Context, sessionID string, in CheckoutInput) (models.Order, error) {
	c, err := s.store.Take(ctx, sessionID)
	if err != nil {
		return models.Order{}, storeError("claim cart", "cart session", sessionID, err)
	}
	order, err := s.checkout(ctx, c, in)
	if err != nil {
		if rerr := s.store.Create(context.WithoutCancel(ctx), c); rerr != nil {
			logger.FromCtx(ctx).Error("cart restore failed", "session_id", sessionID, "error", rerr)
		}
		return models.Order{}, err
	}
	metrics.CartOperations.WithLabelValues("checkout").Inc()
	return order, nil
}

func (s *CartService) checkout(ctx context.Context, c *cart.Cart, in CheckoutInput) (models.Order, error) {
	tableNo := c.TableNo
	if tableNo == 0 {
		tableNo = in.TableNo
	} else if in.TableNo != 0 && in.TableNo != tableNo {
		return models.Order{}, helpers.Invalid("cart session is bound to table %d", tableNo)
	}

	place := PlaceOrderInput{
		TableNo:             tableNo,
		CustomerName:        in.CustomerName,
		ContactNumber:       in.ContactNumber,
		Email:               in.Email,
		CartItems:           c.Lines,
		SpecialInstructions: in.SpecialInstructions,
	}
	if err := helpers.Validate(place); err != nil {
		return models.Order{}, err
	}
	return s.orders.place(ctx, place, "cart")
}

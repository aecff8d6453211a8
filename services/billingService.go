package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-restaurant-pos/helpers"
	"go-restaurant-pos/logger"
	"go-restaurant-pos/metrics"
	"go-restaurant-pos/models"
	"go-restaurant-pos/notify"
	"go-restaurant-pos/repositories"
	"go-restaurant-pos/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	billPrefix         = "BILL"
	billNumberAttempts = 5
)

// CreateBillInput is the body of POST /bills/add-res-bills.
type CreateBillInput struct {
	CustomerName   string             `json:"customerName" validate:"required"`
	CustomerNumber string             `json:"customerNumber" validate:"required"`
	CartItems      []models.CartLine  `json:"cartItems" validate:"required,min=1,dive"`
	PaymentMode    models.PaymentMode `json:"paymentMode" validate:"required,enum"`
	SubTotal       *float64           `json:"subTotal"`
	Tax            *float64           `json:"tax"`
	TotalAmount    *float64           `json:"totalAmount"`
}

// CompleteOrderInput is the body of POST /orders/:order_id/complete.
type CompleteOrderInput struct {
	PaymentMode models.PaymentMode `json:"paymentMode" validate:"required,enum"`
}

// CompletedOrder is what completing an order hands back.
type CompletedOrder struct {
	Order   models.Order `json:"order"`
	Bill    models.Bill  `json:"bill"`
	Receipt string       `json:"receipt"`
}

type BillingService struct {
	bills    repositories.BillRepository
	orders   *OrderService
	disk     storage.Disk
	notifier notify.Notifier
	venue    string
	now      func() time.Time
}

func NewBillingService(bills repositories.BillRepository, orders *OrderService, disk storage.Disk, notifier notify.Notifier, venue string) *BillingService {
	return &BillingService{bills: bills, orders: orders, disk: disk, notifier: notifier, venue: venue, now: time.Now}
}

// nextNumber returns BILL-YYYYMMDD-NNNN one past the last bill of the day.
func (s *BillingService) nextNumber(ctx context.Context, day time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%s-", billPrefix, day.Format("20060102"))
	last, err := s.bills.LastNumber(ctx, prefix)
	if err != nil {
		return "", err
	}
	seq := 1
	if last != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed bill number %q", last)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// insert numbers and stores bill, retrying when a concurrent writer took the
// same number.
func (s *BillingService) insert(ctx context.Context, bill *models.Bill) error {
	for attempt := 0; ; attempt++ {
		number, err := s.nextNumber(ctx, bill.CreatedAt)
		if err != nil {
			return helpers.Persistence("number bill", err)
		}
		bill.BillNumber = number
		err = s.bills.Insert(ctx, bill)
		if err == nil {
			break
		}
		if errors.Is(err, repositories.ErrAlreadyBilled) {
			return helpers.Conflict("order %s already has a bill", bill.OrderID)
		}
		if !errors.Is(err, repositories.ErrConflict) || attempt+1 >= billNumberAttempts {
			return helpers.Persistence("insert bill", err)
		}
	}
	metrics.BillsCreated.WithLabelValues(string(bill.PaymentMode)).Inc()
	metrics.Revenue.WithLabelValues(string(bill.PaymentMode)).Add(bill.TotalAmount)
	return nil
}

func (s *BillingService) newBill(name, number string, lines []models.CartLine, totals models.Totals, mode models.PaymentMode) models.Bill {
	bill := models.Bill{
		ID:             primitive.NewObjectID(),
		CustomerName:   name,
		CustomerNumber: number,
		CartItems:      lines,
		SubTotal:       totals.SubTotal,
		Tax:            totals.Tax,
		TotalAmount:    totals.GrandTotal,
		PaymentMode:    mode,
		CreatedAt:      s.now().UTC(),
	}
	bill.BillID = bill.ID.Hex()
	return bill
}

// export renders the receipt and writes it to the disk. A failed write is
// logged and leaves the bill without a receipt path; the receipt can still be
// rendered on demand.
func (s *BillingService) export(ctx context.Context, bill *models.Bill) (string, error) {
	receipt, err := RenderReceipt(s.venue, *bill)
	if err != nil {
		return "", err
	}
	if s.disk == nil {
		return receipt, nil
	}
	log := logger.FromCtx(ctx)
	p := receiptPath(*bill)
	if err := s.disk.Put(ctx, p, []byte(receipt)); err != nil {
		log.Warn("receipt export failed", "bill_number", bill.BillNumber, "error", err)
		return receipt, nil
	}
	if err := s.bills.SetReceiptPath(ctx, bill.BillID, p); err != nil {
		log.Warn("receipt path not saved", "bill_number", bill.BillNumber, "error", err)
		return receipt, nil
	}
	bill.ReceiptPath = p
	return receipt, nil
}

// CreateBill stores a standalone bill with no linked order.
func (s *BillingService) CreateBill(ctx context.Context, in CreateBillInput) (models.Bill, error) {
	if err := helpers.Validate(in); err != nil {
		return models.Bill{}, err
	}
	totals, err := checkTotals(in.CartItems, ClientTotals{SubTotal: in.SubTotal, Tax: in.Tax, GrandTotal: in.TotalAmount})
	if err != nil {
		return models.Bill{}, err
	}

	bill := s.newBill(in.CustomerName, in.CustomerNumber, in.CartItems, totals, in.PaymentMode)
	if err := s.insert(ctx, &bill); err != nil {
		return models.Bill{}, err
	}
	if _, err := s.export(ctx, &bill); err != nil {
		logger.FromCtx(ctx).Warn("receipt render failed", "bill_number", bill.BillNumber, "error", err)
	}
	logger.FromCtx(ctx).Info("bill created", "bill_number", bill.BillNumber, "total", bill.TotalAmount)
	return bill, nil
}

// CompleteOrder bills an order and marks it Completed. The bill is removed
// again when the status change does not go through.
func (s *BillingService) CompleteOrder(ctx context.Context, orderID string, in CompleteOrderInput) (CompletedOrder, error) {
	if err := helpers.Validate(in); err != nil {
		return CompletedOrder{}, err
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return CompletedOrder{}, err
	}
	if order.Status == models.StatusCompleted {
		return CompletedOrder{}, helpers.Conflict("order %s is already completed", orderID)
	}
	if !order.Status.CanTransitionTo(models.StatusCompleted) {
		return CompletedOrder{}, helpers.Conflict("order %s cannot move from %s to %s", orderID, order.Status, models.StatusCompleted)
	}

	bill := s.newBill(order.CustomerName, order.ContactNumber, order.CartItems, order.Totals(), in.PaymentMode)
	bill.OrderID = order.OrderID
	if err := s.insert(ctx, &bill); err != nil {
		return CompletedOrder{}, err
	}
	receipt, err := s.export(ctx, &bill)
	if err == nil {
		var changed bool
		order, changed, err = s.orders.transition(ctx, orderID, models.StatusCompleted)
		if err == nil && !changed {
			err = helpers.Conflict("order %s was completed by another request", orderID)
		}
	}
	if err != nil {
		s.rollback(ctx, bill)
		return CompletedOrder{}, err
	}

	logger.FromCtx(ctx).Info("order completed", "order_id", orderID, "bill_number", bill.BillNumber)
	s.notifier.OrderCompleted(ctx, order, bill)
	return CompletedOrder{Order: order, Bill: bill, Receipt: receipt}, nil
}

func (s *BillingService) rollback(ctx context.Context, bill models.Bill) {
	ctx = context.WithoutCancel(ctx)
	log := logger.FromCtx(ctx)
	if err := s.bills.Delete(ctx, bill.BillID); err != nil {
		log.Error("bill rollback failed", "bill_number", bill.BillNumber, "error", err)
	}
	if bill.ReceiptPath != "" && s.disk != nil {
		if err := s.disk.Delete(ctx, bill.ReceiptPath); err != nil {
			log.Warn("receipt rollback failed", "path", bill.ReceiptPath, "error", err)
		}
	}
}

func (s *BillingService) List(ctx context.Context) ([]models.Bill, error) {
	bills, err := s.bills.List(ctx)
	if err != nil {
		return nil, helpers.Persistence("list bills", err)
	}
	return bills, nil
}

func (s *BillingService) Get(ctx context.Context, billID string) (models.Bill, error) {
	if err := checkID("bill", billID); err != nil {
		return models.Bill{}, err
	}
	bill, err := s.bills.FindByID(ctx, billID)
	if err != nil {
		return models.Bill{}, storeError("find bill", "bill", billID, err)
	}
	return bill, nil
}

// Delete removes a bill. Any linked order is left as it is.
func (s *BillingService) Delete(ctx context.Context, billID string) error {
	if err := checkID("bill", billID); err != nil {
		return err
	}
	if err := s.bills.Delete(ctx, billID); err != nil {
		return storeError("delete bill", "bill", billID, err)
	}
	logger.FromCtx(ctx).Info("bill deleted", "bill_id", billID)
	return nil
}

// Receipt returns the printable receipt for a stored bill.
func (s *BillingService) Receipt(ctx context.Context, billID string) (string, error) {
	bill, err := s.Get(ctx, billID)
	if err != nil {
		return "", err
	}
	return RenderReceipt(s.venue, bill)
}

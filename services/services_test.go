package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"go-restaurant-pos/cart"
	"go-restaurant-pos/config"
	"go-restaurant-pos/helpers"
	"go-restaurant-pos/models"
	"go-restaurant-pos/repositories"
	"go-restaurant-pos/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) OrderPlaced(context.Context, models.Order)   { r.add(models.EventNewOrder) }
func (r *recorder) StatusChanged(context.Context, models.Order) { r.add(models.EventPrepareStatus) }
func (r *recorder) OrderCompleted(context.Context, models.Order, models.Bill) {
	r.add(models.EventOrderCompleted)
}

type fixture struct {
	mem     *repositories.Memory
	events  *recorder
	orders  *OrderService
	billing *BillingService
	menu    *MenuService
	tables  *TableService
	carts   *CartService
	rooms   *RoomService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := repositories.NewMemory()
	rec := &recorder{}
	orders := NewOrderService(mem.Orders(), rec)
	menu := NewMenuService(mem.Menu(), nil)
	tables := NewTableService([]config.TableSpec{{Number: 1, Seats: 4}, {Number: 7, Seats: 2}}, "http://localhost:9000/order", mem.Orders())
	return &fixture{
		mem:     mem,
		events:  rec,
		orders:  orders,
		billing: NewBillingService(mem.Bills(), orders, storage.NewLocal(t.TempDir()), rec, "Test Kitchen"),
		menu:    menu,
		tables:  tables,
		carts:   NewCartService(cart.NewMemoryStore(time.Hour), menu, tables, orders),
		rooms:   NewRoomService(mem.Rooms(), mem.Guests()),
	}
}

func status(err error) int { return helpers.StatusCode(err) }

func validOrder(tableNo int) PlaceOrderInput {
	return PlaceOrderInput{
		TableNo:       tableNo,
		CustomerName:  "Asha Rao",
		ContactNumber: "0771234567",
		Email:         "asha@example.com",
		CartItems: []models.CartLine{
			{ItemID: "m1", Name: "Paneer Tikka", Price: 500, Quantity: 2},
			{ItemID: "m2", Name: "Lassi", Price: 300, Quantity: 1},
		},
	}
}

func f64(v float64) *float64 { return &v }

func TestPlaceOrder(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	order, err := fx.orders.Place(ctx, validOrder(5))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 5, order.TableNo)
	assert.Equal(t, 1300.0, order.SubTotal)
	assert.Equal(t, 130.0, order.Tax)
	assert.Equal(t, 1430.0, order.GrandTotal)
	for _, line := range order.CartItems {
		assert.NotEmpty(t, line.LineID)
	}
	assert.Equal(t, []string{models.EventNewOrder}, fx.events.Events())

	stored, err := fx.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, stored.OrderID)
}

func TestPlaceOrderRejectsBadInput(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	cases := map[string]func(in *PlaceOrderInput){
		"empty cart":     func(in *PlaceOrderInput) { in.CartItems = nil },
		"no name":        func(in *PlaceOrderInput) { in.CustomerName = "" },
		"bad email":      func(in *PlaceOrderInput) { in.Email = "asha" },
		"table zero":     func(in *PlaceOrderInput) { in.TableNo = 0 },
		"zero quantity":  func(in *PlaceOrderInput) { in.CartItems[0].Quantity = 0 },
		"negative price": func(in *PlaceOrderInput) { in.CartItems[1].Price = -1 },
		"wrong total":    func(in *PlaceOrderInput) { in.GrandTotal = f64(1500) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validOrder(3)
			mutate(&in)
			_, err := fx.orders.Place(ctx, in)
			assert.Equal(t, http.StatusBadRequest, status(err), "%v", err)
		})
	}

	orders, err := fx.orders.List(ctx, models.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrderAcceptsTotalsWithinACent(t *testing.T) {
	fx := newFixture(t)
	in := validOrder(2)
	in.SubTotal, in.Tax, in.GrandTotal = f64(1300), f64(130.004), f64(1430.01)
	_, err := fx.orders.Place(context.Background(), in)
	assert.NoError(t, err)
}

func TestUpdateStatusFollowsTransitionTable(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	order, err := fx.orders.Place(ctx, validOrder(1))
	require.NoError(t, err)

	got, err := fx.orders.UpdateStatus(ctx, order.OrderID, models.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, got.Status)

	got, err = fx.orders.UpdateStatus(ctx, order.OrderID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)

	_, err = fx.orders.UpdateStatus(ctx, order.OrderID, "Unknown")
	assert.Equal(t, http.StatusBadRequest, status(err))
	stored, _ := fx.orders.Get(ctx, order.OrderID)
	assert.Equal(t, models.StatusPending, stored.Status)

	_, err = fx.orders.UpdateStatus(ctx, order.OrderID, models.StatusCompleted)
	require.NoError(t, err)
	for _, next := range []models.OrderStatus{models.StatusPending, models.StatusPreparing, models.StatusReady, models.StatusCancelled} {
		_, err = fx.orders.UpdateStatus(ctx, order.OrderID, next)
		assert.Equal(t, http.StatusConflict, status(err), "Completed -> %s", next)
	}

	// Rewriting the current status succeeds without a new event.
	before := len(fx.events.Events())
	_, err = fx.orders.UpdateStatus(ctx, order.OrderID, models.StatusCompleted)
	assert.NoError(t, err)
	assert.Len(t, fx.events.Events(), before)
}

func TestUpdateStatusLostRaceIsConflict(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	order, err := fx.orders.Place(ctx, validOrder(1))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = fx.orders.UpdateStatus(ctx, order.OrderID, models.StatusCancelled)
		}(i)
	}
	wg.Wait()
	for _, err := range results {
		if err != nil {
			assert.Equal(t, http.StatusConflict, status(err))
		}
	}
	stored, _ := fx.orders.Get(ctx, order.OrderID)
	assert.Equal(t, models.StatusCancelled, stored.Status)
}

func TestGetAndDeleteOrder(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.orders.Get(ctx, "not-an-id")
	assert.Equal(t, http.StatusBadRequest, status(err))
	assert.Equal(t, http.StatusNotFound, status(fx.orders.Delete(ctx, "65f0c0ffee0000000000beef")))

	order, err := fx.orders.Place(ctx, validOrder(4))
	require.NoError(t, err)
	require.NoError(t, fx.orders.Delete(ctx, order.OrderID))
	_, err = fx.orders.Get(ctx, order.OrderID)
	assert.Equal(t, http.StatusNotFound, status(err))
}

func TestListOrdersFilters(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	a, _ := fx.orders.Place(ctx, validOrder(1))
	_, _ = fx.orders.Place(ctx, validOrder(2))
	_, err := fx.orders.UpdateStatus(ctx, a.OrderID, models.StatusPreparing)
	require.NoError(t, err)

	byTable, err := fx.orders.List(ctx, models.OrderFilter{TableNo: 1})
	require.NoError(t, err)
	require.Len(t, byTable, 1)
	assert.Equal(t, a.OrderID, byTable[0].OrderID)

	preparing, err := fx.orders.List(ctx, models.OrderFilter{Status: models.StatusPreparing})
	require.NoError(t, err)
	assert.Len(t, preparing, 1)

	_, err = fx.orders.List(ctx, models.OrderFilter{Status: "Eaten"})
	assert.Equal(t, http.StatusBadRequest, status(err))
}

func TestCreateBillNumbersPerDay(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.billing.now = func() time.Time { return time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC) }

	in := CreateBillInput{
		CustomerName:   "Ravi",
		CustomerNumber: "0711111111",
		CartItems:      []models.CartLine{{ItemID: "m1", Name: "Dosa", Price: 250, Quantity: 2}},
		PaymentMode:    models.PaymentCash,
	}
	first, err := fx.billing.CreateBill(ctx, in)
	require.NoError(t, err)
	second, err := fx.billing.CreateBill(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "BILL-20260301-0001", first.BillNumber)
	assert.Equal(t, "BILL-20260301-0002", second.BillNumber)
	assert.Empty(t, first.OrderID)
	assert.Equal(t, 550.0, first.TotalAmount)
	assert.NotEmpty(t, first.ReceiptPath)

	in.PaymentMode = "Cheque"
	_, err = fx.billing.CreateBill(ctx, in)
	assert.Equal(t, http.StatusBadRequest, status(err))

	bills, err := fx.billing.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bills, 2)
}

func TestCompleteOrder(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	order, err := fx.orders.Place(ctx, validOrder(6))
	require.NoError(t, err)

	done, err := fx.billing.CompleteOrder(ctx, order.OrderID, CompleteOrderInput{PaymentMode: models.PaymentUPI})
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, done.Bill.OrderID)
	assert.Equal(t, 1430.0, done.Bill.TotalAmount)
	assert.Equal(t, models.StatusCompleted, done.Order.Status)
	assert.Contains(t, done.Receipt, "1430.00")
	assert.Contains(t, done.Receipt, done.Bill.BillNumber)

	stored, _ := fx.orders.Get(ctx, order.OrderID)
	assert.Equal(t, models.StatusCompleted, stored.Status)
	assert.Contains(t, fx.events.Events(), models.EventOrderCompleted)

	_, err = fx.billing.CompleteOrder(ctx, order.OrderID, CompleteOrderInput{PaymentMode: models.PaymentCash})
	assert.Equal(t, http.StatusConflict, status(err))

	_, err = fx.billing.CompleteOrder(ctx, "65f0c0ffee0000000000beef", CompleteOrderInput{PaymentMode: models.PaymentCash})
	assert.Equal(t, http.StatusNotFound, status(err))
}

func TestDeleteBillLeavesOrderAlone(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	order, _ := fx.orders.Place(ctx, validOrder(6))
	done, err := fx.billing.CompleteOrder(ctx, order.OrderID, CompleteOrderInput{PaymentMode: models.PaymentCard})
	require.NoError(t, err)

	require.NoError(t, fx.billing.Delete(ctx, done.Bill.BillID))
	assert.Equal(t, http.StatusNotFound, status(fx.billing.Delete(ctx, done.Bill.BillID)))

	stored, err := fx.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)
}

type stuckOrders struct {
	repositories.OrderRepository
}

func (stuckOrders) UpdateStatus(context.Context, string, models.OrderStatus, models.OrderStatus, time.Time) (models.Order, error) {
	return models.Order{}, errors.New("write concern timeout")
}

func TestCompleteOrderRemovesBillWhenStatusUpdateFails(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	order, err := fx.orders.Place(ctx, validOrder(3))
	require.NoError(t, err)

	orders := NewOrderService(stuckOrders{fx.mem.Orders()}, fx.events)
	billing := NewBillingService(fx.mem.Bills(), orders, nil, fx.events, "Test Kitchen")

	_, err = billing.CompleteOrder(ctx, order.OrderID, CompleteOrderInput{PaymentMode: models.PaymentCash})
	assert.Equal(t, http.StatusInternalServerError, status(err))
	assert.Contains(t, err.Error(), "write concern timeout")

	bills, err := billing.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

// hookedBills runs afterInsert once, right after the first bill is stored.
type hookedBills struct {
	repositories.BillRepository
	afterInsert func()
}

func (b *hookedBills) Insert(ctx context.Context, bill *models.Bill) error {
	if err := b.BillRepository.Insert(ctx, bill); err != nil {
		return err
	}
	if hook := b.afterInsert; hook != nil {
		b.afterInsert = nil
		hook()
	}
	return nil
}

func TestCompleteOrderTwiceConcurrentlyBillsOnce(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	order, err := fx.orders.Place(ctx, validOrder(4))
	require.NoError(t, err)

	bills := &hookedBills{BillRepository: fx.mem.Bills()}
	billing := NewBillingService(bills, fx.orders, nil, fx.events, "Test Kitchen")
	var secondErr error
	bills.afterInsert = func() {
		_, secondErr = billing.CompleteOrder(ctx, order.OrderID, CompleteOrderInput{PaymentMode: models.PaymentCash})
	}

	done, err := billing.CompleteOrder(ctx, order.OrderID, CompleteOrderInput{PaymentMode: models.PaymentCard})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, status(secondErr))

	stored, err := billing.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, done.Bill.BillID, stored[0].BillID)
	assert.Equal(t, models.PaymentCard, stored[0].PaymentMode)
}

func TestCompleteOrderLosesToStatusUpdate(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	order, err := fx.orders.Place(ctx, validOrder(4))
	require.NoError(t, err)

	bills := &hookedBills{BillRepository: fx.mem.Bills()}
	billing := NewBillingService(bills, fx.orders, nil, fx.events, "Test Kitchen")
	bills.afterInsert = func() {
		_, err := fx.orders.UpdateStatus(ctx, order.OrderID, models.StatusCompleted)
		require.NoError(t, err)
	}

	_, err = billing.CompleteOrder(ctx, order.OrderID, CompleteOrderInput{PaymentMode: models.PaymentCard})
	assert.Equal(t, http.StatusConflict, status(err))

	stored, err := billing.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.NotContains(t, fx.events.Events(), models.EventOrderCompleted)
}

func TestReceiptLayout(t *testing.T) {
	bill := models.Bill{
		BillNumber:     "BILL-20260301-0007",
		OrderID:        "65f0c0ffee0000000000beef",
		CustomerName:   "Asha",
		CustomerNumber: "077",
		CartItems: []models.CartLine{
			{Name: "Paneer Tikka", Price: 500, Quantity: 2},
			{Name: "Lassi", Price: 300, Quantity: 1},
		},
		SubTotal: 1300, Tax: 130, TotalAmount: 1430,
		PaymentMode: models.PaymentCash,
		CreatedAt:   time.Date(2026, 3, 1, 20, 15, 0, 0, time.UTC),
	}
	receipt, err := RenderReceipt("Test Kitchen", bill)
	require.NoError(t, err)
	for _, want := range []string{"Test Kitchen", "BILL-20260301-0007", "2026-03-01 20:15", "Order   65f0c0ffee0000000000beef", "1000.00", "130.00", "1430.00", "Paid by Cash"} {
		assert.Contains(t, receipt, want)
	}
	assert.Equal(t, "receipts/2026/03/01/BILL-20260301-0007.txt", receiptPath(bill))
}

func TestTablePayloads(t *testing.T) {
	fx := newFixture(t)

	n, err := fx.tables.ResolveTable("http://localhost:9000/order?tableNo=7")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = fx.tables.ResolveTable("http://localhost:9000/order?tableNo=42")
	require.NoError(t, err)
	assert.Equal(t, 42, n, "unconfigured tables are accepted")

	for _, bad := range []string{"", "http://localhost:9000/order", "http://x/order?tableNo=0", "http://x/order?tableNo=seven"} {
		_, err := fx.tables.ResolveTable(bad)
		assert.Equal(t, http.StatusBadRequest, status(err), bad)
	}

	payload, err := fx.tables.PayloadFor(3)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/order?tableNo=3", payload)

	png, err := fx.tables.QRPNG(3, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	_, err = fx.tables.QRPNG(3, 10)
	assert.Equal(t, http.StatusBadRequest, status(err))
}

func TestListTablesCountsOpenOrders(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, _ = fx.orders.Place(ctx, validOrder(7))
	done, _ := fx.orders.Place(ctx, validOrder(7))
	_, err := fx.orders.UpdateStatus(ctx, done.OrderID, models.StatusCancelled)
	require.NoError(t, err)

	tables, err := fx.tables.ListTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, 0, tables[0].OpenOrders)
	assert.Equal(t, 7, tables[1].TableNumber)
	assert.Equal(t, 1, tables[1].OpenOrders)
	assert.Equal(t, "http://localhost:9000/order?tableNo=7", tables[1].QRPayload)
}

func seedMenu(t *testing.T, fx *fixture) (models.MenuItem, models.MenuItem) {
	t.Helper()
	ctx := context.Background()
	paneer, err := fx.menu.Create(ctx, CreateMenuItemInput{Name: "Paneer Tikka", Price: 500, Category: models.CategoryAppetizer, MealTime: models.MealDinner})
	require.NoError(t, err)
	lassi, err := fx.menu.Create(ctx, CreateMenuItemInput{Name: "Lassi", Price: 300, Category: models.CategoryBeverage, MealTime: models.MealAllDay})
	require.NoError(t, err)
	return paneer, lassi
}

func TestMenu(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	paneer, _ := seedMenu(t, fx)

	items, err := fx.menu.List(ctx, models.MenuFilter{Category: models.CategoryBeverage})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lassi", items[0].Name)

	got, err := fx.menu.Get(ctx, paneer.ItemID)
	require.NoError(t, err)
	assert.Equal(t, paneer.Name, got.Name)

	_, err = fx.menu.List(ctx, models.MenuFilter{Category: "Soup"})
	assert.Equal(t, http.StatusBadRequest, status(err))
	_, err = fx.menu.Create(ctx, CreateMenuItemInput{Name: "X", Price: 0, Category: "Soup", MealTime: models.MealLunch})
	assert.Equal(t, http.StatusBadRequest, status(err))
}

func TestReceiptColumnsCountRunes(t *testing.T) {
	bill := models.Bill{
		BillNumber: "BILL-20260301-0008",
		CartItems: []models.CartLine{
			{Name: "aaaaaaaaaaaaaaaaaaaaaaaaéééé", Price: 100, Quantity: 1},
			{Name: "Crème brûlée", Price: 250, Quantity: 2},
			{Name: "Plain Rice", Price: 80, Quantity: 3},
		},
		SubTotal: 840, Tax: 84, TotalAmount: 924,
		PaymentMode: models.PaymentCard,
		CreatedAt:   time.Date(2026, 3, 1, 20, 15, 0, 0, time.UTC),
	}
	receipt, err := RenderReceipt("Café Noir", bill)
	require.NoError(t, err)
	require.True(t, utf8.ValidString(receipt))
	assert.Contains(t, receipt, "aaaaaaaaaaaaaaaaaaaaaaaaé~")

	var itemLines int
	for _, line := range strings.Split(receipt, "\n") {
		if strings.HasPrefix(line, "aaaa") || strings.HasPrefix(line, "Crème") || strings.HasPrefix(line, "Plain") {
			itemLines++
			assert.Equal(t, receiptWidth, utf8.RuneCountInString(line), line)
		}
	}
	assert.Equal(t, 3, itemLines)
}

func TestCartCheckoutUsesTableFromQR(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	paneer, lassi := seedMenu(t, fx)

	view, err := fx.carts.Open(ctx, OpenCartInput{QRPayload: "http://localhost:9000/order?tableNo=7"})
	require.NoError(t, err)
	id := view.SessionID
	assert.Equal(t, 7, view.TableNo)

	_, err = fx.carts.AddItem(ctx, id, paneer.ItemID)
	require.NoError(t, err)
	_, err = fx.carts.AddItem(ctx, id, paneer.ItemID)
	require.NoError(t, err)
	view, err = fx.carts.AddItem(ctx, id, lassi.ItemID)
	require.NoError(t, err)
	assert.Equal(t, 1430.0, view.GrandTotal)

	_, err = fx.carts.Checkout(ctx, id, CheckoutInput{TableNo: 9, CustomerName: "Asha", ContactNumber: "077", Email: "asha@example.com"})
	assert.Equal(t, http.StatusBadRequest, status(err))

	order, err := fx.carts.Checkout(ctx, id, CheckoutInput{CustomerName: "Asha", ContactNumber: "077", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 7, order.TableNo)
	assert.Equal(t, 1430.0, order.GrandTotal)
	assert.Equal(t, models.StatusPending, order.Status)

	_, err = fx.carts.Get(ctx, id)
	assert.Equal(t, http.StatusNotFound, status(err))
}

func TestCartLineOperations(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	paneer, _ := seedMenu(t, fx)

	view, err := fx.carts.Open(ctx, OpenCartInput{})
	require.NoError(t, err)
	id := view.SessionID

	_, err = fx.carts.AddItem(ctx, id, "65f0c0ffee0000000000beef")
	assert.Equal(t, http.StatusNotFound, status(err))

	view, err = fx.carts.AddItem(ctx, id, paneer.ItemID)
	require.NoError(t, err)
	line := view.Lines[0].LineID

	view, err = fx.carts.Increment(ctx, id, line)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Lines[0].Quantity)

	_, err = fx.carts.Decrement(ctx, id, "missing")
	assert.Equal(t, http.StatusNotFound, status(err))

	_, err = fx.carts.Decrement(ctx, id, line)
	require.NoError(t, err)
	view, err = fx.carts.Decrement(ctx, id, line)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	_, err = fx.carts.Checkout(ctx, id, CheckoutInput{TableNo: 2, CustomerName: "Asha", ContactNumber: "077", Email: "asha@example.com"})
	assert.Equal(t, http.StatusBadRequest, status(err))
	_, err = fx.carts.Get(ctx, id)
	assert.NoError(t, err, "a rejected checkout keeps the session")

	require.NoError(t, fx.carts.Abandon(ctx, id))
	assert.Equal(t, http.StatusNotFound, status(fx.carts.Abandon(ctx, id)))

	_, err = fx.carts.Open(ctx, OpenCartInput{QRPayload: "http://localhost:9000/order"})
	assert.Equal(t, http.StatusBadRequest, status(err))
}

type hookedCarts struct {
	cart.Store
	afterTake func()
}

func (h *hookedCarts) Take(ctx context.Context, id string) (*cart.Cart, error) {
	c, err := h.Store.Take(ctx, id)
	if h.afterTake != nil {
		hook := h.afterTake
		h.afterTake = nil
		hook()
	}
	return c, err
}

func TestCartChangeDuringCheckoutIsRejected(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	paneer, lassi := seedMenu(t, fx)

	store := &hookedCarts{Store: cart.NewMemoryStore(time.Hour)}
	carts := NewCartService(store, fx.menu, fx.tables, fx.orders)
	view, err := carts.Open(ctx, OpenCartInput{})
	require.NoError(t, err)
	id := view.SessionID
	_, err = carts.AddItem(ctx, id, paneer.ItemID)
	require.NoError(t, err)

	var lateErr error
	store.afterTake = func() {
		_, lateErr = carts.AddItem(ctx, id, lassi.ItemID)
	}
	order, err := carts.Checkout(ctx, id, CheckoutInput{TableNo: 4, CustomerName: "Asha", ContactNumber: "077", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status(lateErr))
	require.Len(t, order.CartItems, 1)
	assert.Equal(t, paneer.ItemID, order.CartItems[0].ItemID)
}

func room(number string) models.GuestRoom {
	return models.GuestRoom{RoomNumber: number, RoomType: "Deluxe", Price: 120, BedType: "King"}
}

func guest(number string) models.Guest {
	in := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	return models.Guest{
		Name: "Nimal Perera", ContactNumber: "0712345678", Email: "nimal@example.com",
		RoomNumber: number, CheckIn: in, CheckOut: in.Add(48 * time.Hour),
	}
}

func TestConcurrentBookRoomHasOneWinner(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, err := fx.rooms.CreateRoom(ctx, room("101"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.rooms.BookRoom(ctx, "101")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.Equal(t, http.StatusConflict, status(err))
		}
	}
	assert.Equal(t, 1, wins)

	_, err = fx.rooms.BookRoom(ctx, "404")
	assert.Equal(t, http.StatusNotFound, status(err))
}

func TestAddGuestNeedsBookedRoom(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, err := fx.rooms.CreateRoom(ctx, room("102"))
	require.NoError(t, err)

	_, err = fx.rooms.AddGuest(ctx, guest("102"))
	assert.Equal(t, http.StatusConflict, status(err))

	_, err = fx.rooms.AddGuest(ctx, guest("999"))
	assert.Equal(t, http.StatusNotFound, status(err))

	bad := guest("102")
	bad.CheckOut = bad.CheckIn.Add(-time.Hour)
	_, err = fx.rooms.AddGuest(ctx, bad)
	assert.Equal(t, http.StatusBadRequest, status(err))

	booking, err := fx.rooms.BookRoomForGuest(ctx, guest("102"))
	require.NoError(t, err)
	assert.Equal(t, models.RoomBooked, booking.Room.Status)
	assert.NotEmpty(t, booking.Guest.GuestID)

	guests, err := fx.rooms.ListGuests(ctx, "102")
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, booking.Guest.GuestID, guests[0].GuestID)

	_, err = fx.rooms.ListGuests(ctx, "999")
	assert.Equal(t, http.StatusNotFound, status(err))

	_, err = fx.rooms.CreateRoom(ctx, room("102"))
	assert.Equal(t, http.StatusConflict, status(err))
}

type brokenGuests struct{}

func (brokenGuests) Insert(context.Context, *models.Guest) error { return errors.New("disk full") }
func (brokenGuests) ListByRoom(context.Context, string) ([]models.Guest, error) {
	return nil, nil
}

func TestBookRoomForGuestRollsBack(t *testing.T) {
	mem := repositories.NewMemory()
	rooms := NewRoomService(mem.Rooms(), brokenGuests{})
	ctx := context.Background()
	_, err := rooms.CreateRoom(ctx, room("201"))
	require.NoError(t, err)

	_, err = rooms.BookRoomForGuest(ctx, guest("201"))
	assert.Equal(t, http.StatusInternalServerError, status(err))

	stored, err := mem.Rooms().FindByNumber(ctx, "201")
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, stored.Status)
}

func TestUpdateRoomStatus(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, err := fx.rooms.CreateRoom(ctx, room("301"))
	require.NoError(t, err)

	got, err := fx.rooms.UpdateStatus(ctx, "301", models.RoomReserved)
	require.NoError(t, err)
	assert.Equal(t, models.RoomReserved, got.Status)

	_, err = fx.rooms.UpdateStatus(ctx, "301", models.RoomBooked)
	assert.Equal(t, http.StatusConflict, status(err), "only Available rooms can be booked")

	_, err = fx.rooms.UpdateStatus(ctx, "301", models.RoomAvailable)
	require.NoError(t, err)
	got, err = fx.rooms.UpdateStatus(ctx, "301", models.RoomBooked)
	require.NoError(t, err)
	assert.Equal(t, models.RoomBooked, got.Status)

	_, err = fx.rooms.UpdateStatus(ctx, "301", "Haunted")
	assert.Equal(t, http.StatusBadRequest, status(err))
}

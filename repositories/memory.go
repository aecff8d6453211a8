package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go-restaurant-pos/models"
)

// Memory holds every store in process. It backs the tests and runs the
// service without MongoDB when none is configured.
type Memory struct {
	mu     sync.Mutex
	orders []models.Order
	bills  []models.Bill
	menu   []models.MenuItem
	rooms  []models.GuestRoom
	guests []models.Guest
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Orders() OrderRepository { return memoryOrders{m} }
func (m *Memory) Bills() BillRepository   { return memoryBills{m} }
func (m *Memory) Menu() MenuRepository    { return memoryMenu{m} }
func (m *Memory) Rooms() RoomRepository   { return memoryRooms{m} }
func (m *Memory) Guests() GuestRepository { return memoryGuests{m} }

func copyLines(lines []models.CartLine) []models.CartLine {
	return append([]models.CartLine(nil), lines...)
}

type memoryOrders struct{ m *Memory }

func (r memoryOrders) Insert(_ context.Context, order *models.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, o := range r.m.orders {
		if o.OrderID == order.OrderID {
			return fmt.Errorf("order %s: %w", order.OrderID, ErrConflict)
		}
	}
	stored := *order
	stored.CartItems = copyLines(order.CartItems)
	r.m.orders = append(r.m.orders, stored)
	return nil
}

func (r memoryOrders) FindByID(_ context.Context, orderID string) (models.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, o := range r.m.orders {
		if o.OrderID == orderID {
			o.CartItems = copyLines(o.CartItems)
			return o, nil
		}
	}
	return models.Order{}, ErrNotFound
}

func (r memoryOrders) List(_ context.Context, filter models.OrderFilter) ([]models.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.Order{}
	for i := len(r.m.orders) - 1; i >= 0; i-- {
		o := r.m.orders[i]
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.TableNo > 0 && o.TableNo != filter.TableNo {
			continue
		}
		o.CartItems = copyLines(o.CartItems)
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memoryOrders) UpdateStatus(_ context.Context, orderID string, from, to models.OrderStatus, at time.Time) (models.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.orders {
		o := &r.m.orders[i]
		if o.OrderID != orderID {
			continue
		}
		if o.Status != from {
			return models.Order{}, ErrConflict
		}
		o.Status = to
		o.UpdatedAt = at
		out := *o
		out.CartItems = copyLines(o.CartItems)
		return out, nil
	}
	return models.Order{}, ErrNotFound
}

func (r memoryOrders) Delete(_ context.Context, orderID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, o := range r.m.orders {
		if o.OrderID == orderID {
			r.m.orders = append(r.m.orders[:i], r.m.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r memoryOrders) CountOpenByTable(_ context.Context) (map[int]int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	counts := map[int]int{}
	for _, o := range r.m.orders {
		if o.Status.Open() {
			counts[o.TableNo]++
		}
	}
	return counts, nil
}

type memoryBills struct{ m *Memory }

func (r memoryBills) Insert(_ context.Context, bill *models.Bill) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, b := range r.m.bills {
		if bill.OrderID != "" && b.OrderID == bill.OrderID {
			return fmt.Errorf("order %s: %w", bill.OrderID, ErrAlreadyBilled)
		}
		if b.BillID == bill.BillID || b.BillNumber == bill.BillNumber {
			return fmt.Errorf("bill number %s: %w", bill.BillNumber, ErrConflict)
		}
	}
	stored := *bill
	stored.CartItems = copyLines(bill.CartItems)
	r.m.bills = append(r.m.bills, stored)
	return nil
}

func (r memoryBills) FindByID(_ context.Context, billID string) (models.Bill, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, b := range r.m.bills {
		if b.BillID == billID {
			b.CartItems = copyLines(b.CartItems)
			return b, nil
		}
	}
	return models.Bill{}, ErrNotFound
}

func (r memoryBills) List(_ context.Context) ([]models.Bill, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.Bill{}
	for i := len(r.m.bills) - 1; i >= 0; i-- {
		b := r.m.bills[i]
		b.CartItems = copyLines(b.CartItems)
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memoryBills) Delete(_ context.Context, billID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, b := range r.m.bills {
		if b.BillID == billID {
			r.m.bills = append(r.m.bills[:i], r.m.bills[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r memoryBills) SetReceiptPath(_ context.Context, billID, path string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.bills {
		if r.m.bills[i].BillID == billID {
			r.m.bills[i].ReceiptPath = path
			return nil
		}
	}
	return ErrNotFound
}

func (r memoryBills) LastNumber(_ context.Context, prefix string) (string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	last := ""
	for _, b := range r.m.bills {
		if strings.HasPrefix(b.BillNumber, prefix) && b.BillNumber > last {
			last = b.BillNumber
		}
	}
	return last, nil
}

type memoryMenu struct{ m *Memory }

func (r memoryMenu) Insert(_ context.Context, item *models.MenuItem) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, it := range r.m.menu {
		if it.ItemID == item.ItemID {
			return fmt.Errorf("menu item %s: %w", item.ItemID, ErrConflict)
		}
	}
	r.m.menu = append(r.m.menu, *item)
	return nil
}

func (r memoryMenu) FindByID(_ context.Context, itemID string) (models.MenuItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, it := range r.m.menu {
		if it.ItemID == itemID {
			return it, nil
		}
	}
	return models.MenuItem{}, ErrNotFound
}

func (r memoryMenu) List(_ context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.MenuItem{}
	for _, it := range r.m.menu {
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.MealTime != "" && it.MealTime != filter.MealTime {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

type memoryRooms struct{ m *Memory }

func (r memoryRooms) Insert(_ context.Context, room *models.GuestRoom) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, rm := range r.m.rooms {
		if rm.RoomNumber == room.RoomNumber {
			return fmt.Errorf("room %s: %w", room.RoomNumber, ErrConflict)
		}
	}
	r.m.rooms = append(r.m.rooms, *room)
	return nil
}

func (r memoryRooms) FindByNumber(_ context.Context, roomNumber string) (models.GuestRoom, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, rm := range r.m.rooms {
		if rm.RoomNumber == roomNumber {
			return rm, nil
		}
	}
	return models.GuestRoom{}, ErrNotFound
}

func (r memoryRooms) List(_ context.Context) ([]models.GuestRoom, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := append([]models.GuestRoom{}, r.m.rooms...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (r memoryRooms) SetStatus(_ context.Context, roomNumber string, to models.RoomStatus, at time.Time) (models.GuestRoom, error) {
	return r.swap(roomNumber, nil, to, at)
}

func (r memoryRooms) SwapStatus(_ context.Context, roomNumber string, from, to models.RoomStatus, at time.Time) (models.GuestRoom, error) {
	return r.swap(roomNumber, &from, to, at)
}

func (r memoryRooms) swap(roomNumber string, from *models.RoomStatus, to models.RoomStatus, at time.Time) (models.GuestRoom, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.rooms {
		rm := &r.m.rooms[i]
		if rm.RoomNumber != roomNumber {
			continue
		}
		if from != nil && rm.Status != *from {
			return models.GuestRoom{}, ErrConflict
		}
		rm.Status = to
		rm.UpdatedAt = at
		return *rm, nil
	}
	return models.GuestRoom{}, ErrNotFound
}

type memoryGuests struct{ m *Memory }

func (r memoryGuests) Insert(_ context.Context, guest *models.Guest) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.guests = append(r.m.guests, *guest)
	return nil
}

func (r memoryGuests) ListByRoom(_ context.Context, roomNumber string) ([]models.Guest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.Guest{}
	for _, g := range r.m.guests {
		if g.RoomNumber == roomNumber {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

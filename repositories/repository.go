// Package repositories persists orders, bills, menu items, guest rooms and
// guests. Each store has a MongoDB implementation and an in-memory one used by
// tests and by the seedless local mode.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-restaurant-pos/models"
)

var (
	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional write matched the id but not
	// the expected state, or a unique key is already taken.
	ErrConflict = errors.New("conflict")
	// ErrAlreadyBilled is the ErrConflict returned when a bill for the same
	// order is already stored.
	ErrAlreadyBilled = fmt.Errorf("order already billed: %w", ErrConflict)
)

type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, orderID string) (models.Order, error)
	// List returns matching orders newest first.
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	// UpdateStatus moves the order from one status to another only if it is
	// still in from. It returns ErrConflict when the stored status differs.
	UpdateStatus(ctx context.Context, orderID string, from, to models.OrderStatus, at time.Time) (models.Order, error)
	Delete(ctx context.Context, orderID string) error
	// CountOpenByTable counts non-terminal orders per table number.
	CountOpenByTable(ctx context.Context) (map[int]int, error)
}

type BillRepository interface {
	Insert(ctx context.Context, bill *models.Bill) error
	FindByID(ctx context.Context, billID string) (models.Bill, error)
	List(ctx context.Context) ([]models.Bill, error)
	Delete(ctx context.Context, billID string) error
	SetReceiptPath(ctx context.Context, billID, path string) error
	// LastNumber returns the highest bill number starting with prefix, or ""
	// when there is none.
	LastNumber(ctx context.Context, prefix string) (string, error)
}

type MenuRepository interface {
	Insert(ctx context.Context, item *models.MenuItem) error
	FindByID(ctx context.Context, itemID string) (models.MenuItem, error)
	List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error)
}

type RoomRepository interface {
	Insert(ctx context.Context, room *models.GuestRoom) error
	FindByNumber(ctx context.Context, roomNumber string) (models.GuestRoom, error)
	List(ctx context.Context) ([]models.GuestRoom, error)
	// SetStatus overwrites the status regardless of its current value.
	SetStatus(ctx context.Context, roomNumber string, to models.RoomStatus, at time.Time) (models.GuestRoom, error)
	// SwapStatus changes the status only when it currently equals from.
	SwapStatus(ctx context.Context, roomNumber string, from, to models.RoomStatus, at time.Time) (models.GuestRoom, error)
}

type GuestRepository interface {
	Insert(ctx context.Context, guest *models.Guest) error
	// ListByRoom returns the room's guests by check-in, earliest first.
	ListByRoom(ctx context.Context, roomNumber string) ([]models.Guest, error)
}

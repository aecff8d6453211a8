package services

import (
	"context"
	"errors"
	"time"

	"go-restaurant-pos/helpers"
	"go-restaurant-pos/logger"
	"go-restaurant-pos/metrics"
	"go-restaurant-pos/models"
	"go-restaurant-pos/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is the result of booking a room for a guest in one call.
type Booking struct {
	Room  models.GuestRoom `json:"room"`
	Guest models.Guest     `json:"guest"`
}

type RoomService struct {
	rooms  repositories.RoomRepository
	guests repositories.GuestRepository
	now    func() time.Time
}

func NewRoomService(rooms repositories.RoomRepository, guests repositories.GuestRepository) *RoomService {
	return &RoomService{rooms: rooms, guests: guests, now: time.Now}
}

func (s *RoomService) ListRooms(ctx context.Context) ([]models.GuestRoom, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, helpers.Persistence("list rooms", err)
	}
	return rooms, nil
}

func (s *RoomService) CreateRoom(ctx context.Context, room models.GuestRoom) (models.GuestRoom, error) {
	if err := helpers.Validate(room); err != nil {
		return models.GuestRoom{}, err
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	room.ID = primitive.NewObjectID()
	room.RoomID = room.ID.Hex()
	room.UpdatedAt = s.now().UTC()
	if err := s.rooms.Insert(ctx, &room); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return models.GuestRoom{}, helpers.Conflict("room %s already exists", room.RoomNumber)
		}
		return models.GuestRoom{}, helpers.Persistence("insert room", err)
	}
	return room, nil
}

// UpdateStatus sets a room's status. Booked goes through BookRoom so the
// room must be Available; the other statuses are written as given.
func (s *RoomService) UpdateStatus(ctx context.Context, roomNumber string, status models.RoomStatus) (models.GuestRoom, error) {
	if !status.Valid() {
		return models.GuestRoom{}, helpers.Invalid("unknown room status %q", status)
	}
	if status == models.RoomBooked {
		return s.BookRoom(ctx, roomNumber)
	}
	room, err := s.rooms.SetStatus(ctx, roomNumber, status, s.now().UTC())
	if err != nil {
		return models.GuestRoom{}, storeError("update room status", "room", roomNumber, err)
	}
	return room, nil
}

// BookRoom flips an Available room to Booked. Of two concurrent callers at
// most one gets the room; the other sees a conflict.
func (s *RoomService) BookRoom(ctx context.Context, roomNumber string) (models.GuestRoom, error) {
	if roomNumber == "" {
		return models.GuestRoom{}, helpers.Invalid("roomNumber is required")
	}
	room, err := s.rooms.SwapStatus(ctx, roomNumber, models.RoomAvailable, models.RoomBooked, s.now().UTC())
	switch {
	case errors.Is(err, repositories.ErrConflict):
		metrics.RoomBookings.WithLabelValues("unavailable").Inc()
		return models.GuestRoom{}, helpers.Conflict("room %s is not available", roomNumber)
	case err != nil:
		return models.GuestRoom{}, storeError("book room", "room", roomNumber, err)
	}
	metrics.RoomBookings.WithLabelValues("booked").Inc()
	logger.FromCtx(ctx).Info("room booked", "room_number", roomNumber)
	return room, nil
}

// AddGuest records a guest against a room that is already Booked.
func (s *RoomService) AddGuest(ctx context.Context, guest models.Guest) (models.Guest, error) {
	if err := helpers.Validate(guest); err != nil {
		return models.Guest{}, err
	}
	room, err := s.rooms.FindByNumber(ctx, guest.RoomNumber)
	if err != nil {
		return models.Guest{}, storeError("find room", "room", guest.RoomNumber, err)
	}
	if room.Status != models.RoomBooked {
		return models.Guest{}, helpers.Conflict("room %s is %s, not Booked", room.RoomNumber, room.Status)
	}
	guest.ID = primitive.NewObjectID()
	guest.GuestID = guest.ID.Hex()
	guest.CreatedAt = s.now().UTC()
	if err := s.guests.Insert(ctx, &guest); err != nil {
		return models.Guest{}, helpers.Persistence("insert guest", err)
	}
	return guest, nil
}

// ListGuests returns the guests recorded against a room.
func (s *RoomService) ListGuests(ctx context.Context, roomNumber string) ([]models.Guest, error) {
	if _, err := s.rooms.FindByNumber(ctx, roomNumber); err != nil {
		return nil, storeError("find room", "room", roomNumber, err)
	}
	guests, err := s.guests.ListByRoom(ctx, roomNumber)
	if err != nil {
		return nil, helpers.Persistence("list guests", err)
	}
	return guests, nil
}

// BookRoomForGuest books the guest's room and records the guest. When the
// guest cannot be stored the room goes back to Available.
func (s *RoomService) BookRoomForGuest(ctx context.Context, guest models.Guest) (Booking, error) {
	if err := helpers.Validate(guest); err != nil {
		return Booking{}, err
	}
	room, err := s.BookRoom(ctx, guest.RoomNumber)
	if err != nil {
		return Booking{}, err
	}
	saved, err := s.AddGuest(ctx, guest)
	if err != nil {
		s.release(ctx, guest.RoomNumber)
		return Booking{}, err
	}
	room.Status = models.RoomBooked
	return Booking{Room: room, Guest: saved}, nil
}

func (s *RoomService) release(ctx context.Context, roomNumber string) {
	ctx = context.WithoutCancel(ctx)
	_, err := s.rooms.SwapStatus(ctx, roomNumber, models.RoomBooked, models.RoomAvailable, s.now().UTC())
	if err != nil {
		metrics.RoomBookings.WithLabelValues("rollback_failed").Inc()
		logger.FromCtx(ctx).Error("room rollback failed", "room_number", roomNumber, "error", err)
		return
	}
	metrics.RoomBookings.WithLabelValues("rolled_back").Inc()
	logger.FromCtx(ctx).Warn("room booking rolled back", "room_number", roomNumber)
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoomStatus string

const (
	RoomAvailable RoomStatus = "Available"
	RoomReserved  RoomStatus = "Reserved"
	RoomBooked    RoomStatus = "Booked"
)

func (s RoomStatus) Valid() bool {
	return s == RoomAvailable || s == RoomReserved || s == RoomBooked
}

// GuestRoom is a hotel room. It has nothing to do with a DiningTable.
type GuestRoom struct {
	ID         primitive.ObjectID `bson:"_id" json:"-"`
	RoomID     string             `bson:"room_id" json:"id"`
	RoomNumber string             `bson:"room_number" json:"roomNumber" validate:"required"`
	RoomType   string             `bson:"room_type" json:"roomType" validate:"required"`
	Price      float64            `bson:"price" json:"price" validate:"gt=0"`
	BedType    string             `bson:"bed_type" json:"bedType" validate:"required"`
	Status     RoomStatus         `bson:"status" json:"status" validate:"omitempty,enum"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Guest struct {
	ID            primitive.ObjectID `bson:"_id" json:"-"`
	GuestID       string             `bson:"guest_id" json:"id"`
	Name          string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	ContactNumber string             `bson:"contact_number" json:"contactNumber" validate:"required"`
	Email         string             `bson:"email" json:"email" validate:"required,email"`
	RoomNumber    string             `bson:"room_number" json:"roomNumber" validate:"required"`
	CheckIn       time.Time          `bson:"check_in" json:"checkIn" validate:"required"`
	CheckOut      time.Time          `bson:"check_out" json:"checkOut" validate:"required,gtfield=CheckIn"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}

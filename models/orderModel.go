package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is a snapshot of a menu item inside a cart, order or bill. Price,
// name and the rest are copied at the time the item was added and never
// follow later menu edits.
type CartLine struct {
	LineID      string  `bson:"line_id" json:"lineId"`
	ItemID      string  `bson:"item_id" json:"itemId" validate:"required"`
	Name        string  `bson:"name" json:"name" validate:"required"`
	Price       float64 `bson:"price" json:"price" validate:"gte=0"`
	Quantity    int     `bson:"quantity" json:"quantity" validate:"gte=1"`
	Ingredients string  `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	Image       string  `bson:"image,omitempty" json:"image,omitempty"`
}

type Order struct {
	ID                  primitive.ObjectID `bson:"_id" json:"-"`
	OrderID             string             `bson:"order_id" json:"id"`
	TableNo             int                `bson:"table_no" json:"tableNo"`
	CustomerName        string             `bson:"customer_name" json:"customerName"`
	ContactNumber       string             `bson:"contact_number" json:"contactNumber"`
	Email               string             `bson:"email" json:"email"`
	CartItems           []CartLine         `bson:"cart_items" json:"cartItems"`
	SubTotal            float64            `bson:"sub_total" json:"subTotal"`
	Tax                 float64            `bson:"tax" json:"tax"`
	GrandTotal          float64            `bson:"grand_total" json:"grandTotal"`
	SpecialInstructions string             `bson:"special_instructions,omitempty" json:"specialInstructions,omitempty"`
	Status              OrderStatus        `bson:"status" json:"status"`
	CreatedAt           time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Totals returns the stored totals of the order.
func (o Order) Totals() Totals {
	return Totals{SubTotal: o.SubTotal, Tax: o.Tax, GrandTotal: o.GrandTotal}
}

// OrderFilter narrows listOrders. Zero values match everything.
type OrderFilter struct {
	Status  OrderStatus
	TableNo int
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMode string

const (
	PaymentCash   PaymentMode = "Cash"
	PaymentCard   PaymentMode = "Card"
	PaymentUPI    PaymentMode = "UPI"
	PaymentOnline PaymentMode = "Online"
)

var PaymentModes = []PaymentMode{PaymentCash, PaymentCard, PaymentUPI, PaymentOnline}

func (p PaymentMode) Valid() bool {
	for _, v := range PaymentModes {
		if p == v {
			return true
		}
	}
	return false
}

// Bill is a settled restaurant transaction. OrderID is set when the bill was
// produced by completing an order and empty for standalone cart checkouts.
type Bill struct {
	ID             primitive.ObjectID `bson:"_id" json:"-"`
	BillID         string             `bson:"bill_id" json:"id"`
	BillNumber     string             `bson:"bill_number" json:"billNumber"`
	OrderID        string             `bson:"order_id,omitempty" json:"orderId,omitempty"`
	CustomerName   string             `bson:"customer_name" json:"customerName"`
	CustomerNumber string             `bson:"customer_number" json:"customerNumber"`
	CartItems      []CartLine         `bson:"cart_items" json:"cartItems"`
	SubTotal       float64            `bson:"sub_total" json:"subTotal"`
	Tax            float64            `bson:"tax" json:"tax"`
	TotalAmount    float64            `bson:"total_amount" json:"totalAmount"`
	PaymentMode    PaymentMode        `bson:"payment_mode" json:"paymentMode"`
	ReceiptPath    string             `bson:"receipt_path,omitempty" json:"receiptPath,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
}

package models

// DiningTable is a restaurant table from the configured floor plan. It is
// never persisted; OpenOrders is filled in from the order store when the
// booking summary is built.
type DiningTable struct {
	TableNumber int    `json:"tableNumber"`
	Seats       int    `json:"seats"`
	QRPayload   string `json:"qrPayload"`
	OpenOrders  int    `json:"openOrders"`
}

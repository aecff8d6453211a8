package models

// Events pushed to the kitchen feed and the order exchange.
const (
	EventNewOrder       = "newOrder"
	EventPrepareStatus  = "prepareStatus"
	EventOrderCompleted = "orderCompleted"
)

// Notification is the envelope written to websocket clients and published to
// the broker.
type Notification struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

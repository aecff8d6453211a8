// Package cart aggregates menu items into a table session's cart and keeps
// sessions server side until checkout or expiry.
package cart

import (
	"time"

	"go-restaurant-pos/models"

	"github.com/google/uuid"
)

// Cart is one ordering session. TableNo is bound when the session is opened
// from a QR payload and never changes afterwards. Totals are not stored.
type Cart struct {
	SessionID string            `json:"sessionId"`
	TableNo   int               `json:"tableNo,omitempty"`
	Lines     []models.CartLine `json:"lines"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// View is a cart together with its derived totals.
type View struct {
	*Cart
	models.Totals
}

func New(tableNo int, now time.Time) *Cart {
	return &Cart{
		SessionID: uuid.NewString(),
		TableNo:   tableNo,
		Lines:     []models.CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem bumps the quantity of the line already holding item, or appends a
// snapshot of item with quantity 1.
func (c *Cart) AddItem(item models.MenuItem) models.CartLine {
	for i := range c.Lines {
		if c.Lines[i].ItemID == item.ItemID {
			c.Lines[i].Quantity++
			return c.Lines[i]
		}
	}
	line := item.Snapshot()
	line.LineID = uuid.NewString()
	c.Lines = append(c.Lines, line)
	return line
}

func (c *Cart) indexOf(lineID string) int {
	for i := range c.Lines {
		if c.Lines[i].LineID == lineID {
			return i
		}
	}
	return -1
}

// Has reports whether lineID is in the cart.
func (c *Cart) Has(lineID string) bool { return c.indexOf(lineID) >= 0 }

// Increment adds one to the line. Unknown ids are ignored.
func (c *Cart) Increment(lineID string) {
	if i := c.indexOf(lineID); i >= 0 {
		c.Lines[i].Quantity++
	}
}

// Decrement takes one from the line and drops it once it reaches zero.
func (c *Cart) Decrement(lineID string) {
	i := c.indexOf(lineID)
	if i < 0 {
		return
	}
	if c.Lines[i].Quantity <= 1 {
		c.RemoveLine(lineID)
		return
	}
	c.Lines[i].Quantity--
}

func (c *Cart) RemoveLine(lineID string) {
	if i := c.indexOf(lineID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

func (c *Cart) Empty() bool { return len(c.Lines) == 0 }

func (c *Cart) Totals() models.Totals { return models.ComputeTotals(c.Lines) }

func (c *Cart) View() View { return View{Cart: c, Totals: c.Totals()} }

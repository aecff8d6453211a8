package services

import (
	"errors"

	"go-restaurant-pos/cart"
	"go-restaurant-pos/helpers"
	"go-restaurant-pos/models"
	"go-restaurant-pos/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// storeError turns a repository error into the helpers taxonomy.
func storeError(op, resource, id string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, cart.ErrNotFound):
		return helpers.NotFound(resource, id)
	case errors.Is(err, repositories.ErrConflict):
		return helpers.Conflict("%s %s: %v", resource, id, err)
	default:
		return helpers.Persistence(op, err)
	}
}

func checkID(resource, id string) error {
	if !primitive.IsValidObjectID(id) {
		return helpers.Invalid("malformed %s id %q", resource, id)
	}
	return nil
}

// ClientTotals are totals a client may send along with its lines. Any field
// left out is taken from the server computation.
type ClientTotals struct {
	SubTotal   *float64
	Tax        *float64
	GrandTotal *float64
}

// checkTotals recomputes totals from lines and rejects client totals that are
// off by more than a cent.
func checkTotals(lines []models.CartLine, client ClientTotals) (models.Totals, error) {
	computed := models.ComputeTotals(lines)
	claimed := computed
	if client.SubTotal != nil {
		claimed.SubTotal = *client.SubTotal
	}
	if client.Tax != nil {
		claimed.Tax = *client.Tax
	}
	if client.GrandTotal != nil {
		claimed.GrandTotal = *client.GrandTotal
	}
	if !computed.Agrees(claimed) {
		return computed, helpers.Invalid(
			"totals do not match the items: expected subTotal %.2f, tax %.2f, total %.2f",
			computed.SubTotal, computed.Tax, computed.GrandTotal)
	}
	return computed, nil
}

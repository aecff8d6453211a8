package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

func (c color) Valid() bool { return c == "red" || c == "blue" }

type paintRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Color color  `json:"color" validate:"required,enum"`
	Coats int    `json:"coats" validate:"gte=1"`
}

func TestValidateNamesJSONFields(t *testing.T) {
	err := Validate(paintRequest{Email: "nope", Color: "green"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "color")
	assert.Contains(t, ve.Fields, "coats")
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
}

func TestValidatePasses(t *testing.T) {
	assert.NoError(t, Validate(paintRequest{Name: "a", Email: "a@b.co", Color: "red", Coats: 2}))
}

func TestEnumNeedsKnownValues(t *testing.T) {
	require.NotPanics(t, func() { newValidator() })

	err := Validate(struct {
		Shade string `json:"shade" validate:"enum"`
	}{Shade: "red"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "shade")
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(NotFound("order", "x")))
	assert.Equal(t, http.StatusConflict, StatusCode(fmt.Errorf("wrap: %w", Conflict("taken"))))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(Persistence("insert order", errors.New("boom"))))
	assert.Equal(t, "insert order: boom", Persistence("insert order", errors.New("boom")).Error())
}

func TestStaffToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	token, err := GenerateStaffToken("asha", RoleKitchen, time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "asha", claims.Name)
	assert.Equal(t, RoleKitchen, claims.Role)

	_, err = GenerateStaffToken("x", "customer", time.Minute)
	assert.Error(t, err)

	expired, err := GenerateStaffToken("asha", RoleKitchen, -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired)
	assert.Error(t, err)
}

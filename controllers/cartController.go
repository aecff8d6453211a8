package controllers

import (
	"net/http"

	"go-restaurant-pos/cart"
	"go-restaurant-pos/helpers"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ItemID string `json:"itemId"`
}

func OpenCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.OpenCartInput
		// The body is optional; a session without a QR payload has no table yet.
		if c.Request.ContentLength != 0 && !bindJSON(c, &in) {
			return
		}
		view, err := carts.Open(c.Request.Context(), in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

func GetCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := carts.Get(c.Request.Context(), c.Param("session_id"))
		respondCart(c, view, err)
	}
}

func AddCartItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if !bindJSON(c, &req) {
			return
		}
		if req.ItemID == "" {
			helpers.RespondError(c, helpers.Invalid("itemId is required"))
			return
		}
		view, err := carts.AddItem(c.Request.Context(), c.Param("session_id"), req.ItemID)
		respondCart(c, view, err)
	}
}

func IncrementCartLine(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := carts.Increment(c.Request.Context(), c.Param("session_id"), c.Param("line_id"))
		respondCart(c, view, err)
	}
}

func DecrementCartLine(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := carts.Decrement(c.Request.Context(), c.Param("session_id"), c.Param("line_id"))
		respondCart(c, view, err)
	}
}

func RemoveCartLine(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := carts.RemoveLine(c.Request.Context(), c.Param("session_id"), c.Param("line_id"))
		respondCart(c, view, err)
	}
}

func AbandonCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")
		if err := carts.Abandon(c.Request.Context(), sessionID); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart abandoned", "sessionId": sessionID})
	}
}

func CheckoutCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.CheckoutInput
		if !bindJSON(c, &in) {
			return
		}
		order, err := carts.Checkout(c.Request.Context(), c.Param("session_id"), in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func respondCart(c *gin.Context, view cart.View, err error) {
	if err != nil {
		helpers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

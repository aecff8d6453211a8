package controllers

import (
	"net/http"
	"strconv"

	"go-restaurant-pos/helpers"
	"go-restaurant-pos/models"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into dst and answers 400 when it cannot.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		helpers.RespondError(c, helpers.Invalid("invalid request body: %v", err))
		return false
	}
	return true
}

func GetOrders(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.OrderFilter{Status: models.OrderStatus(c.Query("status"))}
		if raw := c.Query("tableNo"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				helpers.RespondError(c, helpers.Invalid("tableNo %q is not a table number", raw))
				return
			}
			filter.TableNo = n
		}
		result, err := orders.List(c.Request.Context(), filter)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func GetOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.Get(c.Request.Context(), c.Param("order_id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func PlaceOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.PlaceOrderInput
		if !bindJSON(c, &in) {
			return
		}
		order, err := orders.Place(c.Request.Context(), in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

type statusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func UpdateOrderStatus(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusRequest
		if !bindJSON(c, &req) {
			return
		}
		order, err := orders.UpdateStatus(c.Request.Context(), c.Param("order_id"), req.Status)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func DeleteOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("order_id")
		if err := orders.Delete(c.Request.Context(), orderID); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order deleted", "id": orderID})
	}
}

// CompleteOrder bills the order and marks it Completed.
func CompleteOrder(billing *services.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.CompleteOrderInput
		if !bindJSON(c, &in) {
			return
		}
		done, err := billing.CompleteOrder(c.Request.Context(), c.Param("order_id"), in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, done)
	}
}

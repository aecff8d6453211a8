package controllers

import (
	"net/http"

	"go-restaurant-pos/helpers"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

func GetBills(billing *services.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bills, err := billing.List(c.Request.Context())
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bills)
	}
}

func CreateBill(billing *services.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.CreateBillInput
		if !bindJSON(c, &in) {
			return
		}
		bill, err := billing.CreateBill(c.Request.Context(), in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, bill)
	}
}

func DeleteBill(billing *services.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		billID := c.Param("id")
		if err := billing.Delete(c.Request.Context(), billID); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "bill deleted", "id": billID})
	}
}

func GetReceipt(billing *services.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		receipt, err := billing.Receipt(c.Request.Context(), c.Param("id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.String(http.StatusOK, receipt)
	}
}

package routes

import (
	"go-restaurant-pos/controllers"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

func BillRoutes(incomingRoutes *gin.RouterGroup, billing *services.BillingService, staff gin.HandlerFunc) {
	incomingRoutes.GET("/bills/get-res-bills", controllers.GetBills(billing))
	incomingRoutes.POST("/bills/add-res-bills", controllers.CreateBill(billing))
	incomingRoutes.DELETE("/bills/delete-res-bills/:id", staff, controllers.DeleteBill(billing))
	incomingRoutes.GET("/bills/:id/receipt", controllers.GetReceipt(billing))
}

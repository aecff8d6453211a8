package routes

import (
	"go-restaurant-pos/controllers"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.RouterGroup, orders *services.OrderService, billing *services.BillingService, staff gin.HandlerFunc) {
	incomingRoutes.GET("/orders", controllers.GetOrders(orders))
	incomingRoutes.GET("/orders/:order_id", controllers.GetOrder(orders))
	incomingRoutes.POST("/orders/place", controllers.PlaceOrder(orders))
	incomingRoutes.PATCH("/orders/:order_id/status", staff, controllers.UpdateOrderStatus(orders))
	incomingRoutes.DELETE("/orders/:order_id", staff, controllers.DeleteOrder(orders))
	incomingRoutes.POST("/orders/:order_id/complete", staff, controllers.CompleteOrder(billing))
}

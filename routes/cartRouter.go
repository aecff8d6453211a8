package routes

import (
	"go-restaurant-pos/controllers"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

func CartRoutes(incomingRoutes *gin.RouterGroup, carts *services.CartService) {
	incomingRoutes.POST("/cart", controllers.OpenCart(carts))
	incomingRoutes.GET("/cart/:session_id", controllers.GetCart(carts))
	incomingRoutes.DELETE("/cart/:session_id", controllers.AbandonCart(carts))
	incomingRoutes.POST("/cart/:session_id/items", controllers.AddCartItem(carts))
	incomingRoutes.PATCH("/cart/:session_id/lines/:line_id/increment", controllers.IncrementCartLine(carts))
	incomingRoutes.PATCH("/cart/:session_id/lines/:line_id/decrement", controllers.DecrementCartLine(carts))
	incomingRoutes.DELETE("/cart/:session_id/lines/:line_id", controllers.RemoveCartLine(carts))
	incomingRoutes.POST("/cart/:session_id/checkout", controllers.CheckoutCart(carts))
}

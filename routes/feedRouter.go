package routes

import (
	"go-restaurant-pos/controllers"
	"go-restaurant-pos/notify"

	"github.com/gin-gonic/gin"
)

// FeedRoutes serves the kitchen WebSocket outside the request timeout.
func FeedRoutes(incomingRoutes *gin.Engine, hub *notify.Hub) {
	incomingRoutes.GET("/ws", controllers.HandleWebSocket(hub))
}

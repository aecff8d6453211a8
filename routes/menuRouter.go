package routes

import (
	"go-restaurant-pos/controllers"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

func MenuRoutes(incomingRoutes *gin.RouterGroup, menu *services.MenuService, staff gin.HandlerFunc) {
	incomingRoutes.GET("/menu", controllers.GetMenu(menu))
	incomingRoutes.GET("/menu/:item_id", controllers.GetMenuItem(menu))
	incomingRoutes.POST("/menu", staff, controllers.CreateMenuItem(menu))
}

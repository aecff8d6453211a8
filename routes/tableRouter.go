package routes

import (
	"go-restaurant-pos/controllers"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

func TableRoutes(incomingRoutes *gin.RouterGroup, tables *services.TableService) {
	incomingRoutes.GET("/tables", controllers.GetTables(tables))
	incomingRoutes.GET("/tables/resolve", controllers.ResolveTable(tables))
	incomingRoutes.GET("/tables/:table_no/qr", controllers.GetTableQR(tables))
}

package routes

import (
	"go-restaurant-pos/controllers"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

func RoomRoutes(incomingRoutes *gin.RouterGroup, rooms *services.RoomService) {
	incomingRoutes.GET("/room", controllers.GetRooms(rooms))
	incomingRoutes.POST("/room", controllers.CreateRoom(rooms))
	incomingRoutes.GET("/room/:roomNumber/guests", controllers.GetRoomGuests(rooms))
	incomingRoutes.PATCH("/room/updateStatus/:roomNumber", controllers.UpdateRoomStatus(rooms))
	incomingRoutes.POST("/room/book", controllers.BookRoom(rooms))
	incomingRoutes.POST("/room/book-for-guest", controllers.BookRoomForGuest(rooms))
	incomingRoutes.POST("/customer/add", controllers.AddGuest(rooms))
}

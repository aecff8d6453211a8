package controllers

import (
	"net/http"

	"go-restaurant-pos/helpers"
	"go-restaurant-pos/models"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

type roomStatusRequest struct {
	Status models.RoomStatus `json:"status"`
}

type bookRoomRequest struct {
	RoomNumber string `json:"roomNumber"`
}

func GetRooms(rooms *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := rooms.ListRooms(c.Request.Context())
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, all)
	}
}

func CreateRoom(rooms *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var room models.GuestRoom
		if !bindJSON(c, &room) {
			return
		}
		created, err := rooms.CreateRoom(c.Request.Context(), room)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func UpdateRoomStatus(rooms *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req roomStatusRequest
		if !bindJSON(c, &req) {
			return
		}
		room, err := rooms.UpdateStatus(c.Request.Context(), c.Param("roomNumber"), req.Status)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, room)
	}
}

func BookRoom(rooms *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bookRoomRequest
		if !bindJSON(c, &req) {
			return
		}
		room, err := rooms.BookRoom(c.Request.Context(), req.RoomNumber)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, room)
	}
}

func AddGuest(rooms *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var guest models.Guest
		if !bindJSON(c, &guest) {
			return
		}
		saved, err := rooms.AddGuest(c.Request.Context(), guest)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, saved)
	}
}

func GetRoomGuests(rooms *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guests, err := rooms.ListGuests(c.Request.Context(), c.Param("roomNumber"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, guests)
	}
}

// BookRoomForGuest books and records the guest in one call, releasing the
// room again if the guest cannot be saved.
func BookRoomForGuest(rooms *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var guest models.Guest
		if !bindJSON(c, &guest) {
			return
		}
		booking, err := rooms.BookRoomForGuest(c.Request.Context(), guest)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, booking)
	}
}

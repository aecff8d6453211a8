package controllers

import (
	"net/http"

	"go-restaurant-pos/helpers"
	"go-restaurant-pos/models"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

func GetMenu(menu *services.MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.MenuFilter{
			Category: models.Category(c.Query("category")),
			MealTime: models.MealTime(c.Query("mealTime")),
		}
		items, err := menu.List(c.Request.Context(), filter)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  http.StatusOK,
			"message": "Menu items fetched successfully",
			"data":    items,
		})
	}
}

func GetMenuItem(menu *services.MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := menu.Get(c.Request.Context(), c.Param("item_id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CreateMenuItem(menu *services.MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.CreateMenuItemInput
		if !bindJSON(c, &in) {
			return
		}
		item, err := menu.Create(c.Request.Context(), in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

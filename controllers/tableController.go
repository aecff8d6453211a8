package controllers

import (
	"net/http"
	"strconv"

	"go-restaurant-pos/helpers"
	"go-restaurant-pos/services"

	"github.com/gin-gonic/gin"
)

func GetTables(tables *services.TableService) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := tables.ListTables(c.Request.Context())
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  http.StatusOK,
			"message": "Table items fetched successfully",
			"data":    all,
		})
	}
}

func ResolveTable(tables *services.TableService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableNo, err := tables.ResolveTable(c.Query("payload"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tableNo": tableNo})
	}
}

func GetTableQR(tables *services.TableService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableNo, err := strconv.Atoi(c.Param("table_no"))
		if err != nil {
			helpers.RespondError(c, helpers.Invalid("table number %q is not a number", c.Param("table_no")))
			return
		}
		size := 0
		if raw := c.Query("size"); raw != "" {
			if size, err = strconv.Atoi(raw); err != nil {
				helpers.RespondError(c, helpers.Invalid("size %q is not a number", raw))
				return
			}
		}
		png, err := tables.QRPNG(tableNo, size)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}

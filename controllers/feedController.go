package controllers

import (
	"context"
	"net/http"

	"go-restaurant-pos/notify"

	"github.com/gin-gonic/gin"
)

// HandleWebSocket attaches a kitchen client to the order feed.
func HandleWebSocket(hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	}
}

// Health answers 200 while check passes and 503 otherwise.
func Health(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

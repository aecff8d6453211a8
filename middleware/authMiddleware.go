package middleware

import (
	"net/http"
	"strings"

	"go-restaurant-pos/helpers"
	"go-restaurant-pos/logger"

	"github.com/gin-gonic/gin"
)

// Authentication guards staff routes when enabled. The token comes from the
// token header or an Authorization bearer header.
func Authentication(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		clientToken := c.Request.Header.Get("token")
		if clientToken == "" {
			if bearer, ok := strings.CutPrefix(c.Request.Header.Get("Authorization"), "Bearer "); ok {
				clientToken = strings.TrimSpace(bearer)
			}
		}
		if clientToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "a staff token is required"})
			return
		}
		claims, err := helpers.ValidateToken(clientToken)
		if err != nil {
			logger.FromCtx(c.Request.Context()).Info("staff token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)
		ctx := logger.WithLogger(c.Request.Context(),
			logger.FromCtx(c.Request.Context()).With("staff", claims.Name, "role", claims.Role))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

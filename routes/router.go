package routes

import (
	"context"
	"time"

	"go-restaurant-pos/controllers"
	"go-restaurant-pos/metrics"
	"go-restaurant-pos/middleware"
	"go-restaurant-pos/notify"
	"go-restaurant-pos/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// App is everything the routes hand to the controllers.
type App struct {
	Orders  *services.OrderService
	Billing *services.BillingService
	Menu    *services.MenuService
	Carts   *services.CartService
	Tables  *services.TableService
	Rooms   *services.RoomService
	Hub     *notify.Hub

	CORSOrigins    []string
	AuthEnabled    bool
	RequestTimeout time.Duration
	Health         func(ctx context.Context) error
}

// Setup builds the engine with the middleware chain and every route.
func Setup(app App) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     app.CORSOrigins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", controllers.Health(app.Health))
	router.GET("/metrics", metrics.Handler())
	if app.Hub != nil {
		FeedRoutes(router, app.Hub)
	}

	timeout := app.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	api := router.Group("/", middleware.Timeout(timeout))
	staff := middleware.Authentication(app.AuthEnabled)

	OrderRoutes(api, app.Orders, app.Billing, staff)
	BillRoutes(api, app.Billing, staff)
	MenuRoutes(api, app.Menu, staff)
	CartRoutes(api, app.Carts)
	TableRoutes(api, app.Tables)
	RoomRoutes(api, app.Rooms)

	return router
}

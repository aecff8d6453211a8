package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-restaurant-pos/cache"
	"go-restaurant-pos/cart"
	"go-restaurant-pos/config"
	"go-restaurant-pos/logger"
	"go-restaurant-pos/notify"
	"go-restaurant-pos/routes"
	"go-restaurant-pos/services"
	"go-restaurant-pos/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownGrace = 15 * time.Second

var serveFlags struct {
	port     string
	inMemory bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the kitchen feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, serveFlags.port, serveFlags.inMemory)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.port, "port", "p", config.Port(), "port to listen on")
	serveCmd.Flags().BoolVar(&serveFlags.inMemory, "memory", false, "keep orders, bills, menu and rooms in process instead of MongoDB")
}

func serve(ctx context.Context, port string, inMemory bool) error {
	if config.AppEnv() == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	tables, err := config.DiningTables()
	if err != nil {
		return err
	}

	b, err := openBackend(ctx, inMemory)
	if err != nil {
		return err
	}
	defer b.Close(context.Background())

	disk, err := storage.Open(ctx)
	if err != nil {
		return err
	}

	hub := notify.NewHub()
	go hub.Run(ctx)

	// A nil *Publisher must not reach the Fanout as a non-nil interface.
	var events notify.EventPublisher
	if url := config.AMQPURL(); url != "" {
		pub := notify.NewPublisher(url)
		defer pub.Close()
		events = pub
	}
	notifier := notify.NewFanout(hub, events)

	var carts cart.Store = cart.NewMemoryStore(config.CartTTL())
	if b.redis != nil {
		carts = cart.NewRedisStore(b.redis, config.CartTTL())
	}

	orders := services.NewOrderService(b.orders, notifier)
	menu := services.NewMenuService(b.menu, cache.NewMenu(b.redis, config.MenuCacheTTL()))
	tableService := services.NewTableService(tables, config.QRBaseURL(), b.orders)

	router := routes.Setup(routes.App{
		Orders:         orders,
		Billing:        services.NewBillingService(b.bills, orders, disk, notifier, config.VenueName()),
		Menu:           menu,
		Carts:          services.NewCartService(carts, menu, tableService, orders),
		Tables:         tableService,
		Rooms:          services.NewRoomService(b.rooms, b.guests),
		Hub:            hub,
		CORSOrigins:    config.CORSOrigins(),
		AuthEnabled:    config.AuthEnabled(),
		RequestTimeout: config.RequestTimeout(),
		Health:         b.ping,
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", port, "env", config.AppEnv(), "in_memory", inMemory)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	<-hub.Done()
	return nil
}

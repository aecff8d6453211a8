package commands

import (
	"context"

	"go-restaurant-pos/cache"
	"go-restaurant-pos/database"
	"go-restaurant-pos/logger"
	"go-restaurant-pos/repositories"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// backend is the set of stores every command works against.
type backend struct {
	orders repositories.OrderRepository
	bills  repositories.BillRepository
	menu   repositories.MenuRepository
	rooms  repositories.RoomRepository
	guests repositories.GuestRepository

	mongo *mongo.Client
	redis *redis.Client
}

// openBackend connects to MongoDB and, when configured, Redis. With inMemory
// set the repositories live in process and nothing survives a restart.
func openBackend(ctx context.Context, inMemory bool) (*backend, error) {
	b := &backend{}
	if inMemory {
		mem := repositories.NewMemory()
		b.orders, b.bills, b.menu, b.rooms, b.guests = mem.Orders(), mem.Bills(), mem.Menu(), mem.Rooms(), mem.Guests()
		logger.Warn("using in-memory repositories; data is lost on exit")
	} else {
		client, err := database.Connect(ctx)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureIndexes(ctx, client); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		b.mongo = client
		b.orders = repositories.NewOrderRepository(client)
		b.bills = repositories.NewBillRepository(client)
		b.menu = repositories.NewMenuRepository(client)
		b.rooms = repositories.NewRoomRepository(client)
		b.guests = repositories.NewGuestRepository(client)
	}

	rdb, err := cache.Connect(ctx)
	if err != nil {
		b.Close(ctx)
		return nil, err
	}
	if rdb != nil {
		logger.Info("connected to redis")
	}
	b.redis = rdb
	return b, nil
}

// ping reports whether the external stores still answer.
func (b *backend) ping(ctx context.Context) error {
	if b.mongo != nil {
		if err := b.mongo.Ping(ctx, nil); err != nil {
			return err
		}
	}
	if b.redis != nil {
		return b.redis.Ping(ctx).Err()
	}
	return nil
}

func (b *backend) Close(ctx context.Context) {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			logger.Warn("closing redis", "error", err)
		}
	}
	if b.mongo != nil {
		if err := b.mongo.Disconnect(ctx); err != nil {
			logger.Warn("closing mongodb", "error", err)
		}
	}
}

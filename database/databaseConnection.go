package database

import (
	"context"
	"fmt"
	"time"

	"go-restaurant-pos/config"
	"go-restaurant-pos/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	OrderCollection = "order"
	BillCollection  = "resBill"
	MenuCollection  = "menuItem"
	RoomCollection  = "room"
	GuestCollection = "customer"
)

// BillOrderIndex is the unique index that allows one bill per order.
const BillOrderIndex = "bill_order_unique"

// Connect opens a client against MONGODB_URL and pings it.
func Connect(ctx context.Context) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(config.MongoURL()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	logger.Info("connected to mongodb", "database", config.DatabaseName())
	return client, nil
}

// OpenCollection returns a handle on name in the configured database.
func OpenCollection(client *mongo.Client, name string) *mongo.Collection {
	return client.Database(config.DatabaseName()).Collection(name)
}

// EnsureIndexes creates the lookup indexes the repositories rely on. The room
// number index is unique so two rooms can never share a number, and a bill
// linked to an order is unique per order.
func EnsureIndexes(ctx context.Context, client *mongo.Client) error {
	specs := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{OrderCollection, mongo.IndexModel{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{OrderCollection, mongo.IndexModel{Keys: bson.D{{Key: "table_no", Value: 1}, {Key: "created_at", Value: -1}}}},
		{OrderCollection, mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}}},
		{BillCollection, mongo.IndexModel{Keys: bson.D{{Key: "bill_id", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{BillCollection, mongo.IndexModel{Keys: bson.D{{Key: "bill_number", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{BillCollection, mongo.IndexModel{
			Keys: bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetName(BillOrderIndex).SetUnique(true).
				SetPartialFilterExpression(bson.M{"order_id": bson.M{"$exists": true}}),
		}},
		{MenuCollection, mongo.IndexModel{Keys: bson.D{{Key: "item_id", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{RoomCollection, mongo.IndexModel{Keys: bson.D{{Key: "room_number", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{GuestCollection, mongo.IndexModel{Keys: bson.D{{Key: "room_number", Value: 1}}}},
	}
	for _, s := range specs {
		if _, err := OpenCollection(client, s.collection).Indexes().CreateOne(ctx, s.model); err != nil {
			return fmt.Errorf("database: index on %s: %w", s.collection, err)
		}
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-restaurant-pos/database"
	"go-restaurant-pos/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoOrders struct {
	col *mongo.Collection
}

func NewOrderRepository(client *mongo.Client) OrderRepository {
	return &mongoOrders{col: database.OpenCollection(client, database.OrderCollection)}
}

func (r *mongoOrders) Insert(ctx context.Context, order *models.Order) error {
	if _, err := r.col.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("order %s: %w", order.OrderID, ErrConflict)
		}
		return err
	}
	return nil
}

func (r *mongoOrders) FindByID(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return order, ErrNotFound
	}
	return order, err
}

func (r *mongoOrders) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.TableNo > 0 {
		query["table_no"] = filter.TableNo
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *mongoOrders) UpdateStatus(ctx context.Context, orderID string, from, to models.OrderStatus, at time.Time) (models.Order, error) {
	var order models.Order
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"order_id": orderID, "status": from},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: to}, {Key: "updated_at", Value: at}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return order, r.missOrConflict(ctx, orderID)
	}
	return order, err
}

// missOrConflict tells a missing order apart from one whose status moved.
func (r *mongoOrders) missOrConflict(ctx context.Context, orderID string) error {
	n, err := r.col.CountDocuments(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrConflict
}

func (r *mongoOrders) Delete(ctx context.Context, orderID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoOrders) CountOpenByTable(ctx context.Context) (map[int]int, error) {
	open := make([]models.OrderStatus, 0, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		if s.Open() {
			open = append(open, s)
		}
	}
	match := bson.D{{Key: "$match", Value: bson.D{{Key: "status", Value: bson.D{{Key: "$in", Value: open}}}}}}
	group := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$table_no"},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}}

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{match, group})
	if err != nil {
		return nil, err
	}
	var rows []struct {
		TableNo int `bson:"_id"`
		Count   int `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.TableNo] = row.Count
	}
	return counts, nil
}

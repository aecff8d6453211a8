package repositories

import (
	"context"
	"errors"
	"fmt"

	"go-restaurant-pos/database"
	"go-restaurant-pos/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoMenu struct {
	col *mongo.Collection
}

func NewMenuRepository(client *mongo.Client) MenuRepository {
	return &mongoMenu{col: database.OpenCollection(client, database.MenuCollection)}
}

func (r *mongoMenu) Insert(ctx context.Context, item *models.MenuItem) error {
	if _, err := r.col.InsertOne(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("menu item %s: %w", item.ItemID, ErrConflict)
		}
		return err
	}
	return nil
}

func (r *mongoMenu) FindByID(ctx context.Context, itemID string) (models.MenuItem, error) {
	var item models.MenuItem
	err := r.col.FindOne(ctx, bson.M{"item_id": itemID}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return item, ErrNotFound
	}
	return item, err
}

func (r *mongoMenu) List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.MealTime != "" {
		query["meal_time"] = filter.MealTime
	}
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	items := []models.MenuItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

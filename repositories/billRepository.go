package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go-restaurant-pos/database"
	"go-restaurant-pos/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoBills struct {
	col *mongo.Collection
}

func NewBillRepository(client *mongo.Client) BillRepository {
	return &mongoBills{col: database.OpenCollection(client, database.BillCollection)}
}

func (r *mongoBills) Insert(ctx context.Context, bill *models.Bill) error {
	if _, err := r.col.InsertOne(ctx, bill); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), database.BillOrderIndex) {
				return fmt.Errorf("order %s: %w", bill.OrderID, ErrAlreadyBilled)
			}
			return fmt.Errorf("bill number %s: %w", bill.BillNumber, ErrConflict)
		}
		return err
	}
	return nil
}

func (r *mongoBills) FindByID(ctx context.Context, billID string) (models.Bill, error) {
	var bill models.Bill
	err := r.col.FindOne(ctx, bson.M{"bill_id": billID}).Decode(&bill)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return bill, ErrNotFound
	}
	return bill, err
}

func (r *mongoBills) List(ctx context.Context) ([]models.Bill, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	bills := []models.Bill{}
	if err := cur.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *mongoBills) Delete(ctx context.Context, billID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"bill_id": billID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBills) SetReceiptPath(ctx context.Context, billID, path string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"bill_id": billID},
		bson.D{{Key: "$set", Value: bson.D{{Key: "receipt_path", Value: path}}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// LastNumber relies on the zero padded sequence sorting lexically.
func (r *mongoBills) LastNumber(ctx context.Context, prefix string) (string, error) {
	filter := bson.M{"bill_number": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix)}}
	opts := options.FindOne().SetSort(bson.D{{Key: "bill_number", Value: -1}})

	var last models.Bill
	err := r.col.FindOne(ctx, filter, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return last.BillNumber, nil
}

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

type mongoRooms struct {
	col *mongo.Collection
}

func NewRoomRepository(client *mongo.Client) RoomRepository {
	return &mongoRooms{col: database.OpenCollection(client, database.RoomCollection)}
}

func (r *mongoRooms) Insert(ctx context.Context, room *models.GuestRoom) error {
	if _, err := r.col.InsertOne(ctx, room); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("room %s: %w", room.RoomNumber, ErrConflict)
		}
		return err
	}
	return nil
}

func (r *mongoRooms) FindByNumber(ctx context.Context, roomNumber string) (models.GuestRoom, error) {
	var room models.GuestRoom
	err := r.col.FindOne(ctx, bson.M{"room_number": roomNumber}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return room, ErrNotFound
	}
	return room, err
}

func (r *mongoRooms) List(ctx context.Context) ([]models.GuestRoom, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "room_number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	rooms := []models.GuestRoom{}
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *mongoRooms) SetStatus(ctx context.Context, roomNumber string, to models.RoomStatus, at time.Time) (models.GuestRoom, error) {
	return r.update(ctx, bson.M{"room_number": roomNumber}, to, at)
}

func (r *mongoRooms) SwapStatus(ctx context.Context, roomNumber string, from, to models.RoomStatus, at time.Time) (models.GuestRoom, error) {
	room, err := r.update(ctx, bson.M{"room_number": roomNumber, "status": from}, to, at)
	if errors.Is(err, ErrNotFound) {
		n, cerr := r.col.CountDocuments(ctx, bson.M{"room_number": roomNumber})
		if cerr != nil {
			return room, cerr
		}
		if n > 0 {
			return room, ErrConflict
		}
	}
	return room, err
}

func (r *mongoRooms) update(ctx context.Context, filter bson.M, to models.RoomStatus, at time.Time) (models.GuestRoom, error) {
	var room models.GuestRoom
	err := r.col.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: to}, {Key: "updated_at", Value: at}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return room, ErrNotFound
	}
	return room, err
}

type mongoGuests struct {
	col *mongo.Collection
}

func NewGuestRepository(client *mongo.Client) GuestRepository {
	return &mongoGuests{col: database.OpenCollection(client, database.GuestCollection)}
}

func (r *mongoGuests) Insert(ctx context.Context, guest *models.Guest) error {
	_, err := r.col.InsertOne(ctx, guest)
	return err
}

func (r *mongoGuests) ListByRoom(ctx context.Context, roomNumber string) ([]models.Guest, error) {
	cur, err := r.col.Find(ctx, bson.M{"room_number": roomNumber},
		options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}}))
	if err != nil {
		return nil, err
	}
	guests := []models.Guest{}
	if err := cur.All(ctx, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}

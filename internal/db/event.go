package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mediadesk/coverage-allocator/internal/allocator"
	"github.com/mediadesk/coverage-allocator/internal/models"
)

// EventCollection defines the interface for event database operations.
type EventCollection interface {
	InsertEvent(ctx context.Context, event models.Event) (primitive.ObjectID, error)
	FindEventByID(ctx context.Context, id string) (*models.Event, error)
	FindEvents(ctx context.Context, filter bson.M) ([]models.Event, error)
	UpdateEventStatus(ctx context.Context, id string, status models.EventStatus) error
}

// MongoEventCollection implements EventCollection for MongoDB.
type MongoEventCollection struct {
	Collection *mongo.Collection
}

// InsertEvent inserts an event record into the collection.
func (c *MongoEventCollection) InsertEvent(ctx context.Context, event models.Event) (primitive.ObjectID, error) {
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	if event.Status == "" {
		event.Status = models.EventScheduled
	}
	res, err := c.Collection.InsertOne(ctx, event)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// FindEventByID finds an event by its ID.
func (c *MongoEventCollection) FindEventByID(ctx context.Context, id string) (*models.Event, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, allocator.ErrEventNotFound
	}
	var event models.Event
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, allocator.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindEvents queries event records from the collection.
func (c *MongoEventCollection) FindEvents(ctx context.Context, filter bson.M) ([]models.Event, error) {
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateEventStatus updates the status of an event by its ID.
func (c *MongoEventCollection) UpdateEventStatus(ctx context.Context, id string, status models.EventStatus) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return allocator.ErrEventNotFound
	}
	result, err := c.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return allocator.ErrEventNotFound
	}
	return nil
}

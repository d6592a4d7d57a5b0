package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mediadesk/coverage-allocator/internal/allocator"
	"github.com/mediadesk/coverage-allocator/internal/models"
)

// ResourceCollection defines the interface for resource database operations.
type ResourceCollection interface {
	allocator.ResourceStore
	InsertResource(ctx context.Context, resource models.Resource) (primitive.ObjectID, error)
	FindResourceByID(ctx context.Context, id string) (*models.Resource, error)
	FindResources(ctx context.Context, filter bson.M) ([]models.Resource, error)
	UpdateLocation(ctx context.Context, id string, location models.GeoPoint) error
}

// MongoResourceCollection implements ResourceCollection for MongoDB.
type MongoResourceCollection struct {
	Collection *mongo.Collection
}

// InsertResource inserts a resource record into the collection.
func (c *MongoResourceCollection) InsertResource(ctx context.Context, resource models.Resource) (primitive.ObjectID, error) {
	if c.Collection == nil {
		return primitive.NilObjectID, fmt.Errorf("mongo collection is nil")
	}
	resource.CreatedAt = time.Now()
	resource.UpdatedAt = time.Now()
	if resource.Status == "" {
		resource.Status = models.StatusAvailable
	}
	if resource.BookingSchedule == nil {
		resource.BookingSchedule = []models.BookingEntry{}
	}
	res, err := c.Collection.InsertOne(ctx, resource)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// FindResourceByID finds a resource by its ID.
func (c *MongoResourceCollection) FindResourceByID(ctx context.Context, id string) (*models.Resource, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID: %w", err)
	}
	var resource models.Resource
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&resource)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, allocator.ErrResourceNotFound
		}
		return nil, err
	}
	return &resource, nil
}

// FindResources queries resource records from the collection.
func (c *MongoResourceCollection) FindResources(ctx context.Context, filter bson.M) ([]models.Resource, error) {
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var resources []models.Resource
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// FindAvailable returns up to limit resources matching the availability query.
func (c *MongoResourceCollection) FindAvailable(ctx context.Context, q allocator.AvailabilityQuery, limit int64) ([]models.Resource, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, q.Filter(), options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var resources []models.Resource
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// AddBooking appends a booking entry and flips the availability status. The
// filter re-asserts that no blocking entry overlaps the new window, so a
// concurrent reservation for the same window loses the write instead of
// corrupting the schedule.
func (c *MongoResourceCollection) AddBooking(ctx context.Context, id primitive.ObjectID, entry models.BookingEntry, status models.AvailabilityStatus) error {
	filter := bson.M{
		"_id": id,
		"booking_schedule": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"status": bson.M{"$in": []models.BookingStatus{models.BookingTentative, models.BookingConfirmed}},
			"start":  bson.M{"$lt": entry.End},
			"end":    bson.M{"$gt": entry.Start},
		}}},
	}
	update := bson.M{
		"$push": bson.M{"booking_schedule": entry},
		"$set":  bson.M{"availability_status": status, "updated_at": time.Now()},
	}
	result, err := c.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("resource %s: %w", id.Hex(), allocator.ErrResourceNotFound)
	}
	return nil
}

// ReleaseEvent pulls every booking referencing the event and resets the
// touched resources to available in one UpdateMany.
func (c *MongoResourceCollection) ReleaseEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	result, err := c.Collection.UpdateMany(ctx,
		bson.M{"booking_schedule.event_id": eventID},
		bson.M{
			"$pull": bson.M{"booking_schedule": bson.M{"event_id": eventID}},
			"$set":  bson.M{"availability_status": models.StatusAvailable, "updated_at": time.Now()},
		},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// UpdateLocation records a location ping for a resource.
func (c *MongoResourceCollection) UpdateLocation(ctx context.Context, id string, location models.GeoPoint) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid resource ID: %w", err)
	}
	if location.UpdatedAt.IsZero() {
		location.UpdatedAt = time.Now()
	}
	result, err := c.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"last_known_location": location, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return allocator.ErrResourceNotFound
	}
	return nil
}

package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

// AssignmentCollection defines the interface for assignment database operations.
type AssignmentCollection interface {
	InsertAssignment(ctx context.Context, assignment models.Assignment) error
	FindAssignmentsByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.Assignment, error)
	FindOverlapping(ctx context.Context, assigneeID primitive.ObjectID, start, end time.Time, statuses []models.AssignmentStatus) ([]models.Assignment, error)
	UpdateAssignmentStatus(ctx context.Context, id string, status models.AssignmentStatus) error
}

// MongoAssignmentCollection implements AssignmentCollection for MongoDB.
type MongoAssignmentCollection struct {
	Collection *mongo.Collection
}

// InsertAssignment inserts an assignment record into the collection.
func (c *MongoAssignmentCollection) InsertAssignment(ctx context.Context, assignment models.Assignment) error {
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, assignment)
	return err
}

// FindAssignmentsByEvent returns all assignments for an event.
func (c *MongoAssignmentCollection) FindAssignmentsByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.Assignment, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var assignments []models.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindOverlapping returns the assignee's assignments in any of the given
// statuses whose window overlaps [start, end).
func (c *MongoAssignmentCollection) FindOverlapping(ctx context.Context, assigneeID primitive.ObjectID, start, end time.Time, statuses []models.AssignmentStatus) ([]models.Assignment, error) {
	filter := bson.M{
		"assignee_id": assigneeID,
		"status":      bson.M{"$in": statuses},
		"start":       bson.M{"$lt": end},
		"end":         bson.M{"$gt": start},
	}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var assignments []models.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// UpdateAssignmentStatus updates the status of an assignment by its ID.
func (c *MongoAssignmentCollection) UpdateAssignmentStatus(ctx context.Context, id string, status models.AssignmentStatus) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = c.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	return err
}

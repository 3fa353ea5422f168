package taskRepo

import (
	"context"
	"fmt"
	"time"

	"tasknest/database"
	"tasknest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTaskRepo implements TaskRepository using MongoDB.
type MongoTaskRepo struct {
	coll *mongo.Collection
}

// NewMongoTaskRepo creates a new instance of TaskRepository using MongoDB.
func NewMongoTaskRepo() TaskRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("tasks")
	repo := &MongoTaskRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoTaskRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_time", Value: 1}}},
		// The sweep queries by notification window and completion flag.
		{Keys: bson.D{{Key: "notification_time", Value: 1}, {Key: "is_completed", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a task by its unique ID.
func (r *MongoTaskRepo) GetByID(id string) (*models.Task, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var task models.Task
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&task); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch task with id %s: %w", id, err)
	}
	return &task, nil
}

// ListByUser retrieves all tasks for the user ordered by start time.
func (r *MongoTaskRepo) ListByUser(userID string) ([]models.Task, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	for cursor.Next(ctx) {
		var t models.Task
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Upsert inserts or replaces the task document keyed by its ID.
func (r *MongoTaskRepo) Upsert(task *models.Task) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": task.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, task, opts); err != nil {
		return fmt.Errorf("failed to save task with id %s: %w", task.ID, err)
	}
	return nil
}

// Delete removes a task document by its ID.
func (r *MongoTaskRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete task with id %s: %w", id, err)
	}
	return nil
}

// SetCompleted updates the completion flag and returns the updated task.
func (r *MongoTaskRepo) SetCompleted(id string, completed bool) (*models.Task, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"is_completed": completed}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task models.Task
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&task); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to toggle task with id %s: %w", id, err)
	}
	return &task, nil
}

// FindDueBetween retrieves incomplete tasks with a notification time inside
// the inclusive [start, end] window.
func (r *MongoTaskRepo) FindDueBetween(start, end time.Time) ([]models.Task, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"notification_time": bson.M{"$gte": start, "$lte": end},
		"is_completed":      false,
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query due tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	for cursor.Next(ctx) {
		var t models.Task
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

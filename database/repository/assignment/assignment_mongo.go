package assignmentRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAssignmentRepo implements AssignmentRepository using MongoDB.
type MongoAssignmentRepo struct {
	assignmentColl *mongo.Collection
}

// NewMongoAssignmentRepo constructs a new instance of MongoAssignmentRepo.
func NewMongoAssignmentRepo() AssignmentRepository {
	return &MongoAssignmentRepo{
		assignmentColl: database.DB().Collection("assignments"),
	}
}

func (repo *MongoAssignmentRepo) RecentAssignments(ctx context.Context, providerIDs []string, since time.Time) ([]models.Assignment, error) {
	filter := bson.M{
		"provider_id":   bson.M{"$in": providerIDs},
		"booking_start": bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "assigned_at", Value: 1}})
	cursor, err := repo.assignmentColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching recent assignments: %w", err)
	}
	defer cursor.Close(ctx)

	var assignments []models.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("error decoding assignments: %w", err)
	}
	return assignments, nil
}

func (repo *MongoAssignmentRepo) PersistAssignments(ctx context.Context, assignments []models.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(assignments))
	for _, a := range assignments {
		docs = append(docs, a)
	}
	if _, err := repo.assignmentColl.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error persisting assignments: %w", err)
	}
	return nil
}

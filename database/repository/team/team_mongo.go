package teamRepo

import (
	"context"
	"fmt"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTeamRepo implements TeamRepository using MongoDB.
type MongoTeamRepo struct {
	memberColl *mongo.Collection
}

// NewMongoTeamRepo constructs a new instance of MongoTeamRepo.
func NewMongoTeamRepo() TeamRepository {
	return &MongoTeamRepo{
		memberColl: database.DB().Collection("team_members"),
	}
}

// GetMembers returns team members ordered by priority then provider id, so
// the fetch order is stable for the assignment resolver's stable sort.
func (repo *MongoTeamRepo) GetMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}, {Key: "provider_id", Value: 1}})
	cursor, err := repo.memberColl.Find(ctx, bson.M{"team_id": teamID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching members for team %s: %w", teamID, err)
	}
	defer cursor.Close(ctx)

	var members []models.TeamMember
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("error decoding team members: %w", err)
	}
	return members, nil
}

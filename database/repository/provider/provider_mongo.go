package providerRepo

import (
	"context"
	"fmt"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	providerColl *mongo.Collection
}

// NewMongoProviderRepo constructs a new instance of MongoProviderRepo.
func NewMongoProviderRepo() ProviderRepository {
	return &MongoProviderRepo{
		providerColl: database.DB().Collection("providers"),
	}
}

func (repo *MongoProviderRepo) GetByID(ctx context.Context, providerID string) (*models.Provider, error) {
	var provider models.Provider
	if err := repo.providerColl.FindOne(ctx, bson.M{"id": providerID}).Decode(&provider); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("provider with id %s not found", providerID)
		}
		return nil, fmt.Errorf("error fetching provider with id %s: %w", providerID, err)
	}
	return &provider, nil
}

func (repo *MongoProviderRepo) GetByIDs(ctx context.Context, providerIDs []string) ([]models.Provider, error) {
	cursor, err := repo.providerColl.Find(ctx, bson.M{"id": bson.M{"$in": providerIDs}})
	if err != nil {
		return nil, fmt.Errorf("error fetching providers: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("error decoding providers: %w", err)
	}
	return providers, nil
}

func (repo *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	if _, err := repo.providerColl.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("error creating provider: %w", err)
	}
	return nil
}

func (repo *MongoProviderRepo) UpdateCalendar(ctx context.Context, providerID string, conn models.CalendarConnection) error {
	update := bson.M{"$set": bson.M{"calendar": conn}}
	res, err := repo.providerColl.UpdateOne(ctx, bson.M{"id": providerID}, update)
	if err != nil {
		return fmt.Errorf("error updating calendar connection for provider %s: %w", providerID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s not found", providerID)
	}
	return nil
}

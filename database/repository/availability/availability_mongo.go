package availabilityRepo

import (
	"context"
	"fmt"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	rulesColl    *mongo.Collection
	blackoutColl *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.DB()
	return &MongoAvailabilityRepo{
		rulesColl:    db.Collection("availability_rules"),
		blackoutColl: db.Collection("blackout_ranges"),
	}
}

func (repo *MongoAvailabilityRepo) GetRules(ctx context.Context, providerID string, activeOnly bool) ([]models.AvailabilityRule, error) {
	filter := bson.M{"provider_id": providerID}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := repo.rulesColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching availability rules for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var rules []models.AvailabilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("error decoding availability rules: %w", err)
	}
	return rules, nil
}

func (repo *MongoAvailabilityRepo) ReplaceRules(ctx context.Context, providerID string, rules []models.AvailabilityRule) error {
	if _, err := repo.rulesColl.DeleteMany(ctx, bson.M{"provider_id": providerID}); err != nil {
		return fmt.Errorf("error clearing availability rules for provider %s: %w", providerID, err)
	}
	if len(rules) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(rules))
	for _, r := range rules {
		r.ProviderID = providerID
		docs = append(docs, r)
	}
	if _, err := repo.rulesColl.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error inserting availability rules for provider %s: %w", providerID, err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) GetBlackouts(ctx context.Context, providerID string) ([]models.BlackoutRange, error) {
	cursor, err := repo.blackoutColl.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("error fetching blackout ranges for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var ranges []models.BlackoutRange
	if err := cursor.All(ctx, &ranges); err != nil {
		return nil, fmt.Errorf("error decoding blackout ranges: %w", err)
	}
	return ranges, nil
}

func (repo *MongoAvailabilityRepo) ReplaceBlackouts(ctx context.Context, providerID string, ranges []models.BlackoutRange) error {
	if _, err := repo.blackoutColl.DeleteMany(ctx, bson.M{"provider_id": providerID}); err != nil {
		return fmt.Errorf("error clearing blackout ranges for provider %s: %w", providerID, err)
	}
	if len(ranges) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(ranges))
	for _, b := range ranges {
		b.ProviderID = providerID
		docs = append(docs, b)
	}
	if _, err := repo.blackoutColl.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error inserting blackout ranges for provider %s: %w", providerID, err)
	}
	return nil
}

package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrSlotTaken is returned when the commit-time conflict re-check finds an
// overlapping booking for one of the assigned providers.
var ErrSlotTaken = errors.New("slot already taken by a conflicting booking")

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	return &MongoBookingRepo{
		bookingColl: database.DB().Collection("bookings"),
	}
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking with id %s not found", bookingID)
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) GetBookedIntervals(ctx context.Context, providerID string, from, to time.Time, excludeID string) ([]models.BusyInterval, error) {
	filter := bson.M{
		"member_ids": providerID,
		"status":     bson.M{"$ne": models.BookingStatusCancelled},
		"start":      bson.M{"$lt": to},
		"end":        bson.M{"$gt": from},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	cursor, err := repo.bookingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var intervals []models.BusyInterval
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		intervals = append(intervals, booking.Interval())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return intervals, nil
}

func (repo *MongoBookingRepo) HasConflicting(ctx context.Context, providerID string, start, end time.Time) (bool, error) {
	filter := conflictFilter(providerID, start, end)
	count, err := repo.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("error counting conflicting bookings for provider %s: %w", providerID, err)
	}
	return count > 0, nil
}

func (repo *MongoBookingRepo) AddBlockedProviders(ctx context.Context, bookingID string, providerIDs []string) error {
	if len(providerIDs) == 0 {
		return nil
	}
	update := bson.M{"$addToSet": bson.M{"member_ids": bson.M{"$each": providerIDs}}}
	res, err := repo.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("error extending member list for booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", bookingID)
	}
	return nil
}

func (repo *MongoBookingRepo) Cancel(ctx context.Context, bookingID string) error {
	update := bson.M{"$set": bson.M{"status": models.BookingStatusCancelled}}
	res, err := repo.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("error cancelling booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", bookingID)
	}
	return nil
}

// conflictFilter matches every non-cancelled booking that blocks the provider
// over [start, end). Matching on member_ids (array-contains) means a team
// booking blocks each committed member, not only the primary provider.
func conflictFilter(providerID string, start, end time.Time) bson.M {
	return bson.M{
		"member_ids": providerID,
		"status":     bson.M{"$ne": models.BookingStatusCancelled},
		"start":      bson.M{"$lt": end},
		"end":        bson.M{"$gt": start},
	}
}

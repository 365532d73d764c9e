package bookingRepo

import (
	"context"
	"fmt"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateWithConflictCheck inserts the booking and, inside the same
// transaction, re-validates that none of the given providers has a
// non-cancelled booking overlapping the requested window. Availability is
// computed without locks at query time, so this commit-time re-check is the
// authoritative defence against two clients racing for the same slot.
func (repo *MongoBookingRepo) CreateWithConflictCheck(ctx context.Context, booking *models.Booking, providerIDs []string) error {
	// The conflict-checked providers are the ones the booking must block;
	// persist them on the document so conflictFilter sees them.
	if len(booking.MemberIDs) == 0 {
		booking.MemberIDs = providerIDs
	}

	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		for _, providerID := range providerIDs {
			filter := conflictFilter(providerID, booking.Start, booking.End)
			count, err := repo.bookingColl.CountDocuments(sc, filter)
			if err != nil {
				return fmt.Errorf("conflict re-check failed for provider %s: %w", providerID, err)
			}
			if count > 0 {
				return ErrSlotTaken
			}
		}
		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}

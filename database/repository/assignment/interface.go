package assignmentRepo

import (
	"context"
	"time"

	"slotwise/models"
)

// AssignmentRepository persists assignment decisions and exposes the recent
// history the resolver's scoring policies read.
type AssignmentRepository interface {
	// RecentAssignments returns all assignments for the given providers whose
	// booking starts at or after since, ordered by assigned_at ascending.
	RecentAssignments(ctx context.Context, providerIDs []string, since time.Time) ([]models.Assignment, error)
	// PersistAssignments writes one decision record per assigned member. The
	// only mutation the scheduling core performs.
	PersistAssignments(ctx context.Context, assignments []models.Assignment) error
}

package repository

import (
	"context"

	"github.com/gofrs/uuid"

	"github.com/alumlink/alumlink-api/targets/models"
)

// TargetRepository is the storage surface for the polymorphic target tables
// (galleries, blogs, posts). The engagement core only ever needs two things
// from a target: does it exist, and write its denormalized counters.
type TargetRepository interface {
	// Exists reports whether a row of the given content kind exists.
	// Unknown kinds are reported as not found, never as an error.
	Exists(ctx context.Context, kind models.Kind, id uuid.UUID) (bool, error)

	// SetCounters writes the non-nil counter fields onto the target row
	SetCounters(ctx context.Context, kind models.Kind, id uuid.UUID, patch models.CounterPatch) error
}

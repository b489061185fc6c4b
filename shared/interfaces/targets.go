package interfaces

import (
	"context"

	"github.com/gofrs/uuid"

	"github.com/alumlink/alumlink-api/targets/models"
)

// TargetChecker is the public interface for validating that a polymorphic
// target exists before attaching engagement rows to it. Services depend on
// this interface rather than on the target repositories directly, so the
// same codebase can later swap in a network adapter without touching the
// comment/like services.
type TargetChecker interface {
	Exists(ctx context.Context, kind models.Kind, id uuid.UUID) (bool, error)
}

// TargetStatsUpdater is the public interface for writing denormalized
// counters onto content rows. The counter engine is its only caller.
type TargetStatsUpdater interface {
	SetCounters(ctx context.Context, kind models.Kind, id uuid.UUID, patch models.CounterPatch) error
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/alumlink/alumlink-api/internal/database/postgres"
	"github.com/alumlink/alumlink-api/likes/models"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// postgresLikeRepository implements LikeRepository using raw SQL queries
type postgresLikeRepository struct {
	client *postgres.Client
}

// NewPostgresLikeRepository creates a new PostgreSQL repository for likes
func NewPostgresLikeRepository(client *postgres.Client) LikeRepository {
	return &postgresLikeRepository{client: client}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresLikeRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// Insert adds a like. The unique index on (owner_user_id, likeable_type,
// likeable_id) absorbs duplicate likes from concurrent toggles; a conflict
// is reported as created=false, not an error.
func (r *postgresLikeRepository) Insert(ctx context.Context, like *models.Like) (bool, error) {
	if like.CreatedDate == 0 {
		like.CreatedDate = time.Now().Unix()
	}

	query := `
		INSERT INTO likes (id, owner_user_id, likeable_type, likeable_id, created_at, created_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_user_id, likeable_type, likeable_id) DO NOTHING`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		like.ObjectId, like.OwnerUserId, string(like.LikeableType), like.LikeableId,
		time.Now(), like.CreatedDate)
	if err != nil {
		return false, fmt.Errorf("failed to insert like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete removes a user's like from a target
func (r *postgresLikeRepository) Delete(ctx context.Context, userID uuid.UUID, kind targetmodels.Kind, targetID uuid.UUID) (bool, error) {
	query := `
		DELETE FROM likes
		WHERE owner_user_id = $1 AND likeable_type = $2 AND likeable_id = $3`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, userID, string(kind), targetID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Exists reports whether the user has liked the target
func (r *postgresLikeRepository) Exists(ctx context.Context, userID uuid.UUID, kind targetmodels.Kind, targetID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM likes
			WHERE owner_user_id = $1 AND likeable_type = $2 AND likeable_id = $3
		)`

	var exists bool
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &exists, query, userID, string(kind), targetID)
	if err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}

	return exists, nil
}

// CountByTarget counts the likes on a target
func (r *postgresLikeRepository) CountByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM likes
		WHERE likeable_type = $1 AND likeable_id = $2`

	var count int64
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, string(kind), targetID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes by target: %w", err)
	}

	return count, nil
}

// FindLikedByUser returns the subset of the given targets the user has
// liked, as a set keyed by target id
func (r *postgresLikeRepository) FindLikedByUser(ctx context.Context, userID uuid.UUID, kind targetmodels.Kind, targetIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool)
	if len(targetIDs) == 0 {
		return liked, nil
	}

	query := `
		SELECT likeable_id
		FROM likes
		WHERE owner_user_id = $1 AND likeable_type = $2 AND likeable_id = ANY($3::uuid[])`

	ids := make([]string, len(targetIDs))
	for i, id := range targetIDs {
		ids[i] = id.String()
	}

	var rows []uuid.UUID
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &rows, query, userID, string(kind), pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to find likes by user: %w", err)
	}

	for _, id := range rows {
		liked[id] = true
	}

	return liked, nil
}

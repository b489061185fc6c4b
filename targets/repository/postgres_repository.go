package repository

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/alumlink/alumlink-api/internal/database/postgres"
	"github.com/alumlink/alumlink-api/targets/models"
)

// postgresTargetRepository implements TargetRepository with a kind-to-table
// dispatch. Adding a new content kind means extending the switch, not the
// schema.
type postgresTargetRepository struct {
	client *postgres.Client
}

// NewPostgresTargetRepository creates a new PostgreSQL repository for targets
func NewPostgresTargetRepository(client *postgres.Client) TargetRepository {
	return &postgresTargetRepository{client: client}
}

// tableForKind maps a content kind to its table. The switch is exhaustive
// over the content kinds; anything else is not a content table.
func tableForKind(kind models.Kind) (string, bool) {
	switch kind {
	case models.KindGallery:
		return "galleries", true
	case models.KindBlog:
		return "blogs", true
	case models.KindPost:
		return "posts", true
	default:
		return "", false
	}
}

func (r *postgresTargetRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// Exists reports whether a row of the given content kind exists
func (r *postgresTargetRepository) Exists(ctx context.Context, kind models.Kind, id uuid.UUID) (bool, error) {
	table, ok := tableForKind(kind)
	if !ok {
		// Fail closed on unknown kinds.
		return false, nil
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)

	var exists bool
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", kind, err)
	}

	return exists, nil
}

// SetCounters writes the non-nil counter fields onto the target row
func (r *postgresTargetRepository) SetCounters(ctx context.Context, kind models.Kind, id uuid.UUID, patch models.CounterPatch) error {
	table, ok := tableForKind(kind)
	if !ok {
		return fmt.Errorf("cannot update counters for kind %q: not a content kind", kind)
	}

	if patch.LikeCount == nil && patch.CommentCount == nil {
		return nil
	}

	query := fmt.Sprintf(`UPDATE %s SET updated_at = NOW()`, table)
	args := []interface{}{}
	argIndex := 1

	if patch.LikeCount != nil {
		query += fmt.Sprintf(`, like_count = $%d`, argIndex)
		args = append(args, *patch.LikeCount)
		argIndex++
	}
	if patch.CommentCount != nil {
		query += fmt.Sprintf(`, comment_count = $%d`, argIndex)
		args = append(args, *patch.CommentCount)
		argIndex++
	}

	query += fmt.Sprintf(` WHERE id = $%d`, argIndex)
	args = append(args, id)

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s counters: %w", kind, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s not found", kind)
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/alumlink/alumlink-api/internal/database/postgres"
	"github.com/alumlink/alumlink-api/replies/models"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// ErrReplyNotFound is returned when no reply row matches the given id
var ErrReplyNotFound = fmt.Errorf("reply not found")

const replyColumns = `
	id, comment_id, parent_reply_id, owner_user_id, owner_display_name,
	owner_avatar, text, depth, like_count, reply_count, status,
	created_date, last_updated`

// postgresReplyRepository implements ReplyRepository using raw SQL queries
type postgresReplyRepository struct {
	client *postgres.Client
}

// NewPostgresReplyRepository creates a new PostgreSQL repository for replies
func NewPostgresReplyRepository(client *postgres.Client) ReplyRepository {
	return &postgresReplyRepository{client: client}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresReplyRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// Create inserts a new reply
func (r *postgresReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	now := time.Now()
	nowUnix := now.Unix()
	if reply.CreatedDate == 0 {
		reply.CreatedDate = nowUnix
	}
	if reply.LastUpdated == 0 {
		reply.LastUpdated = nowUnix
	}
	if reply.Status == "" {
		reply.Status = models.StatusActive
	}

	query := `
		INSERT INTO replies (
			id, comment_id, parent_reply_id, owner_user_id, owner_display_name,
			owner_avatar, text, depth, like_count, reply_count, status,
			created_at, updated_at, created_date, last_updated
		) VALUES (
			:id, :comment_id, :parent_reply_id, :owner_user_id, :owner_display_name,
			:owner_avatar, :text, :depth, :like_count, :reply_count, :status,
			:created_at, :updated_at, :created_date, :last_updated
		)`

	insertData := struct {
		ID               uuid.UUID  `db:"id"`
		CommentID        uuid.UUID  `db:"comment_id"`
		ParentReplyID    *uuid.UUID `db:"parent_reply_id"`
		OwnerUserID      uuid.UUID  `db:"owner_user_id"`
		OwnerDisplayName string     `db:"owner_display_name"`
		OwnerAvatar      string     `db:"owner_avatar"`
		Text             string     `db:"text"`
		Depth            int        `db:"depth"`
		LikeCount        int64      `db:"like_count"`
		ReplyCount       int64      `db:"reply_count"`
		Status           string     `db:"status"`
		CreatedAt        time.Time  `db:"created_at"`
		UpdatedAt        time.Time  `db:"updated_at"`
		CreatedDate      int64      `db:"created_date"`
		LastUpdated      int64      `db:"last_updated"`
	}{
		ID:               reply.ObjectId,
		CommentID:        reply.CommentId,
		ParentReplyID:    reply.ParentReplyId,
		OwnerUserID:      reply.OwnerUserId,
		OwnerDisplayName: reply.OwnerDisplayName,
		OwnerAvatar:      reply.OwnerAvatar,
		Text:             reply.Text,
		Depth:            reply.Depth,
		LikeCount:        reply.LikeCount,
		ReplyCount:       reply.ReplyCount,
		Status:           string(reply.Status),
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedDate:      reply.CreatedDate,
		LastUpdated:      reply.LastUpdated,
	}

	_, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, insertData)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" { // foreign_key_violation
			if strings.Contains(pgErr.Detail, "owner_user_id") {
				return fmt.Errorf("user does not exist (stale token): %w", sql.ErrNoRows)
			}
			if strings.Contains(pgErr.Detail, "comment_id") {
				return fmt.Errorf("comment does not exist: %w", sql.ErrNoRows)
			}
			if strings.Contains(pgErr.Detail, "parent_reply_id") {
				return fmt.Errorf("parent reply does not exist: %w", sql.ErrNoRows)
			}
		}
		return fmt.Errorf("failed to create reply: %w", err)
	}

	return nil
}

// FindByID retrieves a reply by its ID regardless of status
func (r *postgresReplyRepository) FindByID(ctx context.Context, replyID uuid.UUID) (*models.Reply, error) {
	query := `SELECT ` + replyColumns + ` FROM replies WHERE id = $1`

	var reply models.Reply
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &reply, query, replyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrReplyNotFound
		}
		return nil, fmt.Errorf("failed to find reply by ID: %w", err)
	}

	return &reply, nil
}

// FindVisibleByComment retrieves the direct replies of a comment that still
// render in the tree, oldest first. A non-active reply stays in the set while
// its reply_count shows active descendants, so the thread beneath it remains
// reachable; the tree builder masks such rows.
func (r *postgresReplyRepository) FindVisibleByComment(ctx context.Context, commentID uuid.UUID) ([]models.Reply, error) {
	query := `
		SELECT ` + replyColumns + `
		FROM replies
		WHERE comment_id = $1 AND parent_reply_id IS NULL
		  AND (status = 'active' OR reply_count > 0)
		ORDER BY created_date ASC, id ASC`

	var replies []models.Reply
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &replies, query, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find replies by comment: %w", err)
	}

	return replies, nil
}

// FindVisibleByParent retrieves the children of a reply that still render in
// the tree, oldest first, under the same visibility rule as
// FindVisibleByComment.
func (r *postgresReplyRepository) FindVisibleByParent(ctx context.Context, parentReplyID uuid.UUID) ([]models.Reply, error) {
	query := `
		SELECT ` + replyColumns + `
		FROM replies
		WHERE parent_reply_id = $1
		  AND (status = 'active' OR reply_count > 0)
		ORDER BY created_date ASC, id ASC`

	var replies []models.Reply
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &replies, query, parentReplyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find replies by parent: %w", err)
	}

	return replies, nil
}

// CountActiveDirect counts active direct replies of a comment
func (r *postgresReplyRepository) CountActiveDirect(ctx context.Context, commentID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM replies
		WHERE comment_id = $1 AND parent_reply_id IS NULL AND status = 'active'`

	var count int64
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, commentID)
	if err != nil {
		return 0, fmt.Errorf("failed to count direct replies: %w", err)
	}

	return count, nil
}

// CountActiveNested counts active children of a reply
func (r *postgresReplyRepository) CountActiveNested(ctx context.Context, parentReplyID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM replies
		WHERE parent_reply_id = $1 AND status = 'active'`

	var count int64
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, parentReplyID)
	if err != nil {
		return 0, fmt.Errorf("failed to count nested replies: %w", err)
	}

	return count, nil
}

// CountActiveByTarget counts active replies under active comments on a target.
// Replies whose root comment is hidden or deleted do not count toward the
// target's engagement.
func (r *postgresReplyRepository) CountActiveByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM replies r
		JOIN comments c ON c.id = r.comment_id
		WHERE c.commentable_type = $1 AND c.commentable_id = $2
		  AND c.status = 'active' AND r.status = 'active'`

	var count int64
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, string(kind), targetID)
	if err != nil {
		return 0, fmt.Errorf("failed to count replies by target: %w", err)
	}

	return count, nil
}

// UpdateText replaces the text of a reply and bumps its timestamps
func (r *postgresReplyRepository) UpdateText(ctx context.Context, replyID uuid.UUID, text string) error {
	query := `
		UPDATE replies
		SET text = $2, updated_at = $3, last_updated = $4
		WHERE id = $1`

	now := time.Now()
	result, err := r.getExecutor(ctx).ExecContext(ctx, query, replyID, text, now, now.Unix())
	if err != nil {
		return fmt.Errorf("failed to update reply text: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrReplyNotFound
	}

	return nil
}

// UpdateStatus moves a reply to a new status
func (r *postgresReplyRepository) UpdateStatus(ctx context.Context, replyID uuid.UUID, status models.Status) error {
	query := `
		UPDATE replies
		SET status = $2, updated_at = $3, last_updated = $4
		WHERE id = $1`

	now := time.Now()
	result, err := r.getExecutor(ctx).ExecContext(ctx, query, replyID, string(status), now, now.Unix())
	if err != nil {
		return fmt.Errorf("failed to update reply status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrReplyNotFound
	}

	return nil
}

// SetLikeCount overwrites the denormalized like counter
func (r *postgresReplyRepository) SetLikeCount(ctx context.Context, replyID uuid.UUID, count int64) error {
	query := `UPDATE replies SET like_count = $2 WHERE id = $1`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query, replyID, count)
	if err != nil {
		return fmt.Errorf("failed to set reply like count: %w", err)
	}

	return nil
}

// SetReplyCount overwrites the denormalized nested reply counter
func (r *postgresReplyRepository) SetReplyCount(ctx context.Context, replyID uuid.UUID, count int64) error {
	query := `UPDATE replies SET reply_count = $2 WHERE id = $1`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query, replyID, count)
	if err != nil {
		return fmt.Errorf("failed to set reply nested count: %w", err)
	}

	return nil
}

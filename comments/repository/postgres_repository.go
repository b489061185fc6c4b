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

	"github.com/alumlink/alumlink-api/comments/models"
	"github.com/alumlink/alumlink-api/internal/database/postgres"
	targetmodels "github.com/alumlink/alumlink-api/targets/models"
)

// ErrCommentNotFound is returned when no comment row matches the given id
var ErrCommentNotFound = fmt.Errorf("comment not found")

// postgresCommentRepository implements CommentRepository using raw SQL queries
type postgresCommentRepository struct {
	client *postgres.Client
}

// NewPostgresCommentRepository creates a new PostgreSQL repository for comments
func NewPostgresCommentRepository(client *postgres.Client) CommentRepository {
	return &postgresCommentRepository{client: client}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresCommentRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// Create inserts a new comment
func (r *postgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	now := time.Now()
	nowUnix := now.Unix()
	if comment.CreatedDate == 0 {
		comment.CreatedDate = nowUnix
	}
	if comment.LastUpdated == 0 {
		comment.LastUpdated = nowUnix
	}
	if comment.Status == "" {
		comment.Status = models.StatusActive
	}

	query := `
		INSERT INTO comments (
			id, owner_user_id, owner_display_name, owner_avatar,
			commentable_type, commentable_id, text, like_count, reply_count,
			status, created_at, updated_at, created_date, last_updated
		) VALUES (
			:id, :owner_user_id, :owner_display_name, :owner_avatar,
			:commentable_type, :commentable_id, :text, :like_count, :reply_count,
			:status, :created_at, :updated_at, :created_date, :last_updated
		)`

	insertData := struct {
		ID               uuid.UUID `db:"id"`
		OwnerUserID      uuid.UUID `db:"owner_user_id"`
		OwnerDisplayName string    `db:"owner_display_name"`
		OwnerAvatar      string    `db:"owner_avatar"`
		CommentableType  string    `db:"commentable_type"`
		CommentableID    uuid.UUID `db:"commentable_id"`
		Text             string    `db:"text"`
		LikeCount        int64     `db:"like_count"`
		ReplyCount       int64     `db:"reply_count"`
		Status           string    `db:"status"`
		CreatedAt        time.Time `db:"created_at"`
		UpdatedAt        time.Time `db:"updated_at"`
		CreatedDate      int64     `db:"created_date"`
		LastUpdated      int64     `db:"last_updated"`
	}{
		ID:               comment.ObjectId,
		OwnerUserID:      comment.OwnerUserId,
		OwnerDisplayName: comment.OwnerDisplayName,
		OwnerAvatar:      comment.OwnerAvatar,
		CommentableType:  string(comment.CommentableType),
		CommentableID:    comment.CommentableId,
		Text:             comment.Text,
		LikeCount:        comment.LikeCount,
		ReplyCount:       comment.ReplyCount,
		Status:           string(comment.Status),
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedDate:      comment.CreatedDate,
		LastUpdated:      comment.LastUpdated,
	}

	_, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, insertData)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" { // foreign_key_violation
			if strings.Contains(pgErr.Detail, "owner_user_id") {
				return fmt.Errorf("user does not exist (stale token): %w", sql.ErrNoRows)
			}
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// FindByID retrieves a comment by its ID regardless of status
func (r *postgresCommentRepository) FindByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	query := `
		SELECT
			id, owner_user_id, owner_display_name, owner_avatar,
			commentable_type, commentable_id, text, like_count, reply_count,
			status, created_date, last_updated
		FROM comments
		WHERE id = $1`

	var comment models.Comment
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &comment, query, commentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment by ID: %w", err)
	}

	return &comment, nil
}

// FindActiveByTarget retrieves a page of active comments on a target
func (r *postgresCommentRepository) FindActiveByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID, sort models.SortOrder, limit, offset int) ([]models.Comment, error) {
	direction := "DESC"
	if sort == models.SortOldest {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT
			id, owner_user_id, owner_display_name, owner_avatar,
			commentable_type, commentable_id, text, like_count, reply_count,
			status, created_date, last_updated
		FROM comments
		WHERE commentable_type = $1 AND commentable_id = $2 AND status = 'active'
		ORDER BY created_date %s, id %s
		LIMIT $3 OFFSET $4`, direction, direction)

	var comments []models.Comment
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &comments, query, string(kind), targetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments by target: %w", err)
	}

	return comments, nil
}

// CountActiveByTarget counts active comments on a target
func (r *postgresCommentRepository) CountActiveByTarget(ctx context.Context, kind targetmodels.Kind, targetID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM comments
		WHERE commentable_type = $1 AND commentable_id = $2 AND status = 'active'`

	var count int64
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, string(kind), targetID)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments by target: %w", err)
	}

	return count, nil
}

// UpdateText replaces the text of a comment and bumps its timestamps
func (r *postgresCommentRepository) UpdateText(ctx context.Context, commentID uuid.UUID, text string) error {
	query := `
		UPDATE comments
		SET text = $2, updated_at = $3, last_updated = $4
		WHERE id = $1`

	now := time.Now()
	result, err := r.getExecutor(ctx).ExecContext(ctx, query, commentID, text, now, now.Unix())
	if err != nil {
		return fmt.Errorf("failed to update comment text: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// UpdateStatus moves a comment to a new status
func (r *postgresCommentRepository) UpdateStatus(ctx context.Context, commentID uuid.UUID, status models.Status) error {
	query := `
		UPDATE comments
		SET status = $2, updated_at = $3, last_updated = $4
		WHERE id = $1`

	now := time.Now()
	result, err := r.getExecutor(ctx).ExecContext(ctx, query, commentID, string(status), now, now.Unix())
	if err != nil {
		return fmt.Errorf("failed to update comment status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// SetLikeCount overwrites the denormalized like counter
func (r *postgresCommentRepository) SetLikeCount(ctx context.Context, commentID uuid.UUID, count int64) error {
	query := `UPDATE comments SET like_count = $2 WHERE id = $1`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query, commentID, count)
	if err != nil {
		return fmt.Errorf("failed to set comment like count: %w", err)
	}

	return nil
}

// SetReplyCount overwrites the denormalized reply counter
func (r *postgresCommentRepository) SetReplyCount(ctx context.Context, commentID uuid.UUID, count int64) error {
	query := `UPDATE comments SET reply_count = $2 WHERE id = $1`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query, commentID, count)
	if err != nil {
		return fmt.Errorf("failed to set comment reply count: %w", err)
	}

	return nil
}

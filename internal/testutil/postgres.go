// Package testutil provides helpers for repository integration tests. Tests
// that need a real database read POSTGRES_TEST_DSN and skip when it is not
// set, so the unit suite stays runnable without infrastructure.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const engagementSchema = `
	CREATE TABLE IF NOT EXISTS galleries (
		id UUID PRIMARY KEY,
		owner_user_id UUID NOT NULL,
		title VARCHAR(255) NOT NULL,
		like_count BIGINT NOT NULL DEFAULT 0,
		comment_count BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS blogs (
		id UUID PRIMARY KEY,
		owner_user_id UUID NOT NULL,
		title VARCHAR(255) NOT NULL,
		like_count BIGINT NOT NULL DEFAULT 0,
		comment_count BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS posts (
		id UUID PRIMARY KEY,
		owner_user_id UUID NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		like_count BIGINT NOT NULL DEFAULT 0,
		comment_count BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS comments (
		id UUID PRIMARY KEY,
		owner_user_id UUID NOT NULL,
		owner_display_name VARCHAR(255) NOT NULL DEFAULT '',
		owner_avatar VARCHAR(512) NOT NULL DEFAULT '',
		commentable_type VARCHAR(32) NOT NULL,
		commentable_id UUID NOT NULL,
		text TEXT NOT NULL,
		like_count BIGINT NOT NULL DEFAULT 0,
		reply_count BIGINT NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_date BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
		last_updated BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
	);
	CREATE INDEX IF NOT EXISTS idx_comments_target
		ON comments(commentable_type, commentable_id, status, created_date);

	CREATE TABLE IF NOT EXISTS replies (
		id UUID PRIMARY KEY,
		comment_id UUID NOT NULL REFERENCES comments(id) ON DELETE CASCADE,
		parent_reply_id UUID REFERENCES replies(id) ON DELETE CASCADE,
		owner_user_id UUID NOT NULL,
		owner_display_name VARCHAR(255) NOT NULL DEFAULT '',
		owner_avatar VARCHAR(512) NOT NULL DEFAULT '',
		text TEXT NOT NULL,
		depth INT NOT NULL DEFAULT 0,
		like_count BIGINT NOT NULL DEFAULT 0,
		reply_count BIGINT NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_date BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
		last_updated BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
	);
	CREATE INDEX IF NOT EXISTS idx_replies_comment
		ON replies(comment_id, status, created_date) WHERE parent_reply_id IS NULL;
	CREATE INDEX IF NOT EXISTS idx_replies_parent
		ON replies(parent_reply_id, status, created_date) WHERE parent_reply_id IS NOT NULL;

	CREATE TABLE IF NOT EXISTS likes (
		id UUID PRIMARY KEY,
		owner_user_id UUID NOT NULL,
		likeable_type VARCHAR(32) NOT NULL,
		likeable_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_date BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_unique
		ON likes(owner_user_id, likeable_type, likeable_id);
	CREATE INDEX IF NOT EXISTS idx_likes_target ON likes(likeable_type, likeable_id);
`

// RequireTestDB opens the database named by POSTGRES_TEST_DSN and applies
// the engagement schema. The test is skipped when the variable is unset.
func RequireTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set, skipping integration test")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.ExecContext(context.Background(), engagementSchema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return db
}

// TruncateAll clears every engagement table between tests
func TruncateAll(t *testing.T, db *sqlx.DB) {
	t.Helper()

	for _, table := range []string{"likes", "replies", "comments", "posts", "blogs", "galleries"} {
		if _, err := db.ExecContext(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

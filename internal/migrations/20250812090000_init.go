package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upInit, downInit)
}

func upInit(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE posts (
		id VARCHAR(64) PRIMARY KEY,
		author_id VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		visibility VARCHAR(16) NOT NULL DEFAULT 'public',
		hashtags TEXT[] NOT NULL DEFAULT '{}',
		expires_at TIMESTAMPTZ
	);
	CREATE INDEX idx_posts_author ON posts (author_id);
	CREATE INDEX idx_posts_created_at ON posts (created_at DESC);
	CREATE INDEX idx_posts_hashtags ON posts USING GIN (hashtags);

	CREATE TABLE follows (
		follower_id VARCHAR(64) NOT NULL,
		followee_id VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (follower_id, followee_id)
	);
	CREATE INDEX idx_follows_followee ON follows (followee_id);

	CREATE TABLE close_friends (
		owner_id VARCHAR(64) NOT NULL,
		member_id VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (owner_id, member_id)
	);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downInit(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE close_friends;
	DROP TABLE follows;
	DROP TABLE posts;
	`)
	if err != nil {
		return err
	}
	return nil
}

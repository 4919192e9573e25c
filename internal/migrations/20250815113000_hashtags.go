package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upHashtags, downHashtags)
}

func upHashtags(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE hashtags (
		tag VARCHAR(128) PRIMARY KEY,
		count BIGINT NOT NULL DEFAULT 0,
		last_used TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX idx_hashtags_last_used ON hashtags (last_used DESC);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downHashtags(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE hashtags;
	`)
	if err != nil {
		return err
	}
	return nil
}

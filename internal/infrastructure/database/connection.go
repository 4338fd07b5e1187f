package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/eslsoft/chindospeak/internal/infrastructure/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE COLLATE NOCASE,
	color      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS flashcards (
	id                    TEXT PRIMARY KEY,
	word                  TEXT NOT NULL,
	translation           TEXT NOT NULL,
	pronunciation         TEXT NOT NULL DEFAULT '',
	category_id           TEXT NOT NULL DEFAULT '' REFERENCES categories(id) ON DELETE SET DEFAULT,
	reading_level         INTEGER NOT NULL DEFAULT 0,
	reading_next_review   TEXT NOT NULL,
	listening_level       INTEGER NOT NULL DEFAULT 0,
	listening_next_review TEXT NOT NULL,
	speaking_level        INTEGER NOT NULL DEFAULT 0,
	speaking_next_review  TEXT NOT NULL,
	created_at            TIMESTAMP NOT NULL,
	updated_at            TIMESTAMP NOT NULL,
	UNIQUE (word, translation)
);

CREATE INDEX IF NOT EXISTS idx_flashcards_reading_due   ON flashcards (reading_next_review);
CREATE INDEX IF NOT EXISTS idx_flashcards_listening_due ON flashcards (listening_next_review);
CREATE INDEX IF NOT EXISTS idx_flashcards_speaking_due  ON flashcards (speaking_next_review);

CREATE TABLE IF NOT EXISTS review_log (
	id          TEXT PRIMARY KEY,
	card_id     TEXT NOT NULL,
	skill       TEXT NOT NULL,
	correct     BOOLEAN NOT NULL,
	reviewed_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_review_log_reviewed_at ON review_log (reviewed_at);
`

// NewConnection opens the sqlite database and applies the schema
func NewConnection(cfg *config.Config) (*sqlx.DB, func(), error) {
	db, err := sqlx.Connect("sqlite3", cfg.Database.Path+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite serializes writers anyway; a single connection avoids
	// SQLITE_BUSY under concurrent use.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return db, func() { db.Close() }, nil
}

// Migrate creates the tables if they do not exist yet
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

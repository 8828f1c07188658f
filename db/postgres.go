package db

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func Connect() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		fmt.Println("DATABASE_URL environment variable is not set")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}

// Migrate creates the chatbot tables and indexes if they do not exist yet.
func Migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS feedback (
			id SERIAL PRIMARY KEY,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			rating INTEGER NOT NULL CHECK (rating IN (0, 1)),
			session_id TEXT,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
			metadata TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS chat_sessions (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id SERIAL PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES chat_sessions(id) ON DELETE CASCADE,
			role TEXT NOT NULL CHECK (role IN ('user', 'assistant')),
			content TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
			rl_used INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_timestamp ON feedback(timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_rating ON feedback(rating)`,
		`CREATE INDEX IF NOT EXISTS idx_session_updated ON chat_sessions(updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session ON chat_messages(session_id, timestamp)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}

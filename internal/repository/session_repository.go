package repository

import (
	"database/sql"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/internal/model"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession inserts a session if the id is not taken yet. The conflict
// guard makes creation exactly-once when two requests race on the same id.
func (r *SessionRepository) CreateSession(id, title string) (bool, error) {
	if runes := []rune(title); len(runes) > model.MaxTitleLength {
		title = string(runes[:model.MaxTitleLength])
	}

	var insertedID string
	err := r.db.QueryRow(`
		INSERT INTO chat_sessions(id, title)
		VALUES($1, $2)
		ON CONFLICT (id) DO NOTHING
		RETURNING id
	`, id, title).Scan(&insertedID)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *SessionRepository) GetSession(id string) (*model.ChatSession, error) {
	var s model.ChatSession
	err := r.db.QueryRow(`
		SELECT id, title, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Title, &s.CreatedAt, &s.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *SessionRepository) GetAllSessions() ([]model.ChatSession, error) {
	rows, err := r.db.Query(`
		SELECT id, title, created_at, updated_at
		FROM chat_sessions
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.ChatSession
	for rows.Next() {
		var s model.ChatSession
		err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *SessionRepository) DeleteSession(id string) error {
	// chat_messages rows go with the session via ON DELETE CASCADE.
	_, err := r.db.Exec(`DELETE FROM chat_sessions WHERE id = $1`, id)
	return err
}

// SaveMessage appends a message and bumps the session's updated_at in the
// same transaction, so the activity timestamp never drifts from the log.
func (r *SessionRepository) SaveMessage(sessionID, role, content string, rlUsed bool) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rlFlag := 0
	if rlUsed {
		rlFlag = 1
	}

	var messageID int64
	err = tx.QueryRow(`
		INSERT INTO chat_messages(session_id, role, content, rl_used)
		VALUES($1, $2, $3, $4)
		RETURNING id
	`, sessionID, role, content, rlFlag).Scan(&messageID)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(`
		UPDATE chat_sessions SET updated_at = now() WHERE id = $1
	`, sessionID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return messageID, nil
}

func (r *SessionRepository) GetSessionMessages(sessionID string) ([]model.ChatMessage, error) {
	rows, err := r.db.Query(`
		SELECT id, session_id, role, content, timestamp, rl_used
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY timestamp ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		var rlFlag int
		err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Timestamp, &rlFlag)
		if err != nil {
			return nil, err
		}
		m.RLUsed = rlFlag != 0
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *SessionRepository) Ping() error {
	return r.db.Ping()
}

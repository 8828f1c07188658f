package repository

import (
	"database/sql"
	"fmt"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/internal/model"
)

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) SaveFeedback(f *model.Feedback) error {
	sessionID := sql.NullString{String: f.SessionID, Valid: f.SessionID != ""}
	metadata := sql.NullString{String: f.Metadata, Valid: f.Metadata != ""}

	return r.db.QueryRow(`
		INSERT INTO feedback(question, answer, rating, session_id, metadata)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id
	`, f.Question, f.Answer, f.Rating, sessionID, metadata).Scan(&f.ID)
}

func (r *FeedbackRepository) GetAllFeedback(limit int) ([]model.Feedback, error) {
	query := `
		SELECT id, question, answer, rating, session_id, timestamp, metadata
		FROM feedback
		ORDER BY timestamp DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Feedback
	for rows.Next() {
		var f model.Feedback
		var sessionID, metadata sql.NullString
		err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Rating, &sessionID, &f.Timestamp, &metadata)
		if err != nil {
			return nil, err
		}
		f.SessionID = sessionID.String
		f.Metadata = metadata.String
		records = append(records, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetTrainingData returns feedback as "Q: ...\nA: ..." texts with 0/1 labels,
// oldest first, for offline training export.
func (r *FeedbackRepository) GetTrainingData() ([]string, []int, error) {
	rows, err := r.db.Query(`
		SELECT question, answer, rating
		FROM feedback
		ORDER BY timestamp ASC
	`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var texts []string
	var labels []int
	for rows.Next() {
		var question, answer string
		var rating int
		if err := rows.Scan(&question, &answer, &rating); err != nil {
			return nil, nil, err
		}
		texts = append(texts, fmt.Sprintf("Q: %s\nA: %s", question, answer))
		labels = append(labels, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return texts, labels, nil
}

func (r *FeedbackRepository) GetStats() (*model.FeedbackStats, error) {
	var stats model.FeedbackStats

	err := r.db.QueryRow(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE rating = 1),
			COUNT(*) FILTER (WHERE rating = 0),
			COUNT(*) FILTER (WHERE timestamp >= now() - interval '1 day')
		FROM feedback
	`).Scan(&stats.Total, &stats.PositiveCount, &stats.NegativeCount, &stats.Recent24h)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

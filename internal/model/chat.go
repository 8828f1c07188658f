package model

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MaxTitleLength is enforced both at generation time and on insert.
const MaxTitleLength = 50

type ChatSession struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ChatMessage struct {
	ID        int64
	SessionID string
	Role      string
	Content   string
	Timestamp time.Time
	RLUsed    bool
}

type Feedback struct {
	ID        int64
	Question  string
	Answer    string
	Rating    int
	SessionID string
	Timestamp time.Time
	Metadata  string
}

type FeedbackStats struct {
	Total         int
	PositiveCount int
	NegativeCount int
	Recent24h     int
}

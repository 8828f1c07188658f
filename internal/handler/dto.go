package handler

type AskRequest struct {
	Question  string `json:"question"`
	History   string `json:"history"`
	SessionID string `json:"session_id"`
}

type AskResponse struct {
	Answer            string           `json:"answer"`
	SummarizedHistory string           `json:"summarized_history"`
	RLUsed            bool             `json:"rl_used"`
	StockSymbols      []string         `json:"stock_symbols"`
	Session           *SessionResponse `json:"session,omitempty"`
}

type SessionResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

type MessageResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	RLUsed    bool   `json:"rlUsed"`
}

type SessionDetailResponse struct {
	Session  SessionResponse   `json:"session"`
	Messages []MessageResponse `json:"messages"`
}

// Rating is deliberately untyped: clients send 0/1 as a number, a numeric
// string, or a boolean, and all three are accepted.
type FeedbackRequest struct {
	Question  string      `json:"question"`
	Answer    string      `json:"answer"`
	Rating    interface{} `json:"rating"`
	SessionID string      `json:"session_id"`
	Metadata  string      `json:"metadata"`
}

type FeedbackResponse struct {
	Status     string `json:"status"`
	FeedbackID int64  `json:"feedback_id"`
	Message    string `json:"message"`
}

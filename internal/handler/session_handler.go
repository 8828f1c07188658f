package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/internal/model"
)

type SessionStore interface {
	GetAllSessions() ([]model.ChatSession, error)
	GetSession(id string) (*model.ChatSession, error)
	GetSessionMessages(sessionID string) ([]model.ChatMessage, error)
	DeleteSession(id string) error
	Ping() error
}

type SessionHandler struct {
	repository SessionStore
}

func NewSessionHandler(repository SessionStore) *SessionHandler {
	return &SessionHandler{repository: repository}
}

func (h *SessionHandler) GetSessions(c *gin.Context) {
	sessions, err := h.repository.GetAllSessions()
	if err != nil {
		slog.Error("error fetching sessions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := SessionListResponse{Sessions: []SessionResponse{}}
	for _, s := range sessions {
		res.Sessions = append(res.Sessions, sessionResponse(&s))
	}

	c.JSON(http.StatusOK, res)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")

	session, err := h.repository.GetSession(id)
	if err != nil {
		slog.Error("error fetching session", "session_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	messages, err := h.repository.GetSessionMessages(id)
	if err != nil {
		slog.Error("error fetching session messages", "session_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := SessionDetailResponse{
		Session:  sessionResponse(session),
		Messages: []MessageResponse{},
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, MessageResponse{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp.Format(time.RFC3339),
			RLUsed:    m.RLUsed,
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")

	if err := h.repository.DeleteSession(id); err != nil {
		slog.Error("error deleting session", "session_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}

	slog.Info("session deleted", "session_id", id)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Session deleted",
	})
}

func (h *SessionHandler) GetHealth(c *gin.Context) {
	if err := h.repository.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":             "unhealthy",
			"database_connected": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             "healthy",
		"database_connected": true,
	})
}

func sessionResponse(s *model.ChatSession) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/internal/model"
)

type fakeStore struct {
	sessions []model.ChatSession
	session  *model.ChatSession
	messages []model.ChatMessage
	deleted  []string
	err      error
	pingErr  error
}

func (f *fakeStore) GetAllSessions() ([]model.ChatSession, error) {
	return f.sessions, f.err
}

func (f *fakeStore) GetSession(id string) (*model.ChatSession, error) {
	return f.session, f.err
}

func (f *fakeStore) GetSessionMessages(sessionID string) ([]model.ChatMessage, error) {
	return f.messages, f.err
}

func (f *fakeStore) DeleteSession(id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) Ping() error {
	return f.pingErr
}

func newSessionRouter(store SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSessionHandler(store)
	r.GET("/sessions", h.GetSessions)
	r.GET("/sessions/:id", h.GetSession)
	r.DELETE("/sessions/:id", h.DeleteSession)
	r.GET("/health", h.GetHealth)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetSessions_ReturnsSessions(t *testing.T) {
	store := &fakeStore{sessions: []model.ChatSession{
		{ID: "s2", Title: "Bonds", UpdatedAt: time.Now()},
		{ID: "s1", Title: "Stocks", UpdatedAt: time.Now().Add(-time.Hour)},
	}}
	r := newSessionRouter(store)

	w := get(r, "/sessions")

	assert.Equal(t, http.StatusOK, w.Code)

	var res SessionListResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res.Sessions))
	assert.Equal(t, "s2", res.Sessions[0].ID)
	assert.Equal(t, "Bonds", res.Sessions[0].Title)
}

func TestGetSessions_Empty(t *testing.T) {
	store := &fakeStore{}
	r := newSessionRouter(store)

	w := get(r, "/sessions")

	assert.Equal(t, http.StatusOK, w.Code)
	// An empty list, not null.
	assert.Equal(t, true, strings.Contains(w.Body.String(), `"sessions":[]`))
}

func TestGetSessions_DBError(t *testing.T) {
	store := &fakeStore{err: errors.New("DB down")}
	r := newSessionRouter(store)

	w := get(r, "/sessions")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetSession_ReturnsMessages(t *testing.T) {
	store := &fakeStore{
		session: &model.ChatSession{ID: "s1", Title: "Stocks"},
		messages: []model.ChatMessage{
			{Role: model.RoleUser, Content: "What is AAPL at?"},
			{Role: model.RoleAssistant, Content: "AAPL is at $230."},
		},
	}
	r := newSessionRouter(store)

	w := get(r, "/sessions/s1")

	assert.Equal(t, http.StatusOK, w.Code)

	var res SessionDetailResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "s1", res.Session.ID)
	assert.Equal(t, 2, len(res.Messages))
	assert.Equal(t, "user", res.Messages[0].Role)
	assert.Equal(t, "assistant", res.Messages[1].Role)
	assert.Equal(t, "AAPL is at $230.", res.Messages[1].Content)

	// The per-message flag is camel-cased on the wire, unlike /ask's rl_used.
	assert.Equal(t, true, strings.Contains(w.Body.String(), `"rlUsed"`))
	assert.Equal(t, false, strings.Contains(w.Body.String(), `"rl_used"`))
}

func TestGetSession_NotFound(t *testing.T) {
	store := &fakeStore{}
	r := newSessionRouter(store)

	w := get(r, "/sessions/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), "Session not found"))
}

func TestDeleteSession_Success(t *testing.T) {
	store := &fakeStore{}
	r := newSessionRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/sessions/s1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"s1"}, store.deleted)
	assert.Equal(t, true, strings.Contains(w.Body.String(), "Session deleted"))
}

func TestDeleteSession_DBError(t *testing.T) {
	store := &fakeStore{err: errors.New("DB down")}
	r := newSessionRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/sessions/s1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), "Failed to delete session"))
}

func TestGetHealth_Healthy(t *testing.T) {
	store := &fakeStore{}
	r := newSessionRouter(store)

	w := get(r, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), `"status":"healthy"`))
	assert.Equal(t, true, strings.Contains(w.Body.String(), `"database_connected":true`))
}

func TestGetHealth_Unhealthy(t *testing.T) {
	store := &fakeStore{pingErr: errors.New("DB down")}
	r := newSessionRouter(store)

	w := get(r, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), `"status":"unhealthy"`))
}

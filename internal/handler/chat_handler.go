package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/chat"
)

type ChatService interface {
	Ask(req chat.AskRequest) (*chat.AskResult, error)
}

type ChatHandler struct {
	service ChatService
}

func NewChatHandler(service ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid ask request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question is required"})
		return
	}

	if req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question is required"})
		return
	}

	result, err := h.service.Ask(chat.AskRequest{
		Question:  req.Question,
		History:   req.History,
		SessionID: req.SessionID,
	})
	if err != nil {
		if errors.Is(err, chat.ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Question cannot be empty"})
			return
		}

		slog.Error("error answering question", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error: " + err.Error()})
		return
	}

	res := AskResponse{
		Answer:            result.Answer,
		SummarizedHistory: result.SummarizedHistory,
		RLUsed:            result.RLUsed,
		StockSymbols:      result.StockSymbols,
	}
	if result.Session != nil {
		res.Session = &SessionResponse{
			ID:        result.Session.ID,
			Title:     result.Session.Title,
			CreatedAt: result.Session.CreatedAt.Format(time.RFC3339),
			UpdatedAt: result.Session.UpdatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, res)
}

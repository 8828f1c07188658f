package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/internal/model"
)

type FeedbackStore interface {
	SaveFeedback(f *model.Feedback) error
}

type FeedbackHandler struct {
	repository FeedbackStore
}

func NewFeedbackHandler(repository FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{repository: repository}
}

func (h *FeedbackHandler) SaveFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid feedback request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "question, answer, and rating are required"})
		return
	}

	if req.Question == "" || req.Answer == "" || req.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question, answer, and rating are required"})
		return
	}

	rating, ok := coerceRating(req.Rating)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be 0 (negative) or 1 (positive)"})
		return
	}

	feedback := &model.Feedback{
		Question:  req.Question,
		Answer:    req.Answer,
		Rating:    rating,
		SessionID: req.SessionID,
		Metadata:  req.Metadata,
	}
	if err := h.repository.SaveFeedback(feedback); err != nil {
		slog.Error("error saving feedback", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
		return
	}

	slog.Info("feedback saved", "feedback_id", feedback.ID, "rating", rating)
	c.JSON(http.StatusOK, FeedbackResponse{
		Status:     "success",
		FeedbackID: feedback.ID,
		Message:    "Feedback saved successfully",
	})
}

// coerceRating accepts the rating as a JSON number, a numeric string, or a
// boolean. Anything outside {0, 1} after coercion is rejected.
func coerceRating(v interface{}) (int, bool) {
	var rating int

	switch value := v.(type) {
	case float64:
		rating = int(value)
	case string:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		rating = parsed
	case bool:
		if value {
			rating = 1
		}
	default:
		return 0, false
	}

	if rating != 0 && rating != 1 {
		return 0, false
	}
	return rating, true
}

package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/db"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/internal/repository"
)

// trainingRecord is one JSONL line of the export: the question/answer pair
// as a single text with its 0/1 rating label.
type trainingRecord struct {
	Text  string `json:"text"`
	Label int    `json:"label"`
}

type feedbackRecord struct {
	ID        int64  `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Rating    int    `json:"rating"`
	SessionID string `json:"session_id,omitempty"`
	Timestamp string `json:"timestamp"`
	Metadata  string `json:"metadata,omitempty"`
}

func main() {
	godotenv.Load()

	// Data goes to stdout, so logs go to stderr.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	feedbackRepo := repository.NewFeedbackRepository(db.DB)

	stats, err := feedbackRepo.GetStats()
	if err != nil {
		log.Fatalf("error fetching feedback stats: %v", err)
	}

	slog.Info("feedback stats",
		"total", stats.Total,
		"positive", stats.PositiveCount,
		"negative", stats.NegativeCount,
		"last_24h", stats.Recent24h,
	)

	if os.Getenv("EXPORT_FULL") == "true" {
		exportFullRecords(feedbackRepo)
		return
	}

	texts, labels, err := feedbackRepo.GetTrainingData()
	if err != nil {
		log.Fatalf("error fetching training data: %v", err)
	}

	if len(texts) == 0 {
		slog.Info("no feedback to export, exiting")
		return
	}

	encoder := json.NewEncoder(os.Stdout)
	for i, text := range texts {
		record := trainingRecord{Text: text, Label: labels[i]}
		if err := encoder.Encode(record); err != nil {
			log.Fatalf("error writing training record: %v", err)
		}
	}

	slog.Info("training data exported", "records", len(texts))
}

// exportFullRecords dumps every stored feedback row instead of the
// training-pair view. EXPORT_LIMIT caps the output when set.
func exportFullRecords(feedbackRepo *repository.FeedbackRepository) {
	limit := 0
	if v := os.Getenv("EXPORT_LIMIT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			log.Fatalf("invalid EXPORT_LIMIT: %q", v)
		}
		limit = parsed
	}

	records, err := feedbackRepo.GetAllFeedback(limit)
	if err != nil {
		log.Fatalf("error fetching feedback records: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	for _, record := range records {
		out := feedbackRecord{
			ID:        record.ID,
			Question:  record.Question,
			Answer:    record.Answer,
			Rating:    record.Rating,
			SessionID: record.SessionID,
			Timestamp: record.Timestamp.Format(time.RFC3339),
			Metadata:  record.Metadata,
		}
		if err := encoder.Encode(out); err != nil {
			log.Fatalf("error writing feedback record: %v", err)
		}
	}

	slog.Info("feedback records exported", "records", len(records))
}

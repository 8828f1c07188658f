package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/db"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/internal/handler"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/internal/repository"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/chat"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/llm"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/prompt"
	"github.com/Aniruddha-Ponnuri/Multi-ChatBot/pkg/stocks"
)

const snapshotCacheTTL = 5 * time.Minute

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}

	client, err := llm.NewClientFromEnv()
	if err != nil {
		log.Fatalf("error creating LLM client: %v", err)
	}
	slog.Info("LLM client ready", "model", client.ModelName())

	prompts := prompt.Default()

	var cache stocks.Cache
	if os.Getenv("REDIS_URL") != "" {
		if err := db.ConnectRedis(); err != nil {
			slog.Warn("redis unavailable, stock snapshots will not be cached", "error", err)
		} else {
			defer db.CloseRedis()
			cache = db.NewSnapshotCache(snapshotCacheTTL)
		}
	}

	var fetcher stocks.QuoteFetcher
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		fetcher = stocks.NewFinnHubClient(key)
	} else if key := os.Getenv("ALPHA_VANTAGE_API_KEY"); key != "" {
		fetcher = stocks.NewAlphaVantageClient(key)
	}

	var stockBuilder chat.StockContextBuilder
	if fetcher != nil {
		slog.Info("stock data enabled", "provider", fetcher.Name())
		stockBuilder = stocks.NewService(fetcher, stocks.NewYahooHistoryClient(), cache)
	} else {
		slog.Warn("no stock API key configured, stock context disabled")
	}

	sessionRepo := repository.NewSessionRepository(db.DB)
	feedbackRepo := repository.NewFeedbackRepository(db.DB)

	orchestrator := chat.NewOrchestrator(client, prompts, stockBuilder, sessionRepo, chat.Config{
		KnowledgeBase: loadKnowledgeBase(client, prompts),
	})

	chatHandler := handler.NewChatHandler(orchestrator)
	feedbackHandler := handler.NewFeedbackHandler(feedbackRepo)
	sessionHandler := handler.NewSessionHandler(sessionRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/ask", chatHandler.Ask)
	r.POST("/feedback", feedbackHandler.SaveFeedback)
	r.GET("/sessions", sessionHandler.GetSessions)
	r.GET("/sessions/:id", sessionHandler.GetSession)
	r.DELETE("/sessions/:id", sessionHandler.DeleteSession)
	r.GET("/health", sessionHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// loadKnowledgeBase reads the optional knowledge base file and, when
// requested, reformats it as HTML through the model. The result is baked
// into every prompt for the life of the process.
func loadKnowledgeBase(client llm.Client, prompts *prompt.Store) string {
	path := os.Getenv("KNOWLEDGE_BASE_FILE")
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("could not read knowledge base file", "path", path, "error", err)
		return ""
	}

	knowledgeBase := string(data)
	if os.Getenv("PARSE_KNOWLEDGE_BASE") != "true" {
		return knowledgeBase
	}

	parser := chat.NewOrchestrator(client, prompts, nil, nil, chat.Config{})
	parsed, err := parser.ParseContent(knowledgeBase, "Keep every fact, keep the structure flat, and do not add commentary.")
	if err != nil {
		slog.Warn("could not parse knowledge base, using raw content", "error", err)
		return knowledgeBase
	}

	slog.Info("knowledge base parsed", "path", path, "chars", len(parsed))
	return parsed
}

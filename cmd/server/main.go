package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akinmix/sibelgpt-backend/internal/config"
	"github.com/akinmix/sibelgpt-backend/internal/handler"
	"github.com/akinmix/sibelgpt-backend/internal/repository"
	"github.com/akinmix/sibelgpt-backend/internal/service"
	"github.com/akinmix/sibelgpt-backend/pkg/log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Init(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()
	log.Infof("SibelGPT backend %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize the listings store
	repo, err := repository.NewListingRepository(
		cfg.Store.DSN,
		cfg.Store.MaxConnections,
		cfg.Store.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to listings store: %v", err)
	}
	defer repo.Close()
	log.Info("Connected to listings store")

	// Initialize clients and services
	openaiClient := service.NewOpenAIClient(&cfg.OpenAI)
	log.Infow("OpenAI client initialized",
		"api_base", cfg.OpenAI.APIBase,
		"chat_model", cfg.OpenAI.ChatModel,
		"light_chat_model", cfg.OpenAI.LightChatModel,
		"embedding_model", cfg.OpenAI.EmbeddingModel,
	)

	embedder := service.NewEmbedder(openaiClient, cfg.Timeouts.Embedding)
	retriever, err := service.NewRetriever(embedder, repo, cfg.Search, cfg.Timeouts.Store)
	if err != nil {
		log.Fatalf("Failed to initialize retriever: %v", err)
	}
	topics := service.NewTopicClassifier(openaiClient, cfg.OpenAI.LightChatModel, cfg.Timeouts.Classifier)
	intent := service.NewIntentClassifier(openaiClient, cfg.OpenAI.LightChatModel, cfg.Timeouts.Classifier)
	orchestrator := service.NewOrchestrator(
		topics, intent, retriever, openaiClient,
		cfg.OpenAI.ChatModel, cfg.OpenAI.LightChatModel,
		cfg.Timeouts.Chat,
	)

	var webSearcher *service.WebSearcher
	if cfg.Google.APIKey != "" && cfg.Google.CSEID != "" {
		webSearcher = service.NewWebSearcher(openaiClient, cfg.Google, cfg.OpenAI.ChatModel, cfg.Timeouts.WebSearch, cfg.Timeouts.Chat)
	} else {
		log.Warnf("GOOGLE_API_KEY / GOOGLE_CSE_ID not set, /web-search will answer 503")
	}

	log.Info("Services initialized")

	// Initialize handlers
	chatHandler := handler.NewChatHandler(orchestrator, webSearcher)
	pdfHandler := handler.NewPDFHandler(repo)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "sibelgpt-backend",
			"version": Version,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	router.POST("/chat", chatHandler.Chat)
	router.POST("/web-search", chatHandler.WebSearch)
	router.GET("/generate-property-pdf/:id", pdfHandler.Generate)

	// Start server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}

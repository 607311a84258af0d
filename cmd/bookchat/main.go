package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/voicebook/server/adapters/denoise"
	"github.com/voicebook/server/adapters/ffmpeg"
	"github.com/voicebook/server/adapters/llm"
	"github.com/voicebook/server/adapters/pdf"
	"github.com/voicebook/server/adapters/store"
	"github.com/voicebook/server/adapters/tts"
	"github.com/voicebook/server/internal/api"
	"github.com/voicebook/server/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file loaded", zap.Error(err))
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	assets, err := store.NewAssetStore(uploadDir, logger)
	if err != nil {
		logger.Fatal("failed to create asset store", zap.Error(err))
	}

	annotator, err := llm.NewGemini(llm.NewGeminiConfigFromEnv(), logger)
	if err != nil {
		logger.Fatal("failed to create annotator", zap.Error(err))
	}

	synthesizer, err := tts.NewElevenLabsTTS(tts.NewElevenLabsConfigFromEnv(), logger)
	if err != nil {
		logger.Fatal("failed to create synthesizer", zap.Error(err))
	}

	// Initialize usecase services
	svc := usecase.NewBookChatService(
		assets,
		ffmpeg.New(logger),
		denoise.New(logger),
		annotator,
		synthesizer,
		pdf.New(logger),
		store.NewFileHistoryStore(assets.Dir(), logger),
		store.NewMemoryBookStore(),
		logger,
	)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	renderer, err := api.NewRenderer()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}
	e.Renderer = renderer

	// Initialize API routes
	api.InitBookChatRoutes(e, svc, assets, logger)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Book chat service started", zap.String("port", port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

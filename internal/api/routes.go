package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voicebook/server/adapters/store"
	"github.com/voicebook/server/domain/entities"
	"github.com/voicebook/server/usecase"
)

// InitRecorderRoutes initializes the transcribe-and-classify service routes
func InitRecorderRoutes(e *echo.Echo, svc *usecase.RecorderService, assets *store.AssetStore, logger *zap.Logger) {
	h := &recorderHandler{svc: svc, assets: assets, logger: logger}

	e.GET("/health", healthCheck("voicebook-recorder"))
	e.GET("/", h.index)
	e.POST("/upload", h.upload)
	e.Static("/uploads", assets.Dir())
}

// InitBookChatRoutes initializes the ask-the-book service routes
func InitBookChatRoutes(e *echo.Echo, svc *usecase.BookChatService, assets *store.AssetStore, logger *zap.Logger) {
	h := &bookChatHandler{svc: svc, assets: assets, logger: logger}

	e.GET("/health", healthCheck("voicebook-bookchat"))
	e.GET("/", h.index)
	e.POST("/upload_pdf", h.uploadBook)
	e.POST("/ask_book", h.ask)
	e.Static("/uploads", assets.Dir())
}

func healthCheck(service string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": service,
		})
	}
}

type recorderHandler struct {
	svc    *usecase.RecorderService
	assets *store.AssetStore
	logger *zap.Logger
}

func (h *recorderHandler) index(c echo.Context) error {
	files, err := h.assets.ListPlayback()
	if err != nil {
		h.logger.Error("Failed to list playback files", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list recordings"})
	}

	return c.Render(http.StatusOK, "recorder.html", map[string]interface{}{
		"AudioFiles": files,
	})
}

func (h *recorderHandler) upload(c echo.Context) error {
	fh, err := c.FormFile("audio_data")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No audio data received"})
	}

	src, err := fh.Open()
	if err != nil {
		h.logger.Error("Failed to open upload", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read upload"})
	}
	defer src.Close()

	result, err := h.svc.Process(c.Request().Context(), fh.Filename, src)
	if err != nil {
		return pipelineError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, UploadResponse{
		ProcessedFile:         result.ProcessedFile,
		TranscriptionFile:     result.TranscriptionFile,
		Sentiment:             result.Sentiment,
		SentimentAnalysisFile: result.SentimentFile,
	})
}

type bookChatHandler struct {
	svc    *usecase.BookChatService
	assets *store.AssetStore
	logger *zap.Logger
}

func (h *bookChatHandler) index(c echo.Context) error {
	files, err := h.assets.ListPlayback()
	if err != nil {
		h.logger.Error("Failed to list playback files", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list recordings"})
	}

	history, err := h.svc.History()
	if err != nil {
		h.logger.Error("Failed to load conversation history", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load history"})
	}
	if history == nil {
		history = []entities.HistoryEntry{}
	}

	return c.Render(http.StatusOK, "bookchat.html", map[string]interface{}{
		"AudioFiles": files,
		"History":    history,
	})
}

func (h *bookChatHandler) uploadBook(c echo.Context) error {
	fh, err := c.FormFile("bookPdf")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No book received"})
	}

	src, err := fh.Open()
	if err != nil {
		h.logger.Error("Failed to open book upload", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read upload"})
	}
	defer src.Close()

	book, err := h.svc.UploadBook(c.Request().Context(), fh.Filename, src)
	if err != nil {
		return pipelineError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, UploadBookResponse{
		Book:       book.Title,
		Characters: len(book.Text),
	})
}

func (h *bookChatHandler) ask(c echo.Context) error {
	fh, err := c.FormFile("audio_data")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No audio data received"})
	}

	src, err := fh.Open()
	if err != nil {
		h.logger.Error("Failed to open upload", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read upload"})
	}
	defer src.Close()

	result, err := h.svc.Ask(c.Request().Context(), fh.Filename, src)
	if err != nil {
		return pipelineError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, AskResponse{
		Question:  result.Question,
		Answer:    result.Answer,
		AudioFile: result.AudioFile,
	})
}

// pipelineError maps a pipeline failure to an HTTP response: validation
// and missing-book failures are the client's fault, every downstream
// stage is a server error with a stage-specific message.
func pipelineError(c echo.Context, logger *zap.Logger, err error) error {
	status := http.StatusInternalServerError
	if usecase.IsClientFault(err) {
		status = http.StatusBadRequest
	} else {
		logger.Error("Pipeline stage failed",
			zap.String("stage", usecase.StageOf(err)),
			zap.Error(err))
	}

	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voicebook/server/adapters/store"
	"github.com/voicebook/server/domain/entities"
	"github.com/voicebook/server/domain/repositories"
)

// AskResult is the outcome of one answered spoken question.
type AskResult struct {
	Question  string
	Answer    string
	AudioFile string
}

// BookChatService orchestrates the ask-the-book pipeline: a spoken
// question is transcribed, answered against the current book snapshot,
// synthesized to speech, and appended to the conversation history.
type BookChatService struct {
	ingestor
	synthesizer repositories.Synthesizer
	extractor   repositories.Extractor
	history     repositories.HistoryStore
	books       repositories.BookStore
}

// NewBookChatService creates a new ask-the-book pipeline orchestrator
func NewBookChatService(
	assets *store.AssetStore,
	converter repositories.Converter,
	denoiser repositories.Denoiser,
	annotator repositories.Annotator,
	synthesizer repositories.Synthesizer,
	extractor repositories.Extractor,
	history repositories.HistoryStore,
	books repositories.BookStore,
	logger *zap.Logger,
) *BookChatService {
	return &BookChatService{
		ingestor: ingestor{
			assets:    assets,
			converter: converter,
			denoiser:  denoiser,
			annotator: annotator,
			logger:    logger,
		},
		synthesizer: synthesizer,
		extractor:   extractor,
		history:     history,
		books:       books,
	}
}

// UploadBook replaces the live book context with the extracted text of
// the uploaded PDF.
func (s *BookChatService) UploadBook(ctx context.Context, filename string, upload io.Reader) (entities.Book, error) {
	if filename == "" || !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return entities.Book{}, stageErr(StageValidate, fmt.Errorf("a PDF file is required"))
	}

	path, err := s.assets.Save("book_"+s.assets.NewBaseName()+".pdf", upload)
	if err != nil {
		return entities.Book{}, stageErr(StageSaveUpload, err)
	}

	text, err := s.extractor.ExtractText(path)
	if err != nil {
		return entities.Book{}, stageErr(StageExtract, err)
	}

	book := s.books.Replace(filepath.Base(filename), text)
	s.logger.Info("Book context replaced",
		zap.String("title", book.Title),
		zap.Int("version", book.Version),
		zap.Int("characters", len(book.Text)))

	return book, nil
}

// Ask runs the full question-answering pipeline for one uploaded
// recording. The book snapshot is taken once, so the answer is grounded
// in a consistent context even if an upload replaces it mid-flight.
func (s *BookChatService) Ask(ctx context.Context, filename string, upload io.Reader) (*AskResult, error) {
	book, ok := s.books.Snapshot()
	if !ok {
		return nil, stageErr(StageBookContext, fmt.Errorf("a book must be uploaded first"))
	}

	if !IsAudioFilename(filename) {
		return nil, stageErr(StageValidate, fmt.Errorf("invalid file type or empty filename"))
	}

	base := s.assets.NewBaseName()

	containerPath, err := s.assets.Save(base+".webm", upload)
	if err != nil {
		return nil, stageErr(StageSaveUpload, err)
	}

	wavPath, _, err := s.ingest(ctx, containerPath)
	if err != nil {
		return nil, err
	}

	raw, err := s.annotate(ctx, wavPath, TranscribePrompt)
	if err != nil {
		return nil, err
	}

	question := strings.TrimSpace(raw)
	if question == "" {
		return nil, stageErr(StageAnnotate, fmt.Errorf("no speech detected in question"))
	}

	answerRaw, err := s.annotator.Generate(ctx, AnswerPrompt(book.Text, question))
	if err != nil {
		return nil, stageErr(StageAnnotate, err)
	}
	answer := strings.TrimSpace(answerRaw)

	speech, err := s.synthesizer.SynthesizeSpeech(ctx, answer)
	if err != nil {
		return nil, stageErr(StageSynthesize, err)
	}

	audioName := fmt.Sprintf("answer_%s.mp3", uuid.NewString())
	if _, err := s.assets.WriteBytes(audioName, speech); err != nil {
		return nil, stageErr(StagePersist, err)
	}

	entry := entities.HistoryEntry{
		Timestamp: time.Now(),
		Question:  question,
		Answer:    answer,
		AudioFile: audioName,
	}
	if err := s.history.Append(entry); err != nil {
		return nil, stageErr(StageHistory, err)
	}

	s.logger.Info("Question answered",
		zap.Int("bookVersion", book.Version),
		zap.String("audioFile", audioName))

	return &AskResult{
		Question:  question,
		Answer:    answer,
		AudioFile: audioName,
	}, nil
}

// History returns the full conversation history in append order.
func (s *BookChatService) History() ([]entities.HistoryEntry, error) {
	return s.history.LoadAll()
}

package snippet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/snippetd/snippetd/internal/domain"
	"github.com/snippetd/snippetd/internal/logger"
	"github.com/snippetd/snippetd/internal/summarizer"
)

// Store is the persistence surface the service needs. The MongoDB store
// satisfies it; tests substitute fakes.
type Store interface {
	Create(ctx context.Context, text, summary string) (*domain.Snippet, error)
	FindByID(ctx context.Context, id string) (*domain.Snippet, error)
	FindAll(ctx context.Context) ([]*domain.Snippet, error)
}

// Service coordinates validation, summarization, persistence and failure
// classification for snippet operations.
type Service struct {
	store      Store
	summarizer summarizer.Summarizer
	logger     logger.Logger
}

// NewService creates a snippet service.
func NewService(store Store, sum summarizer.Summarizer, log logger.Logger) *Service {
	return &Service{
		store:      store,
		summarizer: sum,
		logger:     log,
	}
}

// Create validates the text, summarizes it and persists the pair. The text
// sent upstream is the original, untrimmed input; trimming applies only to
// validation. A record is only ever written after summarization succeeded,
// and exactly one upstream attempt is made: a retry here would bill the AI
// service twice, and there is no partial state to clean up on failure.
func (s *Service) Create(ctx context.Context, text string) (*domain.Snippet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	summary, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		if isThrottled(err) {
			s.logger.Warn("ai service rate limited", logger.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrThrottled, err)
		}
		s.logger.Error("summarization failed", logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSummarize, err)
	}

	created, err := s.store.Create(ctx, text, summary)
	if err != nil {
		s.logger.Error("failed to persist snippet", logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSummarize, err)
	}

	s.logger.Info("snippet created",
		logger.String("id", created.ID.Hex()),
		logger.Int("text_len", len(text)),
		logger.Int("summary_len", len(summary)))

	return created, nil
}

// GetByID looks up a snippet. Every lookup failure, malformed id included,
// folds into ErrNotFound at this layer.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Snippet, error) {
	snippet, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return snippet, nil
}

// List returns every stored snippet. An empty result is a valid zero-length
// slice, distinct from a store failure.
func (s *Service) List(ctx context.Context) ([]*domain.Snippet, error) {
	snippets, err := s.store.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list snippets", logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return snippets, nil
}

// isThrottled reports whether err carries the upstream 429 signal, either on
// the parsed API error or on the raw response wrapper. Nothing else about
// the error is inspected.
func isThrottled(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	return false
}

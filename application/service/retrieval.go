package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/verdantiq/greenrag/domain/document"
	"github.com/verdantiq/greenrag/domain/search"
	"github.com/verdantiq/greenrag/infrastructure/provider"
)

// ErrAnswerUnavailable is returned when the language model cannot be
// reached or refuses the request. The underlying provider error is logged
// server-side and never forwarded to the caller.
var ErrAnswerUnavailable = errors.New("the advisory assistant is temporarily unavailable, please retry")

// Answer is the result of a retrieval-augmented query: the generated
// answer plus the chunk matches it was grounded on.
type Answer struct {
	text    string
	matches []document.Match
}

// Text returns the generated answer.
func (a Answer) Text() string { return a.text }

// Matches returns the retrieved chunks the answer was grounded on. Empty
// when the answer was generated without document context.
func (a Answer) Matches() []document.Match { return a.matches }

// RetrievalService answers questions over the ingested document corpus:
// it embeds the query, retrieves similar chunks, assembles them into a
// token-budgeted context, and asks the language model for an answer.
type RetrievalService struct {
	embedder  provider.Embedder
	searcher  search.Searcher
	generator provider.TextGenerator
	budget    search.TokenBudget
	prompts   promptSet
	logger    *slog.Logger
}

// NewRetrievalService creates a RetrievalService.
func NewRetrievalService(
	embedder provider.Embedder,
	searcher search.Searcher,
	generator provider.TextGenerator,
	budget search.TokenBudget,
	logger *slog.Logger,
) (*RetrievalService, error) {
	prompts, err := loadPrompts()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetrievalService{
		embedder:  embedder,
		searcher:  searcher,
		generator: generator,
		budget:    budget,
		prompts:   prompts,
		logger:    logger,
	}, nil
}

// Query answers a question against the ingested corpus. An empty
// retrieval result still produces an answer, generated from a prompt that
// says no document context was found. Provider failures return
// ErrAnswerUnavailable, never the raw provider error.
func (s *RetrievalService) Query(ctx context.Context, req search.Request) (Answer, error) {
	query := strings.TrimSpace(req.Query())
	if query == "" {
		return Answer{}, fmt.Errorf("query must not be empty")
	}

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.logger.Error("embedding query failed", "error", err)
		return Answer{}, ErrAnswerUnavailable
	}

	matches, err := s.searcher.Search(ctx, queryVector, req.Threshold(), req.TopK())
	if err != nil {
		// The searcher degrades internally rather than erroring, so this
		// path stays defensive only.
		s.logger.Error("similarity search failed", "error", err)
		matches = nil
	}

	userPrompt := s.prompts.Answer.NoContext + "\n\nQuestion: " + query
	if len(matches) > 0 {
		assembled := s.budget.AssembleContext(matches)
		userPrompt = render(s.prompts.Answer.User, map[string]string{
			"context": assembled,
			"query":   query,
		})
	}

	completion := provider.NewCompletionRequest([]provider.Message{
		provider.NewMessage(provider.RoleSystem, s.prompts.Answer.System),
		provider.NewMessage(provider.RoleUser, userPrompt),
	}).WithTemperature(0.3)

	text, err := s.generator.Complete(ctx, completion)
	if err != nil {
		s.logger.Error("answer generation failed", "error", err)
		return Answer{}, ErrAnswerUnavailable
	}

	return Answer{text: strings.TrimSpace(text), matches: matches}, nil
}

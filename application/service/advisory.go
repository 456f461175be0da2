package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/verdantiq/greenrag/domain/advisory"
	"github.com/verdantiq/greenrag/infrastructure/provider"
)

// AdvisoryService serves generated advisory content through a write-once
// cache keyed by the request dimensions. Cache rows are never evicted; a
// key is generated at most once per deployment, racing writers excepted,
// and the race resolves to a single winning row.
type AdvisoryService struct {
	cache     advisory.CacheStore
	generator provider.TextGenerator
	prompts   promptSet
	logger    *slog.Logger
}

// NewAdvisoryService creates an AdvisoryService.
func NewAdvisoryService(cache advisory.CacheStore, generator provider.TextGenerator, logger *slog.Logger) (*AdvisoryService, error) {
	prompts, err := loadPrompts()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AdvisoryService{
		cache:     cache,
		generator: generator,
		prompts:   prompts,
		logger:    logger,
	}, nil
}

// GetOrGenerate returns the advisory content for a kind and dimension
// tuple. A cache hit is returned as-is with Source=cache. On a miss the
// content is generated, inserted, and returned with Source=generated; if a
// concurrent writer inserted the same key first, the winner's row is
// re-read and returned instead. A provider failure is returned as an error
// and nothing is inserted, so the key remains generatable.
func (s *AdvisoryService) GetOrGenerate(ctx context.Context, kind advisory.Kind, dims advisory.Dimensions) (advisory.Content, error) {
	if err := dims.Validate(kind); err != nil {
		return advisory.Content{}, err
	}

	cacheKey := dims.CacheKey(kind)
	entry, err := s.cache.Get(ctx, kind, cacheKey)
	if err == nil {
		return contentFromPayload(kind, entry.Payload(), advisory.SourceCache)
	}

	payload, err := s.generatePayload(ctx, kind, dims)
	if err != nil {
		return advisory.Content{}, fmt.Errorf("generating %s content: %w", kind, err)
	}

	if err := s.cache.Insert(ctx, advisory.NewEntry(kind, dims, payload)); err != nil {
		if errors.Is(err, advisory.ErrDuplicateEntry) {
			winner, getErr := s.cache.Get(ctx, kind, cacheKey)
			if getErr != nil {
				return advisory.Content{}, fmt.Errorf("re-reading cache after duplicate insert: %w", getErr)
			}
			return contentFromPayload(kind, winner.Payload(), advisory.SourceCache)
		}
		return advisory.Content{}, fmt.Errorf("caching %s content: %w", kind, err)
	}

	return contentFromPayload(kind, payload, advisory.SourceGenerated)
}

// generatePayload produces the serialized payload for a kind. A provider
// failure is returned as an error so the key stays absent and a later
// request can try again; only malformed model output resolves to the
// deterministic templated payload, without a second LLM call.
func (s *AdvisoryService) generatePayload(ctx context.Context, kind advisory.Kind, dims advisory.Dimensions) (string, error) {
	pair := s.prompts.forKind(kind)
	values := dimensionValues(dims)

	req := provider.NewCompletionRequest([]provider.Message{
		provider.NewMessage(provider.RoleSystem, pair.System),
		provider.NewMessage(provider.RoleUser, render(pair.User, values)),
	}).WithTemperature(0.7)
	if kind != advisory.KindScenario {
		req = req.WithJSONMode()
	}

	raw, err := s.generator.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	switch kind {
	case advisory.KindScenario:
		text := strings.TrimSpace(raw)
		if text == "" {
			return fallbackPayload(kind, dims), nil
		}
		return text, nil
	case advisory.KindStrategy:
		var bundle advisory.StrategyBundle
		if err := json.Unmarshal([]byte(raw), &bundle); err != nil || bundle.Summary == "" {
			s.logger.Warn("malformed strategy payload, using templated fallback",
				"kind", kind, "error", err)
			return fallbackPayload(kind, dims), nil
		}
		return mustMarshal(bundle), nil
	default:
		var analysis advisory.FinancialAnalysis
		if err := json.Unmarshal([]byte(raw), &analysis); err != nil || analysis.Summary == "" {
			s.logger.Warn("malformed financial payload, using templated fallback",
				"kind", kind, "error", err)
			return fallbackPayload(kind, dims), nil
		}
		return mustMarshal(analysis), nil
	}
}

func fallbackPayload(kind advisory.Kind, dims advisory.Dimensions) string {
	switch kind {
	case advisory.KindScenario:
		return advisory.FallbackScenario(dims)
	case advisory.KindStrategy:
		return mustMarshal(advisory.FallbackStrategy(dims))
	default:
		return mustMarshal(advisory.FallbackFinancial(dims))
	}
}

// contentFromPayload rebuilds typed content from a stored payload. A
// structured payload that no longer parses is a data defect, not a
// generation problem, so it surfaces as an error.
func contentFromPayload(kind advisory.Kind, payload string, source advisory.Source) (advisory.Content, error) {
	switch kind {
	case advisory.KindScenario:
		return advisory.NewScenarioContent(payload, source), nil
	case advisory.KindStrategy:
		var bundle advisory.StrategyBundle
		if err := json.Unmarshal([]byte(payload), &bundle); err != nil {
			return advisory.Content{}, fmt.Errorf("decoding cached strategy payload: %w", err)
		}
		return advisory.NewStrategyContent(bundle, source), nil
	case advisory.KindFinancial:
		var analysis advisory.FinancialAnalysis
		if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
			return advisory.Content{}, fmt.Errorf("decoding cached financial payload: %w", err)
		}
		return advisory.NewFinancialContent(analysis, source), nil
	default:
		return advisory.Content{}, fmt.Errorf("unknown advisory content kind %q", kind)
	}
}

func mustMarshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Only reachable for unmarshalable types, which these are not.
		panic(err)
	}
	return string(data)
}

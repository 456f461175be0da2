package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantiq/greenrag/application/service"
	"github.com/verdantiq/greenrag/domain/advisory"
	"github.com/verdantiq/greenrag/infrastructure/persistence"
	"github.com/verdantiq/greenrag/internal/database"
	"github.com/verdantiq/greenrag/internal/testdb"
)

func newAdvisoryFixture(t *testing.T, gen *fakeGenerator) (*service.AdvisoryService, persistence.CacheStore) {
	t.Helper()
	db := testdb.New(t)
	cache := persistence.NewCacheStore(db)
	svc, err := service.NewAdvisoryService(cache, gen, nil)
	require.NoError(t, err)
	return svc, cache
}

func testDims() advisory.Dimensions {
	return advisory.NewDimensions("risk", "Policy and Legal", "Carbon pricing", "Manufacturing", "medium")
}

func TestScenarioGeneratedThenServedFromCache(t *testing.T) {
	gen := &fakeGenerator{response: "A carbon price rises steadily through 2030."}
	svc, _ := newAdvisoryFixture(t, gen)
	ctx := context.Background()

	first, err := svc.GetOrGenerate(ctx, advisory.KindScenario, testDims())
	require.NoError(t, err)
	assert.Equal(t, advisory.SourceGenerated, first.Source())
	assert.Equal(t, "A carbon price rises steadily through 2030.", first.Scenario())

	second, err := svc.GetOrGenerate(ctx, advisory.KindScenario, testDims())
	require.NoError(t, err)
	assert.Equal(t, advisory.SourceCache, second.Source())
	assert.Equal(t, first.Scenario(), second.Scenario())
	assert.Equal(t, 1, gen.callCount())
}

func TestStrategyParsesStructuredResponse(t *testing.T) {
	gen := &fakeGenerator{response: `{"summary":"Reduce exposure to carbon pricing",` +
		`"actions":[{"title":"Energy audit","description":"Audit all sites","timeframe":"6 months"}],` +
		`"risks":["Capital constraints"]}`}
	svc, _ := newAdvisoryFixture(t, gen)

	content, err := svc.GetOrGenerate(context.Background(), advisory.KindStrategy, testDims())
	require.NoError(t, err)

	bundle, ok := content.Strategy()
	require.True(t, ok)
	assert.Equal(t, "Reduce exposure to carbon pricing", bundle.Summary)
	require.Len(t, bundle.Actions, 1)
	assert.Equal(t, "Energy audit", bundle.Actions[0].Title)
}

func TestMalformedJSONUsesTemplatedFallback(t *testing.T) {
	gen := &fakeGenerator{response: "sorry, I cannot produce JSON today"}
	svc, _ := newAdvisoryFixture(t, gen)

	content, err := svc.GetOrGenerate(context.Background(), advisory.KindStrategy, testDims())
	require.NoError(t, err)

	bundle, ok := content.Strategy()
	require.True(t, ok)
	assert.NotEmpty(t, bundle.Summary)
	assert.NotEmpty(t, bundle.Actions)
	// One generation attempt, no retry.
	assert.Equal(t, 1, gen.callCount())
}

func TestGenerationFailureIsNotCached(t *testing.T) {
	gen := &fakeGenerator{err: errProviderDown}
	svc, cache := newAdvisoryFixture(t, gen)
	ctx := context.Background()

	_, err := svc.GetOrGenerate(ctx, advisory.KindFinancial, financialDims("efficiency"))
	require.ErrorIs(t, err, errProviderDown)

	key := financialDims("efficiency").CacheKey(advisory.KindFinancial)
	_, err = cache.Get(ctx, advisory.KindFinancial, key)
	assert.Error(t, err)
}

func TestKeyIsGeneratableAfterProviderRecovers(t *testing.T) {
	gen := &fakeGenerator{failFirst: 1, response: "A carbon price rises steadily through 2030."}
	svc, _ := newAdvisoryFixture(t, gen)
	ctx := context.Background()

	_, err := svc.GetOrGenerate(ctx, advisory.KindScenario, testDims())
	require.ErrorIs(t, err, errProviderDown)

	content, err := svc.GetOrGenerate(ctx, advisory.KindScenario, testDims())
	require.NoError(t, err)
	assert.Equal(t, advisory.SourceGenerated, content.Source())
	assert.Equal(t, "A carbon price rises steadily through 2030.", content.Scenario())
	assert.Equal(t, 2, gen.callCount())
}

func financialDims(strategyType string) advisory.Dimensions {
	d := testDims()
	return advisory.NewFinancialDimensions(
		d.CategoryType(), d.CategoryName(), d.Subcategory(), d.Industry(), d.CompanySize(), strategyType,
	)
}

func TestInvalidDimensionsRejected(t *testing.T) {
	gen := &fakeGenerator{response: "unused"}
	svc, _ := newAdvisoryFixture(t, gen)

	_, err := svc.GetOrGenerate(context.Background(),
		advisory.KindScenario,
		advisory.NewDimensions("risk", "", "Carbon pricing", "Manufacturing", "medium"))
	require.Error(t, err)
	assert.Zero(t, gen.callCount())
}

// racingCache simulates a concurrent writer: the first Get reports a miss
// even though the row exists, so the service generates and runs into the
// unique-key conflict on Insert.
type racingCache struct {
	advisory.CacheStore
	missed bool
}

func (c *racingCache) Get(ctx context.Context, kind advisory.Kind, cacheKey string) (advisory.Entry, error) {
	if !c.missed {
		c.missed = true
		return advisory.Entry{}, database.ErrNotFound
	}
	return c.CacheStore.Get(ctx, kind, cacheKey)
}

func TestDuplicateInsertReturnsWinner(t *testing.T) {
	db := testdb.New(t)
	cache := persistence.NewCacheStore(db)
	ctx := context.Background()

	winner := advisory.NewEntry(advisory.KindScenario, testDims(), "winner text")
	require.NoError(t, cache.Insert(ctx, winner))

	gen := &fakeGenerator{response: "loser text"}
	svc, err := service.NewAdvisoryService(&racingCache{CacheStore: cache}, gen, nil)
	require.NoError(t, err)

	content, err := svc.GetOrGenerate(ctx, advisory.KindScenario, testDims())
	require.NoError(t, err)
	assert.Equal(t, advisory.SourceCache, content.Source())
	assert.Equal(t, "winner text", content.Scenario())
	assert.Equal(t, 1, gen.callCount())

	entry, err := cache.Get(ctx, advisory.KindScenario, testDims().CacheKey(advisory.KindScenario))
	require.NoError(t, err)
	assert.Equal(t, "winner text", entry.Payload())
}

func TestDimensionPromptIncludesAllFields(t *testing.T) {
	gen := &fakeGenerator{response: "scenario text"}
	svc, _ := newAdvisoryFixture(t, gen)

	_, err := svc.GetOrGenerate(context.Background(), advisory.KindScenario, testDims())
	require.NoError(t, err)

	prompt := gen.lastUserContent()
	assert.Contains(t, prompt, "Policy and Legal")
	assert.Contains(t, prompt, "Carbon pricing")
	assert.Contains(t, prompt, "Manufacturing")
	assert.Contains(t, prompt, "medium")
}

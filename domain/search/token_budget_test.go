package search_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantiq/greenrag/domain/document"
	"github.com/verdantiq/greenrag/domain/search"
)

func match(text string) document.Match {
	return document.NewMatch(1, "report.txt", text, 0, 0.9)
}

func TestAssembleContextJoinsMatches(t *testing.T) {
	budget, err := search.NewTokenBudget(search.DefaultContextTokens)
	require.NoError(t, err)

	assembled := budget.AssembleContext([]document.Match{
		match("First passage about emissions."),
		match("Second passage about targets."),
	})

	assert.Contains(t, assembled, "First passage about emissions.")
	assert.Contains(t, assembled, "Second passage about targets.")
}

func TestAssembleContextRespectsBudget(t *testing.T) {
	budget, err := search.NewTokenBudget(50)
	require.NoError(t, err)

	long := strings.Repeat("emissions reporting baseline ", 200)
	assembled := budget.AssembleContext([]document.Match{
		match(long),
		match(long),
	})

	// Re-encoding a truncated decode can shift a token at the boundary,
	// so allow a small margin over the configured budget.
	assert.LessOrEqual(t, budget.CountTokens(assembled), 52)
	assert.Less(t, len(assembled), len(long))
	assert.NotEmpty(t, assembled)
}

func TestAssembleContextEmptyMatches(t *testing.T) {
	budget, err := search.NewTokenBudget(search.DefaultContextTokens)
	require.NoError(t, err)

	assert.Empty(t, budget.AssembleContext(nil))
}

func TestCountTokensGrowsWithText(t *testing.T) {
	budget, err := search.NewTokenBudget(search.DefaultContextTokens)
	require.NoError(t, err)

	short := budget.CountTokens("emissions")
	long := budget.CountTokens(strings.Repeat("emissions reporting ", 50))
	assert.Greater(t, long, short)
	assert.Greater(t, short, 0)
}

func TestNewRequestDefaults(t *testing.T) {
	req := search.NewRequest("question", 0, 0)
	assert.Equal(t, search.DefaultThreshold, req.Threshold())
	assert.Equal(t, search.DefaultTopK, req.TopK())

	custom := search.NewRequest("question", 0.5, 10)
	assert.Equal(t, 0.5, custom.Threshold())
	assert.Equal(t, 10, custom.TopK())
}

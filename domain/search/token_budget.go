package search

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"github.com/verdantiq/greenrag/domain/document"
)

// DefaultContextTokens is the default token budget for retrieved context,
// leaving headroom for the prompt and the completion in an 8k window.
const DefaultContextTokens = 3000

// TokenBudget limits how much retrieved chunk text is packed into a
// generation prompt, measured in model tokens.
type TokenBudget struct {
	maxTokens int
	encoder   *tiktoken.Tiktoken
}

// NewTokenBudget creates a TokenBudget using the cl100k_base encoding.
func NewTokenBudget(maxTokens int) (TokenBudget, error) {
	if maxTokens <= 0 {
		return TokenBudget{}, fmt.Errorf("token budget must be positive, got %d", maxTokens)
	}
	encoder, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return TokenBudget{}, fmt.Errorf("load token encoding: %w", err)
	}
	return TokenBudget{maxTokens: maxTokens, encoder: encoder}, nil
}

// MaxTokens returns the budget's token limit.
func (b TokenBudget) MaxTokens() int { return b.maxTokens }

// CountTokens returns the number of tokens in text.
func (b TokenBudget) CountTokens(text string) int {
	return len(b.encoder.Encode(text, nil, nil))
}

// AssembleContext joins match texts, in the given order, into a single
// context block. Matches that would push the total past the budget are
// dropped; at least the first match is always included, truncated to the
// budget if necessary.
func (b TokenBudget) AssembleContext(matches []document.Match) string {
	if len(matches) == 0 {
		return ""
	}

	var parts []string
	used := 0
	for i, m := range matches {
		text := m.ChunkText()
		tokens := b.CountTokens(text)
		if used+tokens > b.maxTokens {
			if i == 0 {
				parts = append(parts, b.truncate(text))
			}
			break
		}
		parts = append(parts, text)
		used += tokens
	}
	return strings.Join(parts, "\n\n")
}

// truncate cuts text down to the token budget.
func (b TokenBudget) truncate(text string) string {
	ids := b.encoder.Encode(text, nil, nil)
	if len(ids) <= b.maxTokens {
		return text
	}
	return b.encoder.Decode(ids[:b.maxTokens])
}

package advisory

import "fmt"

// Kind identifies the advisory content variant.
type Kind string

// Kind values.
const (
	KindScenario  Kind = "scenario"
	KindStrategy  Kind = "strategy"
	KindFinancial Kind = "financial"
)

// ParseKind validates a kind string from an external surface.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindScenario, KindStrategy, KindFinancial:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown advisory content kind %q", s)
	}
}

// Source tells the caller whether a payload came from the cache or from a
// fresh generation.
type Source string

// Source values.
const (
	SourceCache     Source = "cache"
	SourceGenerated Source = "generated"
)

// StrategyAction is a single recommended action inside a strategy bundle.
type StrategyAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Timeframe   string `json:"timeframe"`
}

// StrategyBundle is the structured payload for the strategy kind.
type StrategyBundle struct {
	Summary string           `json:"summary"`
	Actions []StrategyAction `json:"actions"`
	Risks   []string         `json:"risks"`
}

// FinancialAnalysis is the structured payload for the financial kind.
type FinancialAnalysis struct {
	Summary         string `json:"summary"`
	InvestmentRange string `json:"investment_range"`
	PaybackPeriod   string `json:"payback_period"`
	CostDrivers     []string `json:"cost_drivers"`
	Benefits        []string `json:"benefits"`
}

// Content is the tagged payload variant returned by the cache: exactly one
// of Scenario, Strategy, or Financial is set, according to Kind.
type Content struct {
	kind      Kind
	source    Source
	scenario  string
	strategy  *StrategyBundle
	financial *FinancialAnalysis
}

// NewScenarioContent creates scenario content (plain text payload).
func NewScenarioContent(text string, source Source) Content {
	return Content{kind: KindScenario, source: source, scenario: text}
}

// NewStrategyContent creates strategy content.
func NewStrategyContent(bundle StrategyBundle, source Source) Content {
	return Content{kind: KindStrategy, source: source, strategy: &bundle}
}

// NewFinancialContent creates financial content.
func NewFinancialContent(analysis FinancialAnalysis, source Source) Content {
	return Content{kind: KindFinancial, source: source, financial: &analysis}
}

// Kind returns the content variant tag.
func (c Content) Kind() Kind { return c.kind }

// Source returns whether the payload was cached or freshly generated.
func (c Content) Source() Source { return c.source }

// Scenario returns the plain-text payload; valid only for KindScenario.
func (c Content) Scenario() string { return c.scenario }

// Strategy returns the strategy payload and whether it is set.
func (c Content) Strategy() (StrategyBundle, bool) {
	if c.strategy == nil {
		return StrategyBundle{}, false
	}
	return *c.strategy, true
}

// Financial returns the financial payload and whether it is set.
func (c Content) Financial() (FinancialAnalysis, bool) {
	if c.financial == nil {
		return FinancialAnalysis{}, false
	}
	return *c.financial, true
}

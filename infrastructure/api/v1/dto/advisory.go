package dto

// AdvisoryRequest selects the dimension tuple advisory content is
// generated (or served from cache) for. StrategyType is required for the
// financial kind only, which the handler enforces.
type AdvisoryRequest struct {
	CategoryType string `json:"category_type" validate:"required,max=100"`
	CategoryName string `json:"category_name" validate:"required,max=200"`
	Subcategory  string `json:"subcategory" validate:"required,max=200"`
	Industry     string `json:"industry" validate:"required,max=200"`
	CompanySize  string `json:"company_size" validate:"required,max=50"`
	StrategyType string `json:"strategy_type,omitempty" validate:"max=200"`
}

// StrategyAction mirrors one recommended action.
type StrategyAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Timeframe   string `json:"timeframe"`
}

// AdvisoryResponse is the advisory payload for any kind; exactly one of
// Scenario, Strategy, or Financial is set.
type AdvisoryResponse struct {
	Kind      string            `json:"kind"`
	Source    string            `json:"source"`
	Scenario  string            `json:"scenario,omitempty"`
	Strategy  *StrategyPayload  `json:"strategy,omitempty"`
	Financial *FinancialPayload `json:"financial,omitempty"`
}

// StrategyPayload mirrors the structured strategy bundle.
type StrategyPayload struct {
	Summary string           `json:"summary"`
	Actions []StrategyAction `json:"actions"`
	Risks   []string         `json:"risks"`
}

// FinancialPayload mirrors the structured financial analysis.
type FinancialPayload struct {
	Summary         string   `json:"summary"`
	InvestmentRange string   `json:"investment_range"`
	PaybackPeriod   string   `json:"payback_period"`
	CostDrivers     []string `json:"cost_drivers"`
	Benefits        []string `json:"benefits"`
}

// PregenRequest defines the dimension matrix for a pregeneration batch.
type PregenRequest struct {
	Tuples        []AdvisoryRequest `json:"tuples" validate:"required,min=1,max=500,dive"`
	StrategyTypes []string          `json:"strategy_types" validate:"max=20"`
}

// PregenFailure is one failed batch item.
type PregenFailure struct {
	Kind     string `json:"kind"`
	CacheKey string `json:"cache_key"`
	Error    string `json:"error"`
}

// PregenResponse summarizes a pregeneration batch.
type PregenResponse struct {
	Total     int             `json:"total"`
	Generated int             `json:"generated"`
	Cached    int             `json:"cached"`
	Failures  []PregenFailure `json:"failures"`
}

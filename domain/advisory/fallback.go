package advisory

import "fmt"

// Fallback payloads are synthesized deterministically from the request
// dimensions when the language model returns content that cannot be parsed.
// They never trigger a second model call and are never surfaced as errors.

// FallbackScenario builds a templated scenario description.
func FallbackScenario(d Dimensions) string {
	return fmt.Sprintf(
		"Under the %s category %q (%s), a %s company in the %s industry should "+
			"anticipate material climate-related effects on operations, supply "+
			"chain, and cost structure. A detailed scenario narrative could not "+
			"be generated at this time; the assessment dimensions above remain "+
			"the basis for further analysis.",
		d.CategoryType(), d.CategoryName(), d.Subcategory(), d.CompanySize(), d.Industry(),
	)
}

// FallbackStrategy builds a templated strategy bundle.
func FallbackStrategy(d Dimensions) StrategyBundle {
	return StrategyBundle{
		Summary: fmt.Sprintf(
			"Baseline response strategy for %s / %s (%s) tailored to a %s company in %s.",
			d.CategoryType(), d.CategoryName(), d.Subcategory(), d.CompanySize(), d.Industry(),
		),
		Actions: []StrategyAction{
			{
				Title:       "Assess exposure",
				Description: fmt.Sprintf("Quantify exposure to %s within %s operations.", d.Subcategory(), d.Industry()),
				Timeframe:   "short-term",
			},
			{
				Title:       "Set reduction targets",
				Description: "Define measurable targets aligned with the identified category.",
				Timeframe:   "medium-term",
			},
			{
				Title:       "Integrate into governance",
				Description: "Report progress through existing management and board review cycles.",
				Timeframe:   "long-term",
			},
		},
		Risks: []string{
			fmt.Sprintf("Unmitigated %s exposure", d.Subcategory()),
			"Regulatory tightening ahead of plan",
		},
	}
}

// FallbackFinancial builds a templated financial analysis.
func FallbackFinancial(d Dimensions) FinancialAnalysis {
	return FinancialAnalysis{
		Summary: fmt.Sprintf(
			"Indicative financial view of the %q strategy for a %s company in %s, addressing %s / %s.",
			d.StrategyType(), d.CompanySize(), d.Industry(), d.CategoryName(), d.Subcategory(),
		),
		InvestmentRange: "to be determined by detailed assessment",
		PaybackPeriod:   "to be determined by detailed assessment",
		CostDrivers: []string{
			"Upfront capital expenditure",
			"Operational transition costs",
		},
		Benefits: []string{
			"Reduced exposure to carbon pricing",
			"Improved disclosure readiness",
		},
	}
}

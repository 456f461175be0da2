// Package advisory holds the generated-content cache domain: TCFD scenario,
// strategy, and financial content addressed by a composite dimension key.
package advisory

import (
	"errors"
	"fmt"
	"strings"
)

// keyDelimiter separates dimension values inside a composite cache key.
// It is the sole addressing mechanism for persisted entries and must never
// change once entries exist.
const keyDelimiter = "|"

// ErrInvalidDimensions indicates a dimension tuple that cannot form a key.
var ErrInvalidDimensions = errors.New("invalid advisory dimensions")

// Dimensions is the ordered tuple of request parameters that addresses a
// cache entry. StrategyType participates only for the financial kind.
type Dimensions struct {
	categoryType string
	categoryName string
	subcategory  string
	industry     string
	companySize  string
	strategyType string
}

// NewDimensions creates a Dimensions tuple for scenario and strategy content.
func NewDimensions(categoryType, categoryName, subcategory, industry, companySize string) Dimensions {
	return Dimensions{
		categoryType: categoryType,
		categoryName: categoryName,
		subcategory:  subcategory,
		industry:     industry,
		companySize:  companySize,
	}
}

// NewFinancialDimensions creates a Dimensions tuple for financial content,
// which is additionally keyed by the strategy type it analyses.
func NewFinancialDimensions(categoryType, categoryName, subcategory, industry, companySize, strategyType string) Dimensions {
	d := NewDimensions(categoryType, categoryName, subcategory, industry, companySize)
	d.strategyType = strategyType
	return d
}

// CategoryType returns the TCFD category type (e.g. "risk", "opportunity").
func (d Dimensions) CategoryType() string { return d.categoryType }

// CategoryName returns the category name.
func (d Dimensions) CategoryName() string { return d.categoryName }

// Subcategory returns the subcategory name.
func (d Dimensions) Subcategory() string { return d.subcategory }

// Industry returns the industry dimension.
func (d Dimensions) Industry() string { return d.industry }

// CompanySize returns the company size dimension.
func (d Dimensions) CompanySize() string { return d.companySize }

// StrategyType returns the strategy type dimension (financial kind only).
func (d Dimensions) StrategyType() string { return d.strategyType }

// Validate checks that every required dimension is present and that no value
// contains the key delimiter, which would break key injectivity.
func (d Dimensions) Validate(kind Kind) error {
	fields := map[string]string{
		"category_type": d.categoryType,
		"category_name": d.categoryName,
		"subcategory":   d.subcategory,
		"industry":      d.industry,
		"company_size":  d.companySize,
	}
	if kind == KindFinancial {
		fields["strategy_type"] = d.strategyType
	}
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidDimensions, name)
		}
		if strings.Contains(value, keyDelimiter) {
			return fmt.Errorf("%w: %s contains reserved delimiter %q", ErrInvalidDimensions, name, keyDelimiter)
		}
	}
	return nil
}

// CacheKey builds the composite key for the given content kind: the
// dimension values joined in fixed order by the delimiter. Identical tuples
// always yield identical keys; the delimiter check in Validate keeps the
// mapping injective over valid tuples.
func (d Dimensions) CacheKey(kind Kind) string {
	parts := []string{
		d.categoryType,
		d.categoryName,
		d.subcategory,
		d.industry,
		d.companySize,
	}
	if kind == KindFinancial {
		parts = append(parts, d.strategyType)
	}
	return strings.Join(parts, keyDelimiter)
}

package service

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verdantiq/greenrag/domain/advisory"
)

//go:embed prompts.yaml
var promptsYAML []byte

// promptPair is a system/user template pair. Templates use {{name}}
// placeholders filled by render.
type promptPair struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

type promptSet struct {
	Answer struct {
		System    string `yaml:"system"`
		User      string `yaml:"user"`
		NoContext string `yaml:"no_context"`
	} `yaml:"answer"`
	Scenario  promptPair `yaml:"scenario"`
	Strategy  promptPair `yaml:"strategy"`
	Financial promptPair `yaml:"financial"`
}

func loadPrompts() (promptSet, error) {
	var set promptSet
	if err := yaml.Unmarshal(promptsYAML, &set); err != nil {
		return promptSet{}, fmt.Errorf("parsing prompt templates: %w", err)
	}
	return set, nil
}

func (s promptSet) forKind(kind advisory.Kind) promptPair {
	switch kind {
	case advisory.KindStrategy:
		return s.Strategy
	case advisory.KindFinancial:
		return s.Financial
	default:
		return s.Scenario
	}
}

func render(template string, values map[string]string) string {
	out := template
	for name, value := range values {
		out = strings.ReplaceAll(out, "{{"+name+"}}", value)
	}
	return out
}

func dimensionValues(d advisory.Dimensions) map[string]string {
	return map[string]string{
		"category_type": d.CategoryType(),
		"category_name": d.CategoryName(),
		"subcategory":   d.Subcategory(),
		"industry":      d.Industry(),
		"company_size":  d.CompanySize(),
		"strategy_type": d.StrategyType(),
	}
}

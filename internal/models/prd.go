package models

import "strings"

// GenerationRequest is one user submission. It is immutable once built.
type GenerationRequest struct {
	ProductIdea    string `json:"productIdea" yaml:"productIdea"`
	TargetAudience string `json:"targetAudience" yaml:"targetAudience"`
	Timeline       string `json:"timeline" yaml:"timeline"`
	BudgetRange    string `json:"budgetRange" yaml:"budgetRange"`
}

// Defaults used by the boundaries when the caller leaves a field empty.
const (
	DefaultTargetAudience = "General consumers aged 25-45"
	DefaultTimeline       = "6-12 months MVP"
	DefaultBudgetRange    = "$50K - $100K"
)

// BudgetRanges lists the budget options offered to users.
var BudgetRanges = []string{
	"$10K - $50K",
	"$50K - $100K",
	"$100K - $500K",
	"$500K - $1M",
	"$1M+",
	"Bootstrapped",
	"Seeking Investment",
}

// WithDefaults fills empty optional fields.
func (r GenerationRequest) WithDefaults() GenerationRequest {
	if strings.TrimSpace(r.TargetAudience) == "" {
		r.TargetAudience = DefaultTargetAudience
	}
	if strings.TrimSpace(r.Timeline) == "" {
		r.Timeline = DefaultTimeline
	}
	if strings.TrimSpace(r.BudgetRange) == "" {
		r.BudgetRange = DefaultBudgetRange
	}
	return r
}

// SelectionSet maps advisor keys to whether the advisor should be consulted.
type SelectionSet map[string]bool

// Selected reports whether key is marked true.
func (s SelectionSet) Selected(key string) bool {
	return s[key]
}

// SelectAll marks every key true.
func SelectAll(keys []string) SelectionSet {
	s := make(SelectionSet, len(keys))
	for _, k := range keys {
		s[k] = true
	}
	return s
}

// SelectOnly marks the given keys true.
func SelectOnly(keys ...string) SelectionSet {
	return SelectAll(keys)
}

// AdvisorResult is the outcome of one advisor call. Text is either genuine
// analysis or fallback text; Succeeded tells them apart.
type AdvisorResult struct {
	Key       string `json:"key"`
	Text      string `json:"text"`
	Succeeded bool   `json:"succeeded"`
}

// GenerationResponse is the output of one aggregation and assembly cycle.
type GenerationResponse struct {
	DocumentText          string            `json:"documentText" yaml:"documentText"`
	DevelopmentPromptText string            `json:"developmentPromptText" yaml:"developmentPromptText"`
	PerAdvisorText        map[string]string `json:"perAdvisorText" yaml:"perAdvisorText"`
	FailedAdvisors        []string          `json:"failedAdvisors,omitempty" yaml:"failedAdvisors,omitempty"`
}

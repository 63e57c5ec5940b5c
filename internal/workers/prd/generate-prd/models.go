package generateprd

type Input struct {
	ProductIdea    string          `json:"productIdea"`
	TargetAudience string          `json:"targetAudience,omitempty"`
	Timeline       string          `json:"timeline,omitempty"`
	BudgetRange    string          `json:"budgetRange,omitempty"`
	Advisors       map[string]bool `json:"advisors,omitempty"`
}

type Output struct {
	SessionID                     string            `json:"prdSessionId"`
	DocumentText                  string            `json:"prdDocument"`
	DevelopmentPromptText         string            `json:"prdDevelopmentPrompt"`
	EnrichedDevelopmentPromptText string            `json:"prdEnrichedDevelopmentPrompt"`
	PerAdvisorText                map[string]string `json:"prdAdvisorAnalysis"`
	FailedAdvisors                []string          `json:"prdFailedAdvisors"`
}

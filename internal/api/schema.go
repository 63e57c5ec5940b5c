package api

import "prd-advisors/internal/common/validation"

const generateRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["productIdea"],
  "properties": {
    "productIdea":    {"type": "string", "maxLength": 10000},
    "targetAudience": {"type": "string", "maxLength": 1000},
    "timeline":       {"type": "string", "maxLength": 1000},
    "budgetRange":    {"type": "string", "maxLength": 200},
    "advisors": {
      "type": "object",
      "additionalProperties": {"type": "boolean"}
    }
  },
  "additionalProperties": false
}`

var generateSchema = validation.MustCompile(generateRequestSchema)

// GenerateRequest is the body of POST /api/prd.
type GenerateRequest struct {
	ProductIdea    string          `json:"productIdea"`
	TargetAudience string          `json:"targetAudience"`
	Timeline       string          `json:"timeline"`
	BudgetRange    string          `json:"budgetRange"`
	Advisors       map[string]bool `json:"advisors,omitempty"`
}

// GenerateResponse is returned by POST /api/prd.
type GenerateResponse struct {
	SessionID                     string            `json:"sessionId"`
	DocumentText                  string            `json:"documentText"`
	DevelopmentPromptText         string            `json:"developmentPromptText"`
	EnrichedDevelopmentPromptText string            `json:"enrichedDevelopmentPromptText"`
	PerAdvisorText                map[string]string `json:"perAdvisorText"`
	FailedAdvisors                []string          `json:"failedAdvisors,omitempty"`
}

type advisorView struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Expertise   string `json:"expertise"`
	Perspective string `json:"perspective"`
	Emoji       string `json:"emoji"`
}

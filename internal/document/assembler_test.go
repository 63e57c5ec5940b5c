package document

import (
	"strings"
	"testing"
	"time"

	"prd-advisors/internal/models"
	"prd-advisors/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var testDate = time.Date(2025, time.March, 7, 15, 4, 5, 0, time.UTC)

func createTestRequest() models.GenerationRequest {
	return models.GenerationRequest{
		ProductIdea:    "A pet photo sharing app",
		TargetAudience: "pet owners",
		Timeline:       "6 months",
		BudgetRange:    "$50K-$100K",
	}
}

func allResults() map[string]string {
	return map[string]string{
		registry.KeyElon:   "ELON-TEXT",
		registry.KeyWarren: "WARREN-TEXT",
		registry.KeyPeter:  "PETER-TEXT",
		registry.KeySteve:  "STEVE-TEXT",
	}
}

func panelSection(doc string) string {
	start := strings.Index(doc, "## Advisory Panel Analysis")
	end := strings.Index(doc, "## Synthesis & Recommendations")
	if start < 0 || end < start {
		return ""
	}
	return doc[start:end]
}

// ==========================
// Core Functionality Tests
// ==========================

func TestAssemble_TwoAdvisors(t *testing.T) {
	a := NewAssembler(registry.Default())
	selection := models.SelectionSet{"elon": true, "warren": false, "peter": false, "steve": true}
	results := map[string]string{"elon": "ELON-TEXT", "steve": "STEVE-TEXT"}

	docs, err := a.Assemble(createTestRequest(), results, selection, testDate)
	require.NoError(t, err)

	doc := docs.DocumentText
	assert.True(t, strings.HasPrefix(doc, "# Product Requirements Document (PRD)\n\n**Product:** A pet photo sharing app\n"))
	assert.Contains(t, doc, "**Target Audience:** pet owners\n")
	assert.Contains(t, doc, "**Timeline:** 6 months\n")
	assert.Contains(t, doc, "**Budget Range:** $50K-$100K\n")
	assert.Contains(t, doc, "**Date:** 2025-03-07\n")
	assert.Contains(t, doc, "**Advisory Panel:** Elon Musk and Steve Jobs (2 advisors)\n")
	assert.Contains(t, doc, "This PRD synthesizes insights from 2 legendary business perspectives to provide comprehensive product guidance.")
	assert.True(t, strings.HasSuffix(doc, "---\n*Generated by Gaia Multi-Agent System with 2 AI advisors*"))

	panel := panelSection(doc)
	assert.Contains(t, panel, "### 🚀 Innovation & Scaling Perspective (Elon Musk)\nELON-TEXT\n### 🎨 Design Excellence Perspective (Steve Jobs)\nSTEVE-TEXT")
	assert.NotContains(t, panel, "Warren Buffet")
	assert.NotContains(t, panel, "Peter Thiel")

	dev := docs.DevelopmentPromptText
	assert.True(t, strings.HasPrefix(dev, "# Development Prompt for A pet photo sharing app\n\n**Target Audience:** pet owners\n"))
	assert.Contains(t, dev, "Based on analysis from Elon Musk and Steve Jobs, build a production-ready web application")
	assert.Contains(t, dev, "1. Compelling landing page with clear value prop for pet owners")
	assert.Contains(t, dev, "Build something pet owners will love")
	assert.True(t, strings.HasSuffix(dev, "*Optimized for v0.dev, bolt.new, lovable.dev*\n*Advisory insights from: Elon Musk and Steve Jobs*"))
	assert.NotContains(t, dev, "ELON-TEXT")
}

func TestAssemble_Pluralization(t *testing.T) {
	a := NewAssembler(registry.Default())

	tests := []struct {
		name      string
		selection models.SelectionSet
		panel     string
		footer    string
		summary   string
	}{
		{
			name:      "single advisor",
			selection: models.SelectOnly("warren"),
			panel:     "**Advisory Panel:** Warren Buffet (1 advisor)\n",
			footer:    "with 1 AI advisor*",
			summary:   "from 1 legendary business perspective to",
		},
		{
			name:      "three advisors",
			selection: models.SelectOnly("steve", "elon", "peter"),
			panel:     "**Advisory Panel:** Elon Musk, Peter Thiel and Steve Jobs (3 advisors)\n",
			footer:    "with 3 AI advisors*",
			summary:   "from 3 legendary business perspectives to",
		},
		{
			name:      "all advisors",
			selection: models.SelectAll(registry.Default().Keys()),
			panel:     "**Advisory Panel:** Elon Musk, Warren Buffet, Peter Thiel and Steve Jobs (4 advisors)\n",
			footer:    "with 4 AI advisors*",
			summary:   "from 4 legendary business perspectives to",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := a.Assemble(createTestRequest(), allResults(), tt.selection, testDate)
			require.NoError(t, err)
			assert.Contains(t, docs.DocumentText, tt.panel)
			assert.True(t, strings.HasSuffix(docs.DocumentText, tt.footer))
			assert.Contains(t, docs.DocumentText, tt.summary)
		})
	}
}

func TestAssemble_CanonicalOrder(t *testing.T) {
	a := NewAssembler(registry.Default())
	selection := models.SelectionSet{"steve": true, "peter": true, "warren": true, "elon": true}

	docs, err := a.Assemble(createTestRequest(), allResults(), selection, testDate)
	require.NoError(t, err)

	panel := panelSection(docs.DocumentText)
	positions := []int{
		strings.Index(panel, "ELON-TEXT"),
		strings.Index(panel, "WARREN-TEXT"),
		strings.Index(panel, "PETER-TEXT"),
		strings.Index(panel, "STEVE-TEXT"),
	}
	for i, p := range positions {
		require.GreaterOrEqual(t, p, 0, "section %d missing", i)
		if i > 0 {
			assert.Greater(t, p, positions[i-1])
		}
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	a := NewAssembler(registry.Default())
	selection := models.SelectAll(registry.Default().Keys())

	first, err := a.Assemble(createTestRequest(), allResults(), selection, testDate)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		next, err := a.Assemble(createTestRequest(), allResults(), selection, testDate)
		require.NoError(t, err)
		assert.Equal(t, first.DocumentText, next.DocumentText)
		assert.Equal(t, first.DevelopmentPromptText, next.DevelopmentPromptText)
	}
}

func TestAssemble_NoResults(t *testing.T) {
	a := NewAssembler(registry.Default())

	docs, err := a.Assemble(createTestRequest(), map[string]string{}, models.SelectOnly("elon"), testDate)
	require.NoError(t, err)
	assert.Contains(t, panelSection(docs.DocumentText), "No advisory analysis available.")
	assert.Contains(t, docs.DocumentText, "Elon Musk (1 advisor)")
}

func TestAssemble_NoSelection(t *testing.T) {
	a := NewAssembler(registry.Default())

	docs, err := a.Assemble(createTestRequest(), allResults(), models.SelectionSet{}, testDate)
	require.NoError(t, err)
	assert.Contains(t, docs.DocumentText, "**Advisory Panel:** No advisors (0 advisors)")
	assert.Contains(t, docs.DocumentText, "No advisory analysis available.")
	assert.NotContains(t, docs.DocumentText, "ELON-TEXT")
}

func TestAssemble_TextVerbatim(t *testing.T) {
	a := NewAssembler(registry.Default())
	raw := "<b>bold</b> & {{.Request}} \"quoted\""

	docs, err := a.Assemble(createTestRequest(), map[string]string{"peter": raw}, models.SelectOnly("peter"), testDate)
	require.NoError(t, err)
	assert.Contains(t, docs.DocumentText, "(Peter Thiel)\n"+raw+"\n")
}

// ==========================
// Unit Tests
// ==========================

func TestAdvisorList(t *testing.T) {
	tests := []struct {
		names    []string
		expected string
	}{
		{nil, "No advisors"},
		{[]string{"A"}, "A"},
		{[]string{"A", "B"}, "A and B"},
		{[]string{"A", "B", "C"}, "A, B and C"},
		{[]string{"A", "B", "C", "D"}, "A, B, C and D"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, AdvisorList(tt.names))
		})
	}
}

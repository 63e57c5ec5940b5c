package advisor

import (
	"testing"

	"prd-advisors/pkg/registry"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	d := registry.AdvisorDescriptor{
		Key:         "steve",
		DisplayName: "Steve Jobs",
		Perspective: "Design excellence and user experience",
	}

	prompt := BuildPrompt(d, `An app for "quoted" ideas & émojis 🐶`)

	assert.Contains(t, prompt, "You are Steve Jobs analyzing a product idea.")
	assert.Contains(t, prompt, `Product Idea: "An app for "quoted" ideas & émojis 🐶"`)
	assert.Contains(t, prompt, "Your expertise: Design excellence and user experience")
	for _, section := range []string{
		"1. Key opportunities and challenges",
		"2. Strategic recommendations",
		"3. Important considerations",
		"4. Success factors",
	} {
		assert.Contains(t, prompt, section)
	}
	assert.Contains(t, prompt, "(300-400 words)")
	assert.Contains(t, prompt, "Respond in plain text, not JSON.")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	d := registry.Default().Advisors()[0]
	assert.Equal(t, BuildPrompt(d, "x"), BuildPrompt(d, "x"))
}

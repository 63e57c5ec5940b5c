package advisor

import (
	"fmt"
	"strings"

	"prd-advisors/pkg/registry"
)

// BuildPrompt renders the instruction sent to an advisor endpoint. The idea and
// perspective are embedded verbatim.
func BuildPrompt(d registry.AdvisorDescriptor, productIdea string) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("You are %s analyzing a product idea.", d.DisplayName))
	parts = append(parts, fmt.Sprintf("\nProduct Idea: \"%s\"", productIdea))
	parts = append(parts, fmt.Sprintf("\nYour expertise: %s", d.Perspective))

	parts = append(parts, "\nProvide analysis covering:")
	parts = append(parts, "1. Key opportunities and challenges")
	parts = append(parts, "2. Strategic recommendations")
	parts = append(parts, "3. Important considerations")
	parts = append(parts, "4. Success factors")

	parts = append(parts, "\nKeep response focused and actionable (300-400 words). Think from your unique perspective.")
	parts = append(parts, "\nRespond in plain text, not JSON.")

	return strings.Join(parts, "\n")
}

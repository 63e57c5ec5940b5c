package document

import (
	"fmt"
	"strings"

	"prd-advisors/internal/models"
	"prd-advisors/pkg/registry"
)

// ExcerptRunes is how much of each analysis is quoted in the enriched prompt.
const ExcerptRunes = 500

const (
	PrefixPRD       = "PRD"
	PrefixDevPrompt = "DevPrompt"
)

type insight struct {
	Emoji       string
	Label       string
	DisplayName string
	Excerpt     string
}

// EnrichDevelopmentPrompt appends a truncated excerpt of every selected advisor's
// analysis to devPrompt, followed by the implementation priority list. Advisors
// with empty text are skipped.
func EnrichDevelopmentPrompt(devPrompt string, perAdvisorText map[string]string, selection models.SelectionSet, reg *registry.Registry) (string, error) {
	var insights []insight
	for _, d := range reg.Advisors() {
		if !selection.Selected(d.Key) {
			continue
		}
		text := perAdvisorText[d.Key]
		if text == "" {
			continue
		}
		insights = append(insights, insight{
			Emoji:       d.Emoji,
			Label:       d.InsightLabel,
			DisplayName: d.DisplayName,
			Excerpt:     truncateRunes(text, ExcerptRunes),
		})
	}

	out, err := render(enrichmentTmpl, struct {
		DevPrompt string
		Insights  []insight
	}{devPrompt, insights})
	if err != nil {
		return "", fmt.Errorf("render enriched development prompt: %w", err)
	}
	return out, nil
}

// DownloadFileName names a markdown download after the product idea, e.g.
// "PRD_A_pet_photo_sharing_app.md".
func DownloadFileName(prefix, productIdea string) string {
	name := truncateRunes(strings.ReplaceAll(productIdea, " ", "_"), 30)
	return fmt.Sprintf("%s_%s.md", prefix, name)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

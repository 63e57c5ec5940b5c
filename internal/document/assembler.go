package document

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"prd-advisors/internal/models"
	"prd-advisors/pkg/registry"
)

// DateLayout is the format of the generation date stamped on documents.
const DateLayout = "2006-01-02"

// Documents holds the two rendered outputs of one assembly.
type Documents struct {
	DocumentText          string
	DevelopmentPromptText string
}

type templateData struct {
	Request     models.GenerationRequest
	Date        string
	AdvisorList string
	Count       int
	Sections    string
}

// Assembler renders documents from aggregated advisor text. It walks advisors in
// registry order, so the iteration order of results and selection never matters.
type Assembler struct {
	registry *registry.Registry
}

func NewAssembler(reg *registry.Registry) *Assembler {
	return &Assembler{registry: reg}
}

// Assemble renders the requirements document and the development prompt. date is
// the only time-dependent input.
func (a *Assembler) Assemble(req models.GenerationRequest, results map[string]string, selection models.SelectionSet, date time.Time) (*Documents, error) {
	selected := a.selectedAdvisors(selection)

	names := make([]string, 0, len(selected))
	sections := make([]string, 0, len(selected))
	for _, d := range selected {
		names = append(names, d.DisplayName)
		text, ok := results[d.Key]
		if !ok {
			continue
		}
		sections = append(sections, fmt.Sprintf("### %s %s (%s)\n%s", d.Emoji, d.SectionLabel, d.DisplayName, text))
	}

	data := templateData{
		Request:     req,
		Date:        date.Format(DateLayout),
		AdvisorList: AdvisorList(names),
		Count:       len(selected),
		Sections:    noAnalysisPlaceholder,
	}
	if len(sections) > 0 {
		data.Sections = strings.Join(sections, "\n")
	}

	prd, err := render(prdTmpl, data)
	if err != nil {
		return nil, fmt.Errorf("render requirements document: %w", err)
	}
	devPrompt, err := render(devPromptTmpl, data)
	if err != nil {
		return nil, fmt.Errorf("render development prompt: %w", err)
	}

	return &Documents{DocumentText: prd, DevelopmentPromptText: devPrompt}, nil
}

func (a *Assembler) selectedAdvisors(selection models.SelectionSet) []registry.AdvisorDescriptor {
	var out []registry.AdvisorDescriptor
	for _, d := range a.registry.Advisors() {
		if selection.Selected(d.Key) {
			out = append(out, d)
		}
	}
	return out
}

// AdvisorList joins display names for prose: "A", "A and B", "A, B and C".
func AdvisorList(names []string) string {
	switch len(names) {
	case 0:
		return "No advisors"
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

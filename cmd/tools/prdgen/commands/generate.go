package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"prd-advisors/internal/advisor"
	"prd-advisors/internal/aggregator"
	"prd-advisors/internal/common/config"
	"prd-advisors/internal/common/logger"
	"prd-advisors/internal/document"
	"prd-advisors/internal/models"
	"prd-advisors/internal/service"
	"prd-advisors/pkg/registry"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

type generateOptions struct {
	idea         string
	audience     string
	timeline     string
	budget       string
	advisors     []string
	registryPath string
	configPath   string
	timeout      time.Duration
	outDir       string
	format       string
	logLevel     string
}

// generateResult is the serialized form for json and yaml output.
type generateResult struct {
	Request                       models.GenerationRequest `json:"request" yaml:"request"`
	Advisors                      []string                 `json:"advisors" yaml:"advisors"`
	DocumentText                  string                   `json:"documentText" yaml:"documentText"`
	DevelopmentPromptText         string                   `json:"developmentPromptText" yaml:"developmentPromptText"`
	EnrichedDevelopmentPromptText string                   `json:"enrichedDevelopmentPromptText" yaml:"enrichedDevelopmentPromptText"`
	PerAdvisorText                map[string]string        `json:"perAdvisorText" yaml:"perAdvisorText"`
	FailedAdvisors                []string                 `json:"failedAdvisors,omitempty" yaml:"failedAdvisors,omitempty"`
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a PRD and development prompt for a product idea",
		Long: `Consult the selected advisors concurrently and assemble the documents.

Output Formats:
  markdown - PRD_<idea>.md and DevPrompt_<idea>.md (stdout shows the PRD when --out is empty)
  json     - one JSON document with both texts and every analysis
  yaml     - the same document as YAML

Examples:
  # Ask the whole panel
  prdgen generate --idea "A pet photo sharing app"

  # Ask two advisors and write markdown files
  prdgen generate --idea "A pet photo sharing app" --advisors elon,steve --out ./docs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.idea, "idea", "", "Product idea (required)")
	f.StringVar(&opts.audience, "audience", models.DefaultTargetAudience, "Target audience")
	f.StringVar(&opts.timeline, "timeline", models.DefaultTimeline, "Timeline")
	f.StringVar(&opts.budget, "budget", models.DefaultBudgetRange, "Budget range")
	f.StringSliceVar(&opts.advisors, "advisors", nil, "Advisor keys to consult (all when empty)")
	f.StringVar(&opts.registryPath, "registry", "", "Advisor registry file (built-in panel when empty)")
	f.StringVar(&opts.configPath, "config", "", "Config file for advisor call settings")
	f.DurationVar(&opts.timeout, "timeout", 0, "Per-advisor call timeout (overrides config)")
	f.StringVarP(&opts.outDir, "out", "o", "", "Directory for output files (stdout when empty)")
	f.StringVarP(&opts.format, "format", "f", formatMarkdown, "Output format: markdown, json or yaml")
	f.StringVar(&opts.logLevel, "log-level", "warn", "Log level")
	_ = cmd.MarkFlagRequired("idea")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	switch opts.format {
	case formatMarkdown, formatJSON, formatYAML:
	default:
		return fail(cmd, "Unknown output format", fmt.Errorf("format %q", opts.format), "Use one of: markdown, json, yaml")
	}

	reg, err := registry.FromFile(opts.registryPath)
	if err != nil {
		return fail(cmd, "Advisor registry is invalid", err, "")
	}

	advisorCfg := advisor.DefaultConfig()
	if opts.configPath != "" {
		cfg, err := config.LoadFromFile(opts.configPath)
		if err != nil {
			return fail(cmd, "Failed to load config", err, "")
		}
		advisorCfg = advisor.LoadConfig(cfg.Advisors)
	}
	if opts.timeout > 0 {
		advisorCfg.Timeout = opts.timeout
	}

	log := logger.NewZapAdapter(logger.New(opts.logLevel, "console"))
	client := advisor.NewClient(advisorCfg, log, nil)
	gen := service.NewGenerator(aggregator.New(nil, reg, client, log, nil), nil, log)

	selection := models.SelectAll(reg.Keys())
	if len(opts.advisors) > 0 {
		selection = models.SelectOnly(opts.advisors...)
	}

	req := models.GenerationRequest{
		ProductIdea:    opts.idea,
		TargetAudience: opts.audience,
		Timeline:       opts.timeline,
		BudgetRange:    opts.budget,
	}

	cyan.Fprintf(cmd.ErrOrStderr(), "Consulting %d advisor(s) (this may take 1-2 minutes)...\n", countSelected(selection, reg))

	sess, err := gen.Generate(cmd.Context(), req, selection)
	if err != nil {
		return fail(cmd, "Generation failed", err, "Select at least one advisor with --advisors, e.g. --advisors "+strings.Join(reg.Keys(), ","))
	}

	for _, key := range sess.Response.FailedAdvisors {
		yellow.Fprintf(cmd.ErrOrStderr(), "⚠️  %s did not answer; fallback text used\n", key)
	}

	files, err := writeOutputs(cmd.OutOrStdout(), opts.outDir, opts.format, sess)
	if err != nil {
		return fail(cmd, "Failed to write output", err, "")
	}
	for _, f := range files {
		green.Fprintf(cmd.ErrOrStderr(), "✓ wrote %s\n", f)
	}
	return nil
}

func countSelected(selection models.SelectionSet, reg *registry.Registry) int {
	n := 0
	for _, k := range reg.Keys() {
		if selection.Selected(k) {
			n++
		}
	}
	return n
}

// writeOutputs renders sess in format. With an empty dir the main document goes
// to stdout and no files are written.
func writeOutputs(stdout io.Writer, dir, format string, sess *models.Session) ([]string, error) {
	var files map[string]string

	switch format {
	case formatMarkdown:
		if dir == "" {
			_, err := io.WriteString(stdout, sess.Response.DocumentText+"\n")
			return nil, err
		}
		files = map[string]string{
			document.DownloadFileName(document.PrefixPRD, sess.Request.ProductIdea):       sess.Response.DocumentText,
			document.DownloadFileName(document.PrefixDevPrompt, sess.Request.ProductIdea): sess.EnrichedDevPromptText,
		}
	case formatJSON, formatYAML:
		data, err := encodeResult(format, sess)
		if err != nil {
			return nil, err
		}
		if dir == "" {
			_, err := stdout.Write(data)
			return nil, err
		}
		base := strings.TrimSuffix(document.DownloadFileName(document.PrefixPRD, sess.Request.ProductIdea), ".md")
		files = map[string]string{base + "." + format: string(data)}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var written []string
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func encodeResult(format string, sess *models.Session) ([]byte, error) {
	var advisors []string
	for k, on := range sess.Selection {
		if _, known := sess.Response.PerAdvisorText[k]; on && known {
			advisors = append(advisors, k)
		}
	}
	sort.Strings(advisors)

	res := generateResult{
		Request:                       sess.Request,
		Advisors:                      advisors,
		DocumentText:                  sess.Response.DocumentText,
		DevelopmentPromptText:         sess.Response.DevelopmentPromptText,
		EnrichedDevelopmentPromptText: sess.EnrichedDevPromptText,
		PerAdvisorText:                sess.Response.PerAdvisorText,
		FailedAdvisors:                sess.Response.FailedAdvisors,
	}

	if format == formatYAML {
		return yaml.Marshal(res)
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

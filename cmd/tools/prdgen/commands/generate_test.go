package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prd-advisors/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// ==========================
// Test Helper Functions
// ==========================

const testIdea = "A pet photo sharing app"

// writeTestRegistry points two advisors at a local server. The "down" advisor
// always answers 502.
func writeTestRegistry(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/down") {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"content":"analysis from %s"}}]}`, strings.TrimPrefix(r.URL.Path, "/"))
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "advisors.json")
	err := registry.SaveRegistry(path, &registry.AdvisorRegistry{
		Version: "1.0.0",
		Advisors: []registry.AdvisorDescriptor{
			{Key: "up", DisplayName: "Up Advisor", EndpointURL: srv.URL + "/up", Perspective: "Always answers", Emoji: "🟢", SectionLabel: "Upside"},
			{Key: "down", DisplayName: "Down Advisor", EndpointURL: srv.URL + "/down", Perspective: "Never answers", Emoji: "🔴", SectionLabel: "Downside"},
		},
	})
	require.NoError(t, err)
	return path
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// ==========================
// Generate Command Tests
// ==========================

func TestGenerate_MarkdownToStdout(t *testing.T) {
	reg := writeTestRegistry(t)

	stdout, stderr, err := runCLI(t, "generate", "--idea", testIdea, "--registry", reg, "--timeout", "2s")
	require.NoError(t, err)

	assert.Contains(t, stdout, "# Product Requirements Document (PRD)")
	assert.Contains(t, stdout, "**Product:** "+testIdea)
	assert.Contains(t, stdout, "analysis from up")
	assert.Contains(t, stdout, "Analysis from Down Advisor: Due to technical issues")
	assert.Contains(t, stderr, "Consulting 2 advisor(s)")
	assert.Contains(t, stderr, "down did not answer")
}

func TestGenerate_MarkdownFiles(t *testing.T) {
	reg := writeTestRegistry(t)
	out := filepath.Join(t.TempDir(), "docs")

	_, stderr, err := runCLI(t, "generate", "--idea", testIdea, "--registry", reg, "--advisors", "up", "--out", out)
	require.NoError(t, err)

	prd, err := os.ReadFile(filepath.Join(out, "PRD_A_pet_photo_sharing_app.md"))
	require.NoError(t, err)
	assert.Contains(t, string(prd), "analysis from up")
	assert.NotContains(t, string(prd), "Down Advisor")

	dev, err := os.ReadFile(filepath.Join(out, "DevPrompt_A_pet_photo_sharing_app.md"))
	require.NoError(t, err)
	assert.Contains(t, string(dev), "analysis from up")

	assert.Contains(t, stderr, "Consulting 1 advisor(s)")
	assert.Contains(t, stderr, "wrote")
	assert.NotContains(t, stderr, "did not answer")
}

func TestGenerate_JSONAndYAML(t *testing.T) {
	reg := writeTestRegistry(t)

	t.Run("json", func(t *testing.T) {
		stdout, _, err := runCLI(t, "generate", "--idea", testIdea, "--registry", reg, "--format", "json")
		require.NoError(t, err)

		var res generateResult
		require.NoError(t, json.Unmarshal([]byte(stdout), &res))
		assert.Equal(t, testIdea, res.Request.ProductIdea)
		assert.Equal(t, []string{"down", "up"}, res.Advisors)
		assert.Equal(t, []string{"down"}, res.FailedAdvisors)
		assert.Equal(t, "analysis from up", res.PerAdvisorText["up"])
		assert.NotEmpty(t, res.EnrichedDevelopmentPromptText)
	})

	t.Run("yaml file", func(t *testing.T) {
		out := t.TempDir()
		_, _, err := runCLI(t, "generate", "--idea", testIdea, "--registry", reg, "--format", "yaml", "--out", out)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(out, "PRD_A_pet_photo_sharing_app.yaml"))
		require.NoError(t, err)

		var res generateResult
		require.NoError(t, yaml.Unmarshal(data, &res))
		assert.Equal(t, testIdea, res.Request.ProductIdea)
		assert.Contains(t, res.DocumentText, "Product Requirements Document")
	})
}

func TestGenerate_Errors(t *testing.T) {
	reg := writeTestRegistry(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing idea",
			args:    []string{"generate", "--registry", reg},
			wantErr: "idea",
		},
		{
			name:    "unknown format",
			args:    []string{"generate", "--idea", testIdea, "--registry", reg, "--format", "pdf"},
			wantErr: "Unknown output format",
		},
		{
			name:    "unknown advisors only",
			args:    []string{"generate", "--idea", testIdea, "--registry", reg, "--advisors", "nobody"},
			wantErr: "Generation failed",
		},
		{
			name:    "missing registry file",
			args:    []string{"generate", "--idea", testIdea, "--registry", filepath.Join(t.TempDir(), "none.json")},
			wantErr: "Advisor registry is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ==========================
// Advisors Command Tests
// ==========================

func TestAdvisors_ListsBuiltInPanel(t *testing.T) {
	stdout, _, err := runCLI(t, "advisors")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], registry.KeyElon))
	assert.Contains(t, lines[1], "Warren Buffet")
	assert.Contains(t, lines[3], "Steve Jobs")
}

func TestAdvisors_CustomRegistry(t *testing.T) {
	stdout, _, err := runCLI(t, "advisors", "--registry", writeTestRegistry(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Up Advisor")
	assert.Contains(t, stdout, "Down Advisor")
}

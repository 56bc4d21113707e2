package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/llm/llmtest"
)

const requirementsReply = "```json\n" + `{
  "company": "Acme Corp",
  "role": "Backend Engineer",
  "key_requirements": ["3+ years of Go"],
  "technical_skills": ["Go", "Kubernetes", "Docker", "PostgreSQL"],
  "soft_skills": [],
  "keywords_for_ats": ["Go", "Kubernetes"],
  "main_responsibilities": ["Build payment services"],
  "nice_to_have": []
}` + "\n```"

// executeCommand runs the CLI in-process with a scripted LLM
func executeCommand(t *testing.T, client llm.Client, args ...string) (string, error) {
	t.Helper()

	origClient, origLogger := newLLMClient, newLogger
	t.Cleanup(func() { newLLMClient, newLogger = origClient, origLogger })
	newLLMClient = func(context.Context, config.Config) (llm.Client, error) { return client, nil }
	newLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func tailoredReply(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile("testdata/profile.yaml")
	require.NoError(t, err)
	tailored := strings.Replace(string(content), "Engineer who enjoys building analytical engines.",
		"Backend engineer shipping Go services on Kubernetes.", 1)
	return "```yaml\n" + tailored + "```"
}

func TestRunCommand_HTML(t *testing.T) {
	outDir := t.TempDir()
	client := llmtest.New(requirementsReply, tailoredReply(t))

	output, err := executeCommand(t, client, "run",
		"--job-url", "testdata/posting.txt",
		"--profile", "testdata/profile.yaml",
		"--style", "modern",
		"--format", "html",
		"--output-dir", outDir,
	)
	require.NoError(t, err, output)

	assert.Contains(t, output, "Step 1/6: Loading base profile...")
	assert.Contains(t, output, "Step 6/6: Exporting file...")
	assert.Contains(t, output, "Tailored résumé written to")
	assert.True(t, client.Closed())

	matches, err := filepath.Glob(filepath.Join(outDir, "Acme_Corp_Backend_Engineer_*.html"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "Backend engineer shipping Go services on Kubernetes.")
}

func TestRunCommand_Verbose(t *testing.T) {
	client := llmtest.New(requirementsReply, tailoredReply(t))

	output, err := executeCommand(t, client, "run",
		"--job-url", "testdata/posting.txt",
		"--profile", "testdata/profile.yaml",
		"--format", "html",
		"--output-dir", t.TempDir(),
		"--verbose",
	)
	require.NoError(t, err, output)

	assert.Contains(t, output, "EXTRACTED REQUIREMENTS")
	assert.Contains(t, output, "TAILORING CHANGES")
	assert.Contains(t, output, "RUN SUCCEEDED")
}

func TestRunCommand_StepFailure(t *testing.T) {
	client := llmtest.New(`{"company": "Acme Corp"}`)

	output, err := executeCommand(t, client, "run",
		"--job-url", "testdata/posting.txt",
		"--profile", "testdata/profile.yaml",
		"--format", "html",
		"--output-dir", t.TempDir(),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requirements-extract")
	assert.Contains(t, output, "Step 3/6: Extracting requirements...")
	assert.NotContains(t, output, "Step 4/6")
}

func TestRunCommand_UnknownStyle(t *testing.T) {
	client := llmtest.New(requirementsReply, tailoredReply(t))

	_, err := executeCommand(t, client, "run",
		"--job-url", "testdata/posting.txt",
		"--profile", "testdata/profile.yaml",
		"--style", "nonexistent",
		"--format", "html",
		"--output-dir", t.TempDir(),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document-render")
	assert.Contains(t, err.Error(), "style not found")
}

func TestRunCommand_FlagValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{"missing job url", []string{"run"}, "--job-url must be provided"},
		{"bad format", []string{"run", "--job-url", "x", "--format", "docx"}, "'format' must be one of"},
		{"bad provider", []string{"run", "--job-url", "x", "--provider", "openai"}, "'provider' must be one of"},
		{"missing config", []string{"run", "--config", "/nonexistent/config.json"}, "failed to load config"},
		{"unexpected argument", []string{"run", "extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := llmtest.New()
			_, err := executeCommand(t, client, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
			assert.Zero(t, client.Calls())
		})
	}
}

func TestResolve_ConfigFileAndFlags(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"job_url": "https://example.com/job", "style": "classic", "use_browser": true, "provider": "anthropic"}`), 0o644))

	var opts commonFlags
	cmd := &cobra.Command{Use: "test"}
	opts.bind(cmd, "job-url", "style", "format", "provider", "use-browser")
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--style", "modern"}))

	cfg, err := opts.resolve(cmd)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.Equal(t, "modern", cfg.Style)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, config.DefaultFormat, cfg.Format)
	assert.Equal(t, config.DefaultProfile, cfg.Profile)
	assert.Equal(t, config.DefaultOutputDir, cfg.OutputDir)
}

func TestParseJobCommand(t *testing.T) {
	client := llmtest.New(requirementsReply)

	output, err := executeCommand(t, client, "parse-job", "--job-url", "testdata/posting.txt")
	require.NoError(t, err, output)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, "Backend Engineer", got["role"])
	assert.Equal(t, "Acme Corp", got["company"])
	assert.Contains(t, got["raw_description"], "build payment services")

	reqs := client.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].JSON)
}

func TestParseJobCommand_OutFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "requirements.json")

	output, err := executeCommand(t, llmtest.New(requirementsReply), "parse-job", "--job-url", "testdata/posting.txt", "--out", outFile)
	require.NoError(t, err)
	assert.Contains(t, output, "Requirements written to")
	assert.FileExists(t, outFile)
}

func TestParseJobCommand_EmptyPosting(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n\n"), 0o644))
	client := llmtest.New(requirementsReply)

	_, err := executeCommand(t, client, "parse-job", "--job-url", empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job posting is empty")
	assert.Zero(t, client.Calls())
}

func TestRenderCommand(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "resume.html")

	output, err := executeCommand(t, llmtest.New(), "render",
		"--profile", "testdata/profile.yaml",
		"--style", "classic",
		"--format", "html",
		"--out", outFile,
	)
	require.NoError(t, err)
	assert.Contains(t, output, "Résumé written to")

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Ada Lovelace")
	assert.Contains(t, string(content), "style-classic")
}

func TestRenderCommand_GeneratedPath(t *testing.T) {
	outDir := t.TempDir()

	_, err := executeCommand(t, llmtest.New(), "render", "--profile", "testdata/profile.yaml", "--format", "html", "--output-dir", outDir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(outDir, "Ada_Lovelace_profile_*.html"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRenderCommand_Errors(t *testing.T) {
	_, err := executeCommand(t, llmtest.New(), "render", "--profile", "testdata/profile.yaml", "--style", "nonexistent", "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "style not found")

	_, err = executeCommand(t, llmtest.New(), "render", "--profile", "testdata/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = executeCommand(t, llmtest.New(), "render", "--profile", "testdata/profile.yaml", "--format", "html", "--out", filepath.Join(t.TempDir(), "resume.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out must end in .html")
}

func TestStylesCommand(t *testing.T) {
	output, err := executeCommand(t, llmtest.New(), "styles")
	require.NoError(t, err)
	assert.Equal(t, "  classic\n* default\n  modern\n  reversed\n", output)
}

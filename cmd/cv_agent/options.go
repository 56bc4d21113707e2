package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/export"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/pipeline"
)

// commonFlags are the flags shared by the commands that build a configuration
type commonFlags struct {
	configPath string
	flags      config.Config
}

// bind registers the flags named in fields on cmd
func (c *commonFlags) bind(cmd *cobra.Command, fields ...string) {
	f := cmd.Flags()
	f.StringVar(&c.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	f.BoolVarP(&c.flags.Verbose, "verbose", "v", false, "Print detailed debug information")

	for _, name := range fields {
		switch name {
		case "job-url":
			f.StringVar(&c.flags.JobURL, name, "", "URL or local file of the job posting")
		case "profile":
			f.StringVarP(&c.flags.Profile, name, "p", "", "Path to the base profile YAML (default "+config.DefaultProfile+")")
		case "style":
			f.StringVarP(&c.flags.Style, name, "s", "", "Résumé style (default "+config.DefaultStyle+")")
		case "output-dir":
			f.StringVarP(&c.flags.OutputDir, name, "o", "", "Directory for generated résumés (default "+config.DefaultOutputDir+")")
		case "format":
			f.StringVarP(&c.flags.Format, name, "f", "", "Output format: pdf or html (default "+config.DefaultFormat+")")
		case "styles-dir":
			f.StringVar(&c.flags.StylesDir, name, "", "Directory with custom .css styles and an optional resume.html.tmpl")
		case "provider":
			f.StringVar(&c.flags.Provider, name, "", "LLM provider: gemini or anthropic (default "+config.DefaultProvider+")")
		case "model":
			f.StringVar(&c.flags.Model, name, "", "Model to use for every LLM call")
		case "api-key":
			f.StringVar(&c.flags.APIKey, name, "", "API key (defaults to GEMINI_API_KEY or ANTHROPIC_API_KEY)")
		case "use-browser":
			f.BoolVar(&c.flags.UseBrowser, name, false, "Use headless browser for SPA sites (requires Chrome)")
		case "step-timeout":
			f.IntVar(&c.flags.StepTimeoutSeconds, name, 0, "Timeout per pipeline step in seconds (0 disables)")
		case "idle-timeout":
			f.IntVar(&c.flags.IdleTimeoutSeconds, name, 0, "Seconds to wait for network idle before printing the PDF")
		default:
			panic("unknown flag " + name)
		}
	}
}

// resolve loads the config file, applies explicitly set flags over it and fills defaults
func (c *commonFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if c.configPath != "" {
		loaded, err := config.LoadConfig(c.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	changed := cmd.Flags().Changed
	override := func(flag string, dst *string, v string) {
		if changed(flag) {
			*dst = v
		}
	}
	override("job-url", &cfg.JobURL, c.flags.JobURL)
	override("profile", &cfg.Profile, c.flags.Profile)
	override("style", &cfg.Style, c.flags.Style)
	override("output-dir", &cfg.OutputDir, c.flags.OutputDir)
	override("format", &cfg.Format, c.flags.Format)
	override("styles-dir", &cfg.StylesDir, c.flags.StylesDir)
	override("provider", &cfg.Provider, c.flags.Provider)
	override("model", &cfg.Model, c.flags.Model)
	override("api-key", &cfg.APIKey, c.flags.APIKey)
	if changed("use-browser") {
		cfg.UseBrowser = c.flags.UseBrowser
	}
	if changed("verbose") {
		cfg.Verbose = c.flags.Verbose
	}
	if changed("step-timeout") {
		cfg.StepTimeoutSeconds = c.flags.StepTimeoutSeconds
	}
	if changed("idle-timeout") {
		cfg.IdleTimeoutSeconds = c.flags.IdleTimeoutSeconds
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLLMClient builds the provider client; tests replace it
var newLLMClient = func(ctx context.Context, cfg config.Config) (llm.Client, error) {
	apiKey, err := cfg.ResolveAPIKey()
	if err != nil {
		return nil, err
	}
	llmConfig, err := llm.ConfigForProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}
	if cfg.Model != "" {
		llmConfig = llmConfig.WithAllModels(cfg.Model)
	}
	return llm.NewClient(ctx, llmConfig, apiKey)
}

// newExporter returns the exporter for the configured format
func newExporter(cfg config.Config, logger *zap.Logger) pipeline.FileExporter {
	if cfg.Format == "html" {
		return export.HTMLExporter{}
	}
	return export.NewPDFExporter(cfg.IdleTimeout(), logger)
}

// newLogger is the CLI's logger constructor
var newLogger = observability.NewLogger

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cv-tailor/internal/ingestion"
	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/parsing"
	"github.com/jonathan/cv-tailor/internal/pipeline"
	"github.com/jonathan/cv-tailor/internal/profile"
	"github.com/jonathan/cv-tailor/internal/rendering"
	"github.com/jonathan/cv-tailor/internal/rewriting"
)

var stepLabels = map[pipeline.StepName]string{
	pipeline.StepProfileLoad:         "Loading base profile",
	pipeline.StepPostingFetch:        "Fetching job posting",
	pipeline.StepRequirementsExtract: "Extracting requirements",
	pipeline.StepContentTailor:       "Tailoring résumé content",
	pipeline.StepDocumentRender:      "Rendering document",
	pipeline.StepFileExport:          "Exporting file",
}

func newRunCmd() *cobra.Command {
	var opts commonFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full résumé tailoring pipeline end-to-end",
		Long: `Orchestrates the entire tailoring process: load profile -> fetch posting -> extract requirements -> tailor -> render -> export.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
		Example: `  cv_agent run --job-url https://boards.greenhouse.io/acme/jobs/123
  cv_agent run --job-url posting.txt --style modern --format html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, &opts)
		},
	}
	opts.bind(cmd, "job-url", "profile", "style", "output-dir", "format", "styles-dir",
		"provider", "model", "api-key", "use-browser", "step-timeout", "idle-timeout")
	return cmd
}

func runPipeline(cmd *cobra.Command, opts *commonFlags) error {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	if cfg.JobURL == "" {
		return errors.New("--job-url must be provided (via flag or config)")
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	out := cmd.OutOrStdout()
	fetcher := ingestion.NewFetcher(cfg.UseBrowser, logger)
	tailor := rewriting.NewTailor(client, logger)
	if cfg.ForbiddenPhrases != nil {
		tailor.ForbiddenPhrases = cfg.ForbiddenPhrases
	}
	orchestrator, err := pipeline.New(pipeline.Dependencies{
		Profiles:    profile.Loader{},
		Fetcher:     fetcher,
		Extractor:   parsing.NewExtractor(client),
		Tailor:      tailor,
		Renderer:    rendering.NewRenderer(cfg.StylesDir),
		Exporter:    newExporter(cfg, logger),
		Logger:      logger,
		OutputDir:   cfg.OutputDir,
		StepTimeout: cfg.StepTimeout(),
		OnProgress:  progressPrinter(out),
	})
	if err != nil {
		return err
	}

	start := time.Now()
	rc := orchestrator.Execute(ctx, pipeline.Input{
		JobURL:      cfg.JobURL,
		ProfilePath: cfg.Profile,
		Style:       cfg.Style,
	})

	if cfg.Verbose {
		printVerbose(out, rc, time.Since(start))
	}
	if rc.Failed() {
		if rc.Err.Panicked() {
			logger.Debug("step panic", zap.String("stack", rc.Err.Detail))
		}
		return rc.Err
	}

	_, _ = fmt.Fprintf(out, "\n✅ Tailored résumé written to %s\n", rc.OutputPath)
	return nil
}

// progressPrinter prints a "Step n/N" line as each step starts
func progressPrinter(out io.Writer) pipeline.ProgressCallback {
	return func(e pipeline.ProgressEvent) {
		switch e.Status {
		case pipeline.StatusStarted:
			_, _ = fmt.Fprintf(out, "Step %d/%d: %s...\n", e.Index, e.Total, stepLabels[e.Step])
		case pipeline.StatusFailed:
			_, _ = fmt.Fprintf(out, "  ✗ %s failed: %s\n", e.Step, e.Message)
		}
	}
}

func printVerbose(out io.Writer, rc *pipeline.RunContext, elapsed time.Duration) {
	printer := observability.NewPrinter(out)
	printer.PrintRequirements(rc.Requirements)
	if rc.RawProfile != nil && rc.TailoredProfile != nil {
		var keywords []string
		if rc.Requirements != nil {
			keywords = rc.Requirements.AllKeywords()
		}
		printer.PrintProfileDiff(
			profile.Diff(rc.RawProfile, rc.TailoredProfile),
			rewriting.KeywordCoverage(rc.TailoredProfile, keywords),
		)
	}

	summary := observability.RunSummary{
		RunID:    rc.RunID.String(),
		Output:   rc.OutputPath,
		Duration: elapsed,
	}
	if rc.Failed() {
		summary.FailedStep = string(rc.Err.Step)
		summary.Error = rc.Err.Message
	}
	printer.PrintRunSummary(summary)
}

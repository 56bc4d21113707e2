package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/ingestion"
	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/parsing"
)

func newParseJobCmd() *cobra.Command {
	var (
		opts    commonFlags
		outFile string
	)
	cmd := &cobra.Command{
		Use:   "parse-job",
		Short: "Fetch a job posting and extract its requirements as JSON",
		Long:  "Fetch a job posting from a URL or local file and print the structured requirements extracted by the LLM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			posting, err := ingestion.NewFetcher(cfg.UseBrowser, logger).Ingest(ctx, cfg.JobURL)
			if err != nil {
				return fmt.Errorf("failed to fetch job posting: %w", err)
			}

			client, err := newLLMClient(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to create LLM client: %w", err)
			}
			defer func() { _ = client.Close() }()

			req, err := parsing.NewExtractor(client).Extract(ctx, posting.Text, cfg.JobURL)
			if err != nil {
				return fmt.Errorf("failed to extract requirements: %w", err)
			}

			if cfg.Verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintRequirements(req)
			}

			data, err := json.MarshalIndent(req, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal requirements: %w", err)
			}
			data = append(data, '\n')

			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Requirements written to %s\n", outFile)
			return nil
		},
	}
	opts.bind(cmd, "job-url", "provider", "model", "api-key", "use-browser")
	cmd.Flags().StringVar(&outFile, "out", "", "Write the requirements JSON to this file instead of stdout")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/export"
	"github.com/jonathan/cv-tailor/internal/profile"
	"github.com/jonathan/cv-tailor/internal/rendering"
)

func newRenderCmd() *cobra.Command {
	var (
		opts    commonFlags
		outFile string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a profile without tailoring it",
		Long:  "Render and export a profile YAML in the chosen style. No job posting is fetched and no LLM is called.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.Verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			p, err := profile.Load(cfg.Profile)
			if err != nil {
				return err
			}

			html, err := rendering.NewRenderer(cfg.StylesDir).Render(p, cfg.Style)
			if err != nil {
				return err
			}

			exporter := newExporter(cfg, logger)
			path := outFile
			if path == "" {
				base := strings.TrimSuffix(filepath.Base(cfg.Profile), filepath.Ext(cfg.Profile))
				path, err = export.BuildPath(cfg.OutputDir, p.Candidate.Name, base, time.Now(), exporter.Extension())
				if err != nil {
					return err
				}
			} else if filepath.Ext(path) != exporter.Extension() {
				return errors.New("--out must end in " + exporter.Extension() + " for format " + cfg.Format)
			}

			if err := exporter.Export(cmd.Context(), html, path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Résumé written to %s\n", path)
			return nil
		},
	}
	opts.bind(cmd, "profile", "style", "output-dir", "format", "styles-dir", "idle-timeout")
	cmd.Flags().StringVar(&outFile, "out", "", "Output file (default: generated in --output-dir)")
	return cmd
}

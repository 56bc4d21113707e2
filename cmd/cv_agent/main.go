// Package main provides the cv_agent command line tool, which tailors a résumé to a job posting.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cv_agent",
		Short: "Tailor a résumé to a job posting",
		Long: `cv_agent reads a base profile, fetches a job posting, extracts its requirements with an LLM,
rewrites the profile toward the role and exports a styled PDF or HTML résumé.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newParseJobCmd(), newRenderCmd(), newStylesCmd())
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

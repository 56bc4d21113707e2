package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/rendering"
)

func newStylesCmd() *cobra.Command {
	var stylesDir string
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List available résumé styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			styles, err := rendering.NewRenderer(stylesDir).ListStyles()
			if err != nil {
				return err
			}
			for _, name := range styles {
				marker := " "
				if name == rendering.DefaultStyle {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stylesDir, "styles-dir", "", "Directory with custom .css styles")
	return cmd
}

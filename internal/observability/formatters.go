// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/cv-tailor/internal/profile"
	"github.com/jonathan/cv-tailor/internal/rewriting"
	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// RunSummary is the outcome of one pipeline run
type RunSummary struct {
	RunID      string
	Output     string
	FailedStep string
	Error      string
	Duration   time.Duration
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// writeList writes a labelled bullet list, showing at most limit items
func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintRequirements outputs a human-readable summary of the extracted requirements.
func (p *Printer) PrintRequirements(req *types.Requirements) {
	if req == nil {
		return
	}

	var sb strings.Builder
	company := req.Company
	if company == "" {
		company = "(unknown)"
	}
	sb.WriteString(fmt.Sprintf("Company:  %s\n", company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", req.Role))
	sb.WriteString("\n")

	writeList(&sb, "Key Requirements", req.KeyRequirements, maxItemsToShow)
	writeList(&sb, "Technical Skills", req.TechnicalSkills, maxItemsToShow)
	writeList(&sb, "ATS Keywords", req.KeywordsForATS, maxItemsToShow)
	writeList(&sb, "Nice-to-haves", req.NiceToHave, 3)

	p.printBox("EXTRACTED REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintProfileDiff outputs what tailoring changed and how many ATS keywords the result covers.
func (p *Printer) PrintProfileDiff(changes *profile.Changes, coverage rewriting.Coverage) {
	if changes == nil {
		return
	}

	var sb strings.Builder
	yesNo := map[bool]string{true: "yes", false: "no"}
	sb.WriteString(fmt.Sprintf("Summary rewritten:     %s\n", yesNo[changes.SummaryChanged]))
	sb.WriteString(fmt.Sprintf("Experience reordered:  %s\n", yesNo[changes.ExperienceReorder]))
	sb.WriteString(fmt.Sprintf("Positions rewritten:   %d\n", len(changes.ChangedPositions)))
	total := len(coverage.Found) + len(coverage.Missing)
	sb.WriteString(fmt.Sprintf("Keyword coverage:      %d/%d (%.0f%%)\n", len(coverage.Found), total, coverage.Ratio()*100))
	sb.WriteString("\n")

	writeList(&sb, "Missing keywords", coverage.Missing, maxItemsToShow)
	writeList(&sb, "Removed skills", changes.RemovedSkills, maxItemsToShow)
	if changes.HasInventedContent() {
		writeList(&sb, "⚠ Skills not in base profile", changes.AddedSkills, maxItemsToShow)
		writeList(&sb, "⚠ Positions not in base profile", changes.AddedPositions, maxItemsToShow)
	}

	p.printBox("TAILORING CHANGES", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintRunSummary outputs the final result of a run.
func (p *Printer) PrintRunSummary(s RunSummary) {
	var sb strings.Builder
	if s.RunID != "" {
		sb.WriteString(fmt.Sprintf("Run:       %s\n", s.RunID))
	}
	sb.WriteString(fmt.Sprintf("Duration:  %s\n", s.Duration.Round(time.Millisecond)))
	if s.FailedStep != "" {
		sb.WriteString(fmt.Sprintf("Failed at: %s\n", s.FailedStep))
		sb.WriteString(fmt.Sprintf("Error:     %s", s.Error))
		p.printBox("❌ RUN FAILED", sb.String())
		return
	}
	sb.WriteString(fmt.Sprintf("Output:    %s", s.Output))
	p.printBox("✅ RUN SUCCEEDED", sb.String())
}

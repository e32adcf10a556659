// Package observability provides logging setup and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-workbench/internal/types"
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

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items as bullets followed by an overflow note
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintRecord outputs a summary of a parsed career record
func (p *Printer) PrintRecord(record *types.CareerRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", record.Profile.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", record.Profile.Title))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", record.Profile.Email))
	sb.WriteString(fmt.Sprintf("Location: %s\n", record.Profile.Location))
	sb.WriteString("\n")

	if len(record.Experiences) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d roles):\n", len(record.Experiences)))
		roles := make([]string, 0, len(record.Experiences))
		for _, exp := range record.Experiences {
			line := exp.Role
			if exp.Company != "" {
				line += " @ " + exp.Company
			}
			roles = append(roles, fmt.Sprintf("%s (%d achievements)", line, len(exp.Achievements)))
		}
		writeList(&sb, roles, maxItemsToShow)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Education:      %d\n", len(record.Education)))
	sb.WriteString(fmt.Sprintf("Certifications: %d\n", len(record.Certifications)))
	sb.WriteString(fmt.Sprintf("Skills:         %d technical, %d governance, %d leadership",
		len(record.Skills.Technical), len(record.Skills.Governance), len(record.Skills.Leadership)))

	p.printBox("PARSED CAREER RECORD", sb.String())
}

// PrintAnalysis outputs the job description match summary
func (p *Printer) PrintAnalysis(analysis *types.JDAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match score:  %d%%\n", analysis.MatchScore))
	sb.WriteString(fmt.Sprintf("Positioning:  %s\n", analysis.SuggestedPositioning))
	sb.WriteString(fmt.Sprintf("Top categories: %s\n", strings.Join(analysis.TopCategories, ", ")))
	if analysis.Source != "" {
		sb.WriteString(fmt.Sprintf("Source:       %s\n", analysis.Source))
	}
	sb.WriteString("\n")

	if len(analysis.PresentKeywords) > 0 {
		sb.WriteString("Present:\n")
		writeList(&sb, analysis.PresentKeywords, maxItemsToShow)
	}
	if len(analysis.MissingKeywords) > 0 {
		sb.WriteString("Missing:\n")
		writeList(&sb, analysis.MissingKeywords, maxItemsToShow)
	}
	if len(analysis.TagEmphasis) > 0 {
		sb.WriteString(fmt.Sprintf("Emphasise: %s\n", strings.Join(analysis.TagEmphasis, ", ")))
	}

	p.printBox("JOB DESCRIPTION ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATS outputs each readiness check with a pass mark
func (p *Printer) PrintATS(score *types.ATSScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/100\n\n", score.Score))
	for _, check := range score.Checks {
		mark := "✗"
		if check.Pass {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, check.Label))
	}

	p.printBox("ATS READINESS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAudit outputs the risk score and every tone flag in order
func (p *Printer) PrintAudit(audit *types.ToneAudit) {
	if audit == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Risk score: %d/100\n", audit.RiskScore))
	sb.WriteString(fmt.Sprintf("Flags:      %d\n", len(audit.Flags)))
	if len(audit.Flags) > 0 {
		sb.WriteString("\n")
		for _, flag := range audit.Flags {
			sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", strings.ToUpper(flag.Severity), flag.Type, flag.Phrase))
		}
	}

	p.printBox("TONE AUDIT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestion outputs a verb suggestion, or a note when the text already opens strongly
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSuggestion(suggestion *types.VerbSuggestion) {
	if suggestion == nil {
		fmt.Fprintln(p.out, "Already opens with a strong verb.")
		return
	}
	fmt.Fprintf(p.out, "Replace %q with %q\n  %s\n", suggestion.Original, suggestion.Suggestion, suggestion.Reason)
}

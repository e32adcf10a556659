package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-workbench/internal/voice"
	"github.com/spf13/cobra"
)

var toneCmd = &cobra.Command{
	Use:   "tone",
	Short: "Check achievement text for weak verbs and AI-sounding phrasing",
}

var toneCheckCmd = &cobra.Command{
	Use:   "check TEXT",
	Short: "Flag buzzwords and weak openers in TEXT",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runToneCheck,
}

var toneSuggestCmd = &cobra.Command{
	Use:   "suggest TEXT",
	Short: "Suggest a stronger opening verb for TEXT",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runToneSuggest,
}

var toneAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit every achievement of a record for AI-sounding phrasing",
	RunE:  runToneAudit,
}

var (
	toneMode       string
	toneRecordFile string
	toneJSON       bool
)

func init() {
	toneCmd.PersistentFlags().StringVarP(&toneMode, "mode", "m", "", "Positioning mode: governance, infrastructure, digital or hybrid")
	toneCmd.PersistentFlags().BoolVar(&toneJSON, "json", false, "Print JSON instead of a summary")
	toneAuditCmd.Flags().StringVarP(&toneRecordFile, "record", "r", "", "Path to record JSON (default: the store)")

	toneCmd.AddCommand(toneCheckCmd, toneSuggestCmd, toneAuditCmd)
	rootCmd.AddCommand(toneCmd)
}

func runToneCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	flags := voice.ToneIntegrityCheck(text)
	risk := voice.RiskScore(flags)
	verbScore := voice.ScoreToneVerbs(text, string(a.mode(toneMode)))

	if toneJSON {
		return a.writeJSON("", map[string]any{"flags": flags, "riskScore": risk, "verbScore": verbScore})
	}

	_, _ = fmt.Fprintf(a.out, "Verb strength: %d/100\n", verbScore)
	if len(flags) == 0 {
		_, _ = fmt.Fprintln(a.out, "No tone issues found")
		return nil
	}
	_, _ = fmt.Fprintf(a.out, "Risk: %d/100\n", risk)
	for _, f := range flags {
		_, _ = fmt.Fprintf(a.out, "  [%s] %s: %s\n", strings.ToUpper(f.Severity), f.Type, f.Phrase)
	}
	return nil
}

func runToneSuggest(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	suggestion := voice.SuggestToneVerb(strings.Join(args, " "), string(a.mode(toneMode)))
	if toneJSON {
		return a.writeJSON("", suggestion)
	}
	a.printer.PrintSuggestion(suggestion)
	return nil
}

func runToneAudit(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	record, err := a.loadRecord(toneRecordFile)
	if err != nil {
		return err
	}

	audit := voice.AuditAIFeel(record.AllAchievements())
	if toneJSON {
		return a.writeJSON("", audit)
	}
	a.printer.PrintAudit(audit)
	return nil
}

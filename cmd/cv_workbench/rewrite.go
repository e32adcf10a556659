package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/cv-workbench/internal/ingestion"
	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/rewriting"
	"github.com/spf13/cobra"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite achievements for a positioning mode with the AI collaborator",
	Long:  "Rewrites achievements with strong opening verbs for the chosen positioning, optionally targeting a job description. Achievement ids never change and rewrites that invent figures are rejected.",
	RunE:  runRewrite,
}

var (
	rewriteRecordFile string
	rewriteMode       string
	rewriteJDFile     string
	rewriteIDs        string
	rewriteOutputFile string
	rewriteApply      bool
)

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteRecordFile, "record", "r", "", "Path to record JSON (default: the store)")
	rewriteCmd.Flags().StringVarP(&rewriteMode, "mode", "m", "", "Positioning mode: governance, infrastructure, digital or hybrid")
	rewriteCmd.Flags().StringVar(&rewriteJDFile, "jd", "", "Path to a job description to target")
	rewriteCmd.Flags().StringVar(&rewriteIDs, "ids", "", "Comma-separated achievement ids to rewrite (default: all)")
	rewriteCmd.Flags().StringVarP(&rewriteOutputFile, "out", "o", "", "Path to output record JSON (default: stdout)")
	rewriteCmd.Flags().BoolVar(&rewriteApply, "apply", false, "Save the rewritten record to the store")

	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if rewriteApply && rewriteRecordFile != "" {
		return fmt.Errorf("cannot use --apply with --record")
	}

	client, err := a.aiClient(true)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("rewrite needs an AI provider: %w", llm.ErrNoClient)
	}
	defer func() { _ = client.Close() }()

	record, err := a.loadRecord(rewriteRecordFile)
	if err != nil {
		return err
	}

	req := rewriting.Request{Mode: a.mode(rewriteMode), AchievementIDs: splitIDs(rewriteIDs)}
	if rewriteJDFile != "" {
		jd, err := ingestion.ReadFile(rewriteJDFile)
		if err != nil {
			return err
		}
		req.JDText = jd.Text
	}

	updated, report, err := rewriting.RewriteAchievements(a.ctx, client, record, req, a.cfg.GenerateOptions(llm.TierAdvanced, true))
	if err != nil {
		var parseErr *rewriting.ParseError
		if errors.As(err, &parseErr) {
			return fmt.Errorf("AI returned an unusable rewrite, the record is unchanged: %w", err)
		}
		return err
	}

	a.logger.Info("rewrite complete",
		"rewritten", len(report.Rewritten),
		"rejected", len(report.Rejected),
		"ignored", len(report.Ignored))
	for id, figures := range report.Rejected {
		a.logger.Warn("rewrite rejected for invented figures", "achievement", id, "figures", strings.Join(figures, ", "))
	}

	if rewriteApply {
		st, err := a.openStore()
		if err != nil {
			return err
		}
		if _, err := st.ReplaceAll(updated); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(a.out, "Applied %d rewrites to %s\n", len(report.Rewritten), a.cfg.StorePath)
		if rewriteOutputFile == "" {
			return nil
		}
	}
	return a.writeRecord(rewriteOutputFile, updated)
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

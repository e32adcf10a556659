package main

import (
	"github.com/jonathan/cv-workbench/internal/analysis"
	"github.com/jonathan/cv-workbench/internal/ats"
	"github.com/jonathan/cv-workbench/internal/ingestion"
	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Match a job description against a career record",
	Long:  "Scores how well a career record covers the keywords of a job description and suggests a positioning mode.",
	RunE:  runAnalyze,
}

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Score a career record for ATS readiness",
	RunE:  runATS,
}

var (
	analyzeJDFile     string
	analyzeRecordFile string
	analyzeUseAI      bool
	analyzeJSON       bool

	atsRecordFile string
	atsJSON       bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeJDFile, "jd", "", "Path to job description file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeRecordFile, "record", "r", "", "Path to record JSON (default: the store)")
	analyzeCmd.Flags().BoolVar(&analyzeUseAI, "ai", false, "Use the AI analyzer, falling back to the keyword analyzer")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print JSON instead of a summary")
	_ = analyzeCmd.MarkFlagRequired("jd")

	atsCmd.Flags().StringVarP(&atsRecordFile, "record", "r", "", "Path to record JSON (default: the store)")
	atsCmd.Flags().BoolVar(&atsJSON, "json", false, "Print JSON instead of a summary")

	rootCmd.AddCommand(analyzeCmd, atsCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	jd, err := ingestion.ReadFile(analyzeJDFile)
	if err != nil {
		return err
	}
	record, err := a.loadRecord(analyzeRecordFile)
	if err != nil {
		return err
	}

	client, err := a.aiClient(analyzeUseAI || a.cfg.UseAI)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	result, source, err := analysis.AnalyzeWithFallback(a.ctx, client, jd.Text, record, a.cfg.GenerateOptions(llm.TierStandard, true))
	if err != nil {
		return err
	}
	a.logger.Debug("analysis complete", "source", source, "match_score", result.MatchScore)

	if analyzeJSON {
		return a.writeJSON("", result)
	}
	a.printer.PrintAnalysis(result)
	return nil
}

func runATS(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	record, err := a.loadRecord(atsRecordFile)
	if err != nil {
		return err
	}

	score := ats.Score(record)
	if atsJSON {
		return a.writeJSON("", score)
	}
	a.printer.PrintATS(score)
	return nil
}

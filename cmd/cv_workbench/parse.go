package main

import (
	"fmt"
	"path/filepath"

	"github.com/jonathan/cv-workbench/internal/ingestion"
	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/parsing"
	"github.com/jonathan/cv-workbench/internal/store"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a CV file into a structured career record",
	Long:  "Extracts text from a PDF, DOCX, HTML or plain text CV and parses it into a career record, with the AI parser when --ai is set and a key is configured.",
	RunE:  runParse,
}

var (
	parseInputFile  string
	parseOutputFile string
	parseTextOutDir string
	parseImportMode string
	parseUseAI      bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to CV file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output record JSON (default: stdout)")
	parseCmd.Flags().StringVar(&parseTextOutDir, "text-out", "", "Directory to write the extracted text and metadata to")
	parseCmd.Flags().StringVar(&parseImportMode, "import", "", "Apply the parsed record to the store: merge or overwrite")
	parseCmd.Flags().BoolVar(&parseUseAI, "ai", false, "Use the AI parser, falling back to the heuristic parser")

	_ = parseCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var mode store.ImportMode
	if parseImportMode != "" {
		if mode, err = store.ParseImportMode(parseImportMode); err != nil {
			return err
		}
	}

	doc, err := ingestion.ReadFile(parseInputFile)
	if err != nil {
		return err
	}
	if parseTextOutDir != "" {
		path, err := ingestion.WriteOutput(parseTextOutDir, doc)
		if err != nil {
			return err
		}
		a.logger.Info("wrote extracted text", "path", path)
	}

	client, err := a.aiClient(parseUseAI || a.cfg.UseAI)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	record, source := parsing.ParseWithFallback(a.ctx, client, doc.Text, a.cfg.GenerateOptions(llm.TierStandard, true))
	a.logger.Info("parsed CV",
		"file", filepath.Base(parseInputFile),
		"source", source,
		"experiences", len(record.Experiences))

	if mode != "" {
		st, err := a.openStore()
		if err != nil {
			return err
		}
		if _, err := st.Import(record, mode); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(a.out, "Imported record into %s (%s)\n", a.cfg.StorePath, mode)
	}

	if a.cfg.Verbose {
		a.printer.PrintRecord(record)
	}
	if parseOutputFile == "" && mode != "" {
		return nil
	}
	return a.writeRecord(parseOutputFile, record)
}

package main

import (
	"fmt"

	"github.com/jonathan/cv-workbench/internal/ingestion"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE...",
	Short: "Extract cleaned text from CV or job description files",
	Long:  "Extracts plain text from PDF, DOCX, HTML or text files concurrently and writes <name>.cleaned.txt and <name>.meta.json for each.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

var extractOutDir string

func init() {
	extractCmd.Flags().StringVarP(&extractOutDir, "out-dir", "o", ".", "Directory for extracted text and metadata")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	docs, err := ingestion.ExtractFiles(a.ctx, args)
	if err != nil {
		return err
	}

	for i, doc := range docs {
		for _, earlier := range docs[:i] {
			if doc.Metadata.SameText(earlier.Metadata) {
				a.logger.Warn("duplicate document", "file", doc.Filename, "same_as", earlier.Filename)
				break
			}
		}
		if !doc.Metadata.HasEmail {
			a.logger.Warn("no email address found, the contact header may not have been extracted", "file", doc.Filename)
		}

		path, err := ingestion.WriteOutput(extractOutDir, doc)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(a.out, "%s: %s, %d words -> %s\n", doc.Filename, doc.Kind, doc.Metadata.WordCount, path)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/jonathan/cv-workbench/internal/rendering"
	"github.com/jonathan/cv-workbench/internal/types"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a career record as LaTeX",
	Long:  "Renders a career record with the stored design settings into a LaTeX document, using the embedded template unless --template or the config names one.",
	RunE:  runRender,
}

var (
	renderRecordFile   string
	renderOutputFile   string
	renderTemplateFile string
)

func init() {
	renderCmd.Flags().StringVarP(&renderRecordFile, "record", "r", "", "Path to record JSON (default: the store)")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output .tex file (default: stdout)")
	renderCmd.Flags().StringVarP(&renderTemplateFile, "template", "t", "", "Path to a LaTeX template")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	record, err := a.loadRecord(renderRecordFile)
	if err != nil {
		return err
	}

	settings := types.DefaultDesignSettings()
	if st, err := a.openStore(); err == nil {
		settings = st.Settings()
	} else {
		a.logger.Warn("using default design settings", "error", err)
	}

	templatePath := renderTemplateFile
	if templatePath == "" {
		templatePath = a.cfg.Template
	}

	var tex string
	if templatePath != "" {
		tex, err = rendering.RenderLaTeXFromFile(record, settings, templatePath)
	} else {
		tex, err = rendering.RenderLaTeX(record, settings)
	}
	if err != nil {
		return err
	}

	if renderOutputFile == "" {
		_, err = fmt.Fprint(a.out, tex)
		return err
	}
	if err := os.WriteFile(renderOutputFile, []byte(tex), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(a.out, "Wrote %s\n", renderOutputFile)
	return nil
}

// Package main implements the cv_workbench CLI: CV extraction, job description analysis,
// ATS and tone scoring, AI rewriting, LaTeX rendering and the local API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/cv-workbench/internal/config"
	"github.com/jonathan/cv-workbench/internal/experience"
	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/observability"
	"github.com/jonathan/cv-workbench/internal/store"
	"github.com/jonathan/cv-workbench/internal/types"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "cv_workbench",
	Short:         "CV extraction, scoring and rendering workbench",
	Long:          "cv_workbench parses CVs into structured career records, matches them against job descriptions, scores ATS readiness and tone, and renders LaTeX.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	storePath  string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to the record store (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the per-command runtime: effective config, logger and output
type app struct {
	ctx     context.Context
	cfg     *config.Config
	logger  *slog.Logger
	out     io.Writer
	printer *observability.Printer
}

// newApp loads configuration and applies the persistent flag overrides
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}
	if verbose {
		cfg.Verbose = true
	}

	logger := observability.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return &app{
		ctx:     observability.ContextWithLogger(ctx, logger),
		cfg:     cfg,
		logger:  logger,
		out:     cmd.OutOrStdout(),
		printer: observability.NewPrinter(cmd.OutOrStdout()),
	}, nil
}

// aiClient returns an AI client when want is set and a key is configured. A missing key
// is not an error: callers fall back to the heuristic paths.
func (a *app) aiClient(want bool) (llm.Client, error) {
	if !want {
		return nil, nil
	}

	apiKey := a.cfg.ResolveAPIKey()
	if apiKey == "" {
		a.logger.Warn("no API key configured, AI features disabled",
			slog.String("provider", a.cfg.Provider))
		return nil, nil
	}

	llmCfg, err := a.cfg.LLMConfig()
	if err != nil {
		return nil, err
	}
	client, err := llm.NewClient(a.ctx, llmCfg, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	return client, nil
}

func (a *app) openStore() (*store.Store, error) {
	st, err := store.Open(a.cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", a.cfg.StorePath, err)
	}
	return st, nil
}

// loadRecord reads an exported record from path, or the stored record when path is empty
func (a *app) loadRecord(path string) (*types.CareerRecord, error) {
	if path == "" {
		st, err := a.openStore()
		if err != nil {
			return nil, err
		}
		return st.Record(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}
	record, err := store.ImportJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", path, err)
	}
	return record, nil
}

// writeJSON writes v as indented JSON to path, or to the command output when path is empty
func (a *app) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path == "" {
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// writeRecord saves record to path, or prints it when path is empty
func (a *app) writeRecord(path string, record *types.CareerRecord) error {
	if path == "" {
		return a.writeJSON("", record)
	}
	return experience.SaveCareerRecord(path, record)
}

// mode resolves a --mode flag against the configured default
func (a *app) mode(raw string) types.PositioningMode {
	if raw == "" {
		return a.cfg.Mode()
	}
	return types.ParsePositioningMode(raw)
}

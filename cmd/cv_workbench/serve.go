package main

import (
	"fmt"

	"github.com/jonathan/cv-workbench/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local REST API server",
	Long:  "Start an HTTP server on the loopback interface exposing the stored record, parsing, analysis, scoring and rendering to the browser UI.",
	RunE:  runServe,
}

var (
	servePort int
	serveHost string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveHost, "host", server.DefaultHost, "Interface to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if servePort != 0 {
		a.cfg.Port = servePort
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}

	client, err := a.aiClient(true)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	srv := server.New(server.Config{
		Host:            serveHost,
		Port:            a.cfg.Port,
		UseAI:           a.cfg.UseAI,
		DefaultMode:     a.cfg.Mode(),
		TemplatePath:    a.cfg.Template,
		GenerateOptions: a.cfg.GenerateOptions,
	}, st, client, a.logger)

	return srv.Start(a.ctx)
}

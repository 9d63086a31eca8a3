package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/anandv/hrms-dashboard/internal/notify"
	"github.com/anandv/hrms-dashboard/internal/server"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes session-scoped endpoints for running dashboard queries and reading pipeline state.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	log := newLogger(cfg)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	llmClient, err := newLLMClient(ctx, cfg, log)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, llmClient, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	if wsURL := cfg.WebSocketURL(); wsURL != "" {
		client := notify.NewClient(wsURL, func(msg notify.Message) {
			log.WithFields(map[string]any{
				"type":  msg.Type,
				"title": msg.Title,
			}).Info("notification received")
		}, log)
		group.Go(func() error { return client.Run(groupCtx) })
	}

	group.Go(func() error {
		defer cancel() // server exit also stops the notification client
		return srv.Start()
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

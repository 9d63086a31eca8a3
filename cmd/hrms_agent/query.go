package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anandv/hrms-dashboard/internal/layout"
	"github.com/anandv/hrms-dashboard/internal/pipeline"
	"github.com/anandv/hrms-dashboard/internal/render"
	"github.com/anandv/hrms-dashboard/internal/router"
	"github.com/anandv/hrms-dashboard/internal/search"
	"github.com/anandv/hrms-dashboard/internal/store"
)

var (
	queryConfigPath string
	queryShowState  bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Run one dashboard query and print the rendered view",
	Long:  `Run the full pipeline for a single query against the configured backend and print the resulting view model as JSON.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryConfigPath, "config", "", "Path to JSON config file")
	queryCmd.Flags().BoolVar(&queryShowState, "state", false, "Print the full pipeline snapshot instead of just the view")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(queryConfigPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	llmClient, err := newLLMClient(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	if llmClient != nil {
		defer llmClient.Close()
	}

	backend := search.New(cfg.BaseURL,
		search.WithTimeout(cfg.SearchTimeout()),
		search.WithPaths(cfg.SearchPath, cfg.RankPath),
	)

	p := pipeline.New(
		router.New(backend, log),
		layout.NewProposer(llmClient, cfg.LLMTimeout(), cfg.MaxPromptBytes, log),
		render.New(log),
		store.New(),
		log,
	)

	snapshot := p.Run(cmd.Context(), strings.Join(args, " "))

	var out any = snapshot.View
	if queryShowState {
		out = snapshot
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

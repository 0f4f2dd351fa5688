package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ubuzima-ai/internal/config"
	"ubuzima-ai/internal/dataset"
	"ubuzima-ai/internal/helper"
	"ubuzima-ai/internal/llmservice"
	"ubuzima-ai/internal/rag"
	"ubuzima-ai/internal/server"
	"ubuzima-ai/internal/vectorindex"
)

var configPath string

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	root := &cobra.Command{
		Use:   "ubuzima-ai",
		Short: "Grounded question answering over NISR Rwanda datasets",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "./configs/config.yaml", "Path to the config file")

	root.AddCommand(serveCmd(), askCmd(), indexCmd(), searchCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", configPath).Msg("Config file not loaded, using defaults")
		return config.Default()
	}
	return cfg
}

func newPipeline(cfg *config.Config) *rag.Pipeline {
	store := dataset.NewStore(cfg.Data)
	generator := llmservice.NewClient(cfg.LLM)
	return rag.NewPipeline(store, generator, cfg.Retrieval)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			pipeline := newPipeline(cfg)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(pipeline, buildIndex(cfg), cfg.Server)
			return srv.ListenAndServe(ctx)
		},
	}
}

// buildIndex opens the semantic index for the stats endpoint. The
// service still runs without it when the embedder or the index store
// is unavailable.
func buildIndex(cfg *config.Config) *vectorindex.Index {
	embedder, err := vectorindex.NewOllamaEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Warn().Err(err).Msg("Embedder unavailable, serving without semantic index")
		return nil
	}
	index, err := vectorindex.New(cfg.Vector, embedder)
	if err != nil {
		log.Warn().Err(err).Msg("Vector index unavailable, serving without semantic index")
		return nil
	}
	return index
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Run one question through the answering pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			pipeline := newPipeline(cfg)

			envelope, err := pipeline.Answer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			helper.PrettyPrint(envelope)
			return nil
		},
	}
}

func indexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Build the semantic vector index from the datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			store := dataset.NewStore(cfg.Data)

			embedder, err := vectorindex.NewOllamaEmbedder(&cfg.EmbedLLM)
			if err != nil {
				return err
			}
			index, err := vectorindex.New(cfg.Vector, embedder)
			if err != nil {
				return err
			}
			if err := index.Build(cmd.Context(), store); err != nil {
				return err
			}
			log.Info().Int("documents", index.Count()).Msg("Index built")
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	var topK int
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the semantic vector index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			embedder, err := vectorindex.NewOllamaEmbedder(&cfg.EmbedLLM)
			if err != nil {
				return err
			}
			index, err := vectorindex.New(cfg.Vector, embedder)
			if err != nil {
				return err
			}
			results, err := index.Search(cmd.Context(), args[0], topK)
			if err != nil {
				return err
			}
			helper.PrettyPrint(results)
			return nil
		},
	}
	cmd.Flags().IntVarP(&topK, "top", "k", 5, "Number of results to return")
	return cmd
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quickanswer/internal/config"
	"quickanswer/internal/metrics"
	"quickanswer/internal/models"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "quickanswer",
		Short:        "Answers general questions with a language model and a live-search fallback",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newAskCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var httpOnly, agentOnly bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the message-queue agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if httpOnly && agentOnly {
				return errors.New("--http-only and --agent-only are mutually exclusive")
			}
			if httpOnly {
				cfg.EnableHTTP, cfg.EnableAgent = true, false
			}
			if agentOnly {
				cfg.EnableHTTP, cfg.EnableAgent = false, true
			}
			if !cfg.EnableHTTP && !cfg.EnableAgent {
				return errors.New("nothing to serve: both ENABLE_HTTP and ENABLE_AGENT are false")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}

	cmd.Flags().BoolVar(&httpOnly, "http-only", false, "serve only the HTTP API")
	cmd.Flags().BoolVar(&agentOnly, "agent-only", false, "serve only the message-queue agent")
	return cmd
}

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Resolve one question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			yamlCfg, err := config.LoadYAMLConfig(cfg.ConfigFile)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", cfg.ConfigFile, err)
			}

			resolver, err := newResolver(ctx, cfg, yamlCfg, logger)
			if err != nil {
				return err
			}

			result := resolver.Resolve(ctx, strings.Join(args, " "))
			metrics.RecordResolution(models.ChannelCLI, result.Outcome, result.Elapsed)
			logger.Debug("resolved", zap.String("outcome", result.Outcome))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Answer)
			return err
		},
	}
}

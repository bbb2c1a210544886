package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"quickanswer/internal/agent"
	"quickanswer/internal/answer"
	"quickanswer/internal/broker"
	"quickanswer/internal/config"
	"quickanswer/internal/db"
	"quickanswer/internal/directory"
	"quickanswer/internal/gateway/model"
	"quickanswer/internal/gateway/search"
	"quickanswer/internal/metrics"
	"quickanswer/internal/middleware"
	"quickanswer/internal/models"
	"quickanswer/internal/server"
)

const shutdownTimeout = 15 * time.Second

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDev() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newResolver(ctx context.Context, cfg *config.Config, yamlCfg *config.YAMLConfig, logger *zap.Logger) (*answer.Resolver, error) {
	ts, err := model.TokenSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build model credentials: %w", err)
	}

	modelClient := model.NewClient(cfg, ts, logger.Named("model"))
	responder := model.NewResponder(modelClient, cfg.ModelPromptMode, model.DefaultParams())
	searchClient := search.NewClient(cfg, logger.Named("search"))

	return answer.NewResolver(responder, searchClient,
		answer.WithIndicators(answer.NewIndicatorSet(
			yamlCfg.ExtraRealTimeIndicators(),
			yamlCfg.ExtraGenericIndicators(),
		)),
		answer.WithKeywords(answer.NewKeywordSet(yamlCfg.ExtraKeywords())),
		answer.WithTimeouts(cfg.ModelTimeout, cfg.SearchTimeout),
		answer.WithLogger(logger.Named("resolver")),
	), nil
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	yamlCfg, err := config.LoadYAMLConfig(cfg.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.ConfigFile, err)
	}

	// Outcome counters are optional.
	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("migrations completed successfully")
		metrics.Init(database, logger.Named("metrics"))
	} else {
		logger.Info("DATABASE_URL not set; outcome counters are not persisted")
		metrics.Init(nil, logger.Named("metrics"))
	}
	defer metrics.Flush()

	resolver, err := newResolver(ctx, cfg, yamlCfg, logger)
	if err != nil {
		return err
	}

	var qa *agent.Agent
	if cfg.EnableAgent {
		store, err := broker.Open(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer store.Close()

		identifier := yamlCfg.AgentIdentifier(agent.DefaultIdentifier)
		bus, err := broker.New(store.Conn(), identifier, logger.Named("broker"), nil)
		if err != nil {
			return err
		}

		registrar, err := directory.NewClient(cfg.DirectoryURL, models.AgentDescriptor{
			Identifier: identifier,
			Purpose:    yamlCfg.AgentPurpose(agent.DefaultPurpose),
			AgentType:  yamlCfg.AgentType(agent.DefaultAgentType),
		}, logger.Named("directory"))
		if err != nil {
			return err
		}

		qa = agent.New(identifier, resolver, registrar, bus, logger.Named("agent"),
			agent.WithHeartbeat(cfg.RegistrationHeartbeat))
		if err := qa.Start(ctx); err != nil {
			return fmt.Errorf("failed to start agent: %w", err)
		}
	}

	var srv *server.Server
	serverErr := make(chan error, 1)
	if cfg.EnableHTTP {
		deps := server.Dependencies{Resolver: resolver}
		if database != nil {
			deps.Database = database
		}
		if cfg.IsOIDCEnabled() {
			auth, err := middleware.NewOIDCAuthMiddleware(ctx, cfg.OIDCIssuer, cfg.OIDCClientID, logger.Named("auth"))
			if err != nil {
				stopAgent(qa, logger)
				return fmt.Errorf("failed to initialize OIDC: %w", err)
			}
			deps.Auth = auth
		}

		srv = server.New(cfg, logger.Named("http"))
		srv.RegisterRoutes(deps)

		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-serverErr:
		logger.Error("server error", zap.Error(runErr))
	}

	stopAgent(qa, logger)
	if srv != nil {
		if err := srv.Shutdown(); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
		}
	}
	logger.Info("quickanswer exited")
	return runErr
}

// stopAgent unregisters the agent. Stop is idempotent, so every exit path may call it.
func stopAgent(qa *agent.Agent, logger *zap.Logger) {
	if qa == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := qa.Stop(ctx); err != nil {
		logger.Error("failed to stop agent", zap.Error(err))
	}
}

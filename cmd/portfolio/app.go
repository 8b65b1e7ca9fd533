package main

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"cosmic-portfolio/internal/analytics"
	"cosmic-portfolio/internal/assistant"
	"cosmic-portfolio/internal/config"
	"cosmic-portfolio/internal/knowledge"
	"cosmic-portfolio/internal/llm"
	"cosmic-portfolio/internal/relay"
	"cosmic-portfolio/internal/storage"
)

// app holds the components shared by the subcommands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	engine   *assistant.Engine
	prompts  *relay.PromptSource
	relay    *relay.Service // nil when no model is configured
	recorder storage.Recorder
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	kb, err := loadKnowledge(cfg.KnowledgePath)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:      cfg,
		logger:   logger,
		engine:   assistant.New(kb, logger.Named("assistant")),
		recorder: storage.Nop{},
	}

	a.prompts, err = relay.NewPromptSource(cfg.SystemPromptPath, relay.DefaultPrompt(kb.Owner().Name), logger.Named("prompt"))
	if err != nil {
		return nil, err
	}

	if !cfg.RelayEnabled() {
		logger.Warn("no language model configured; ai mode and /api/chat are disabled")
		return a, nil
	}
	client, err := newRelayClient(cfg)
	if err != nil {
		logger.Warn("language model unavailable", zap.Error(err))
		return a, nil
	}
	a.relay = relay.NewService(client,
		relay.WithTimeout(cfg.RelayTimeout),
		relay.WithRetryWait(cfg.RelayRetryWait),
		relay.WithPrompter(a.prompts),
		relay.WithLogger(logger.Named("relay")),
	)
	return a, nil
}

func loadKnowledge(path string) (*knowledge.Base, error) {
	if path == "" {
		return knowledge.Default()
	}
	kb, err := knowledge.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load knowledge %s: %w", path, err)
	}
	return kb, nil
}

// newRelayClient prefers a remote relay endpoint over a direct provider.
func newRelayClient(cfg *config.Config) (llm.Client, error) {
	if cfg.RelayEndpoint != "" {
		return relay.NewRemote(cfg.RelayEndpoint, nil), nil
	}
	return llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), "")
}

// openRecorder attaches the configured interaction store.
func (a *app) openRecorder() error {
	path := a.cfg.LogFilePath
	if a.cfg.StorageDriver == storage.DriverSQLite {
		path = a.cfg.SQLitePath
	}
	rec, err := storage.Open(a.cfg.StorageDriver, path)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", a.cfg.StorageDriver, err)
	}
	a.recorder = rec
	a.logger.Info("interaction storage ready", zap.String("driver", a.cfg.StorageDriver), zap.String("path", path))
	return nil
}

// dailyStats aggregates the recorded interactions of day.
func (a *app) dailyStats(day time.Time) (*analytics.DailyStats, error) {
	events, err := a.recorder.LoadInteractions()
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	return analytics.AnalyzeDailyLogs(events, day), nil
}

func (a *app) close() {
	if c, ok := a.recorder.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("close storage", zap.Error(err))
		}
	}
}

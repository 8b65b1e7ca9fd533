package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cosmic-portfolio/internal/scheduler"
	"cosmic-portfolio/internal/server"
	"cosmic-portfolio/internal/telegram"
	"cosmic-portfolio/internal/widget"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the optional Telegram bot and the scheduled jobs",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()
	if err := a.openRecorder(); err != nil {
		return err
	}

	regCfg := widget.RegistryConfig{
		Local:    a.engine,
		Greeter:  a.engine,
		Delay:    widget.Jitter(cfg.ReplyDelay, cfg.ReplyJitter),
		Recorder: a.recorder,
		Prompts:  widget.QuickPrompts(a.engine.OwnerFirstName()),
		Logger:   logger.Named("widget"),
	}
	srvCfg := server.Config{Addr: cfg.HTTPAddr, Engine: a.engine, Logger: logger.Named("http")}
	// a nil *relay.Service must not reach the interfaces
	if a.relay != nil {
		regCfg.AI = a.relay
		srvCfg.Relay = a.relay
	}
	widgets := widget.NewRegistry(regCfg)
	defer widgets.Close()
	srvCfg.Widgets = widgets

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.New(srvCfg).Run(gctx) })
	g.Go(func() error { return a.prompts.Watch(gctx) })

	var bot *telegram.Bot
	if cfg.TelegramBotToken != "" {
		bot, err = telegram.New(cfg.TelegramBotToken, widgets, cfg.AdminUserID, logger)
		if err != nil {
			logger.Error("telegram bot disabled", zap.Error(err))
		} else {
			g.Go(func() error { return bot.Start(gctx) })
		}
	}

	sched := scheduler.New(logger.Named("scheduler"))
	if err := sched.Add(cfg.ReportCron, "daily-report", func(ctx context.Context) error {
		stats, err := a.dailyStats(time.Now().UTC())
		if err != nil {
			return err
		}
		summary := stats.GenerateReportSummary()
		logger.Info("daily report", zap.Int("messages", stats.TotalMessages), zap.Int("sessions", stats.UniqueSessions))
		if bot != nil {
			bot.NotifyAdmin(summary)
		}
		return nil
	}); err != nil {
		return err
	}
	if err := sched.Add(cfg.SessionSweepCron, "session-sweep", func(ctx context.Context) error {
		widgets.SweepIdle(cfg.SessionIdleTTL)
		return nil
	}); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	logger.Info("portfolio assistant started",
		zap.String("version", version),
		zap.String("addr", cfg.HTTPAddr),
		zap.Bool("relay", a.relay != nil),
		zap.Bool("telegram", bot != nil))
	return g.Wait()
}

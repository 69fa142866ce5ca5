package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/config"
	"CryptoSentinel/internal/logger"
	"CryptoSentinel/internal/metrics"
	"CryptoSentinel/internal/notifier"
	"CryptoSentinel/internal/recorder"
	"CryptoSentinel/internal/scheduler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(cfgPath *string) *cobra.Command {
	var runNow bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the watchlist daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if os.Getenv("RUN_ON_START") == "true" {
				runNow = true
			}
			return runDaemon(cfg, runNow)
		},
	}
	cmd.Flags().BoolVar(&runNow, "now", false, "run the refresh task once at startup")
	return cmd
}

func runDaemon(cfg *config.Config, runNow bool) error {
	log := logger.Named("main")
	log.Info("CryptoSentinel starting",
		zap.String("version", version),
		zap.Strings("symbols", cfg.Market.Symbols),
		zap.String("interval", string(cfg.Market.Interval)))

	fetcher := newFetcher(cfg)
	log.Info("data source", zap.String("name", fetcher.Name()))
	col := collector.NewCollector(fetcher, cfg.Market.Symbols, cfg.Market.Interval, cfg.Market.Limit)

	rec := openRecorder(cfg, log)
	defer rec.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var tn *notifier.TelegramNotifier
	var n scheduler.Notifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	} else {
		log.Warn("telegram not configured, alerts are only logged")
	}

	sched := scheduler.NewScheduler(ctx, col, n, rec, cfg.Telegram.Language)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("telegram polling started")
	}

	srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: metricsMux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", zap.Error(err))
		}
	}()
	log.Info("metrics server listening", zap.String("addr", cfg.Metrics.Addr))

	if runNow {
		go sched.RunNow()
	}

	log.Info("CryptoSentinel is running. Press Ctrl+C to stop.")
	<-ctx.Done()

	log.Info("shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics server shutdown", zap.Error(err))
	}
	return nil
}

// openRecorder prefers SQLite, then the JSON state file, then a no-op.
func openRecorder(cfg *config.Config, log *zap.Logger) recorder.Recorder {
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err == nil {
			return sr
		}
		log.Warn("init sqlite recorder failed, falling back to state file", zap.Error(err))
	}
	sr, err := recorder.NewStateRecorder(cfg.Database.StateFile)
	if err != nil {
		log.Warn("init state recorder failed, using noop", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	return sr
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

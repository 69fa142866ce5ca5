package scheduler

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/logger"
	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/notifier"
	"CryptoSentinel/internal/recorder"
	"CryptoSentinel/internal/strategy"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sendRetries = 3

// Notifier delivers formatted messages. Nil disables alerts.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the refresh cron task and bot commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  Notifier
	Recorder  recorder.Recorder
	Language  model.Language
	Ctx       context.Context

	mu      sync.Mutex
	stopped bool
	last    map[string]model.Direction // keyed by lastKey
	log     *zap.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, n Notifier, rec recorder.Recorder, lang model.Language) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  n,
		Recorder:  rec,
		Language:  lang,
		Ctx:       ctx,
		last:      make(map[string]model.Direction),
		log:       logger.Named("scheduler"),
	}
}

// Register adds the watchlist refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", zap.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for any running refresh, including
// ones started by RunNow or /refresh. Later refreshes are skipped.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.log.Info("scheduler stopped")
}

// RunNow executes the refresh task immediately.
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		s.log.Debug("refresh skipped, scheduler stopped")
		return
	}

	start := time.Now()
	results := s.Collector.CollectAll(s.Ctx)
	var ok int
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		ok++
		s.process(r.Data)
	}
	s.log.Info("refresh done",
		zap.Int("symbols", len(results)),
		zap.Int("ok", ok),
		zap.Duration("elapsed", time.Since(start)))
}

// process evaluates one symbol, stores the snapshot and alerts on a flip.
func (s *Scheduler) process(data *model.MarketData) {
	sig := strategy.Evaluate(data)
	prev, known := s.previousDirection(data.Symbol, data.Interval)

	if err := s.Recorder.RecordSnapshot(&recorder.Snapshot{
		Symbol:     data.Symbol,
		Interval:   data.Interval,
		Price:      data.Price,
		Change24h:  data.Change24h,
		Indicators: *data.Indicators,
		Signal:     sig,
		At:         data.FetchedAt,
	}); err != nil {
		s.log.Error("record snapshot", zap.String("symbol", data.Symbol), zap.Error(err))
	}
	s.last[lastKey(data.Symbol, data.Interval)] = sig.Direction

	if !known || prev == sig.Direction {
		return
	}

	s.log.Info("signal changed",
		zap.String("symbol", data.Symbol),
		zap.String("from", string(prev)),
		zap.String("to", string(sig.Direction)),
		zap.Float64("score", sig.TotalScore))

	if err := s.Recorder.RecordSignalChange(&recorder.SignalChange{
		Symbol:     data.Symbol,
		Interval:   data.Interval,
		From:       prev,
		To:         sig.Direction,
		Price:      data.Price,
		Confidence: sig.Confidence,
		At:         data.FetchedAt,
	}); err != nil {
		s.log.Error("record signal change", zap.String("symbol", data.Symbol), zap.Error(err))
	}
	s.trySend(notifier.FormatSignalChange(prev, sig, data.Price, s.Language))
}

// previousDirection prefers the recorder and falls back to the in-process
// memory when nothing has been persisted.
func (s *Scheduler) previousDirection(symbol string, interval model.Interval) (model.Direction, bool) {
	dir, ok, err := s.Recorder.LatestDirection(symbol, interval)
	if err != nil {
		s.log.Warn("load latest direction", zap.String("symbol", symbol), zap.Error(err))
	}
	if ok {
		return dir, true
	}
	dir, ok = s.last[lastKey(symbol, interval)]
	return dir, ok
}

func lastKey(symbol string, interval model.Interval) string {
	return symbol + "@" + string(interval)
}

var helpText = map[model.Language]string{
	model.LangEN: "Available commands:\n• /status - watchlist summary\n• /symbol BTCUSDT - full report\n• /prompt BTCUSDT - AI analysis prompt\n• /refresh - run the refresh task now",
	model.LangZH: "可用命令:\n• /status - 关注列表概览\n• /symbol BTCUSDT - 完整报告\n• /prompt BTCUSDT - AI 分析提示词\n• /refresh - 立即刷新",
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return s.help()
	}
	// "/status@MyBot" is how Telegram addresses commands in groups.
	name, _, _ := strings.Cut(fields[0], "@")
	var arg string
	if len(fields) > 1 {
		arg = strings.ToUpper(fields[1])
	}

	switch name {
	case "/status":
		return s.status(ctx)
	case "/symbol":
		if arg == "" {
			return s.help()
		}
		data, err := s.Collector.Collect(ctx, arg)
		if err != nil {
			return s.failure(arg, err)
		}
		return notifier.FormatReport(data, strategy.Evaluate(data), s.Language)
	case "/prompt":
		if arg == "" {
			return s.help()
		}
		data, err := s.Collector.Collect(ctx, arg)
		if err != nil {
			return s.failure(arg, err)
		}
		prompt, err := notifier.FormatPrompt(data, s.Language)
		if err != nil {
			return s.failure(arg, err)
		}
		return prompt
	case "/refresh":
		s.refreshTask()
		return s.status(ctx)
	default:
		return s.help()
	}
}

func (s *Scheduler) status(ctx context.Context) string {
	results := s.Collector.CollectAll(ctx)
	lines := make([]notifier.StatusLine, 0, len(results))
	for _, r := range results {
		line := notifier.StatusLine{Symbol: r.Symbol, Data: r.Data, Err: r.Err}
		if r.Err == nil {
			line.Signal = strategy.Evaluate(r.Data)
		}
		lines = append(lines, line)
	}
	return notifier.FormatStatus(lines, s.Language)
}

func (s *Scheduler) help() string {
	if h, ok := helpText[s.Language]; ok {
		return h
	}
	return helpText[model.LangEN]
}

func (s *Scheduler) failure(symbol string, err error) string {
	s.log.Warn("command failed", zap.String("symbol", symbol), zap.Error(err))
	return fmt.Sprintf("❌ %s: %s", html.EscapeString(symbol), html.EscapeString(err.Error()))
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		s.log.Error("send notification", zap.Error(err))
	}
}

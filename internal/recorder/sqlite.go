package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"CryptoSentinel/internal/logger"
	"CryptoSentinel/internal/model"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists indicator snapshots to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL keeps dashboards reading while the daemon writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: logger.Named("recorder")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS indicator_snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			interval      TEXT NOT NULL,
			price         REAL,
			change_24h    REAL,
			rsi           REAL,
			macd_line     REAL,
			macd_signal   REAL,
			macd_hist     REAL,
			bb_upper      REAL,
			bb_middle     REAL,
			bb_lower      REAL,
			ema50         REAL,
			ema200        REAL,
			total_score   REAL,
			direction     TEXT,
			confidence    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snap_symbol_ts ON indicator_snapshots(symbol, interval, timestamp)`,

		`CREATE TABLE IF NOT EXISTS signal_changes (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			interval    TEXT NOT NULL,
			from_dir    TEXT,
			to_dir      TEXT,
			price       REAL,
			confidence  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_change_symbol_ts ON signal_changes(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func unixOrNow(t time.Time) int64 {
	if t.IsZero() {
		return time.Now().UnixMilli()
	}
	return t.UnixMilli()
}

func (r *SQLiteRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ind := snap.Indicators
	var score, confidence float64
	direction := model.DirectionNeutral
	if snap.Signal != nil {
		score = snap.Signal.TotalScore
		direction = snap.Signal.Direction
		confidence = snap.Signal.Confidence
	}

	_, err := r.db.Exec(`INSERT INTO indicator_snapshots
		(timestamp, symbol, interval, price, change_24h, rsi,
		 macd_line, macd_signal, macd_hist, bb_upper, bb_middle, bb_lower,
		 ema50, ema200, total_score, direction, confidence)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		unixOrNow(snap.At), snap.Symbol, string(snap.Interval), snap.Price, snap.Change24h, ind.RSI,
		ind.MACD.MACDLine, ind.MACD.SignalLine, ind.MACD.Histogram,
		ind.Bollinger.Upper, ind.Bollinger.Middle, ind.Bollinger.Lower,
		ind.EMA50, ind.EMA200, score, string(direction), confidence,
	)
	return err
}

func (r *SQLiteRecorder) RecordSignalChange(evt *SignalChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_changes
		(timestamp, symbol, interval, from_dir, to_dir, price, confidence)
		VALUES (?,?,?,?,?,?,?)`,
		unixOrNow(evt.At), evt.Symbol, string(evt.Interval),
		string(evt.From), string(evt.To), evt.Price, evt.Confidence,
	)
	return err
}

func (r *SQLiteRecorder) LatestDirection(symbol string, interval model.Interval) (model.Direction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var dir string
	err := r.db.QueryRow(`SELECT direction FROM indicator_snapshots
		WHERE symbol = ? AND interval = ?
		ORDER BY timestamp DESC, id DESC LIMIT 1`, symbol, string(interval)).Scan(&dir)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query latest direction: %w", err)
	}
	return model.Direction(dir), true, nil
}

// countSnapshots returns the number of stored snapshots for symbol.
func (r *SQLiteRecorder) countSnapshots(symbol string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM indicator_snapshots WHERE symbol = ?`, symbol).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}

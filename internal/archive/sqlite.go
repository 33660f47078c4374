package archive

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockPulse/internal/model"
)

// SQLiteArchive persists signals to a SQLite database.
type SQLiteArchive struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteArchive opens (or creates) the SQLite database and runs migrations.
func NewSQLiteArchive(dbPath string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so API reads don't block scheduled scan writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	a := &SQLiteArchive{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite archive opened: %s", dbPath)
	return a, nil
}

func (a *SQLiteArchive) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ticker_signals (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at     INTEGER NOT NULL,
			ticker         TEXT NOT NULL,
			recommendation TEXT NOT NULL,
			confidence     REAL,
			price          REAL,
			target_price   REAL,
			stop_loss      REAL,
			potential_gain REAL,
			risk           REAL,
			run_id         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ticker ON ticker_signals(ticker, created_at)`,

		`CREATE TABLE IF NOT EXISTS signal_runs (
			id          TEXT PRIMARY KEY,
			strategy    TEXT,
			tickers     INTEGER,
			succeeded   INTEGER,
			failed      INTEGER,
			status      TEXT,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON signal_runs(started_at)`,
	}

	for _, s := range stmts {
		if _, err := a.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// SaveSignal stores the compact form of a signal. runID may be empty for
// ad-hoc API analyses.
func (a *SQLiteArchive) SaveSignal(sig *model.Signal, runID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := a.db.Exec(`INSERT INTO ticker_signals
		(created_at, ticker, recommendation, confidence, price,
		 target_price, stop_loss, potential_gain, risk, run_id)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), sig.Ticker, string(sig.Recommendation), sig.Confidence,
		sig.Price, sig.TargetPrice, sig.StopLoss, sig.PotentialGain, sig.Risk, runID,
	)
	return err
}

// RecentSignals returns the newest stored signals for a ticker, newest
// first, capped at limit.
func (a *SQLiteArchive) RecentSignals(ticker string, limit int) ([]StoredSignal, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.db.Query(`SELECT created_at, ticker, recommendation, confidence,
		price, target_price, stop_loss, potential_gain, risk, run_id
		FROM ticker_signals WHERE ticker = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()
	return scanStoredSignals(rows)
}

func scanStoredSignals(rows *sql.Rows) ([]StoredSignal, error) {
	var out []StoredSignal
	for rows.Next() {
		var s StoredSignal
		var createdAt int64
		if err := rows.Scan(&createdAt, &s.Ticker, &s.Recommendation, &s.Confidence,
			&s.Price, &s.TargetPrice, &s.StopLoss, &s.PotentialGain, &s.Risk, &s.RunID); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		s.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

// RecordRun stores the outcome of one scheduled scan.
func (a *SQLiteArchive) RecordRun(run *RunSummary) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := a.db.Exec(`INSERT INTO signal_runs
		(id, strategy, tickers, succeeded, failed, status, started_at, finished_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		run.ID, run.Strategy, run.Tickers, run.Succeeded, run.Failed, run.Status,
		run.StartedAt.Unix(), run.FinishedAt.Unix(),
	)
	return err
}

// LatestByRecommendation returns the newest stored signals carrying the
// given recommendation, across all tickers.
func (a *SQLiteArchive) LatestByRecommendation(recommendation string, limit int) ([]StoredSignal, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.db.Query(`SELECT created_at, ticker, recommendation, confidence,
		price, target_price, stop_loss, potential_gain, risk, run_id
		FROM ticker_signals WHERE recommendation = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		recommendation, limit)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()
	return scanStoredSignals(rows)
}

func (a *SQLiteArchive) Close() error {
	log.Println("[INFO] closing sqlite archive")
	return a.db.Close()
}

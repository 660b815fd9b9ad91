package recorder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"MarketPulse/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rs_snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			as_of         TEXT NOT NULL,
			symbol        TEXT NOT NULL,
			benchmark     TEXT NOT NULL,
			price         REAL,
			std_1m        REAL,
			std_3m        REAL,
			std_6m        REAL,
			std_1y        REAL,
			std_composite REAL,
			adj_1m        REAL,
			adj_3m        REAL,
			adj_6m        REAL,
			adj_1y        REAL,
			adj_composite REAL,
			rs_rating     INTEGER,
			quadrant      TEXT,
			rs_ratio      REAL,
			rs_momentum   REAL,
			adr_pct       REAL,
			total_score   REAL,
			tier_label    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rs_symbol_ts ON rs_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS rotation_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			as_of       TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			benchmark   TEXT,
			from_quad   TEXT,
			to_quad     TEXT,
			rs_ratio    REAL,
			rs_momentum REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rotation_ts ON rotation_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS breadth_snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			as_of         TEXT,
			total         INTEGER,
			above_sma50   INTEGER,
			above_sma200  INTEGER,
			advancers     INTEGER,
			decliners     INTEGER,
			unchanged     INTEGER,
			new_highs     INTEGER,
			new_lows      INTEGER,
			pct_above50   REAL,
			pct_above200  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_breadth_ts ON breadth_snapshots(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRS(ctx context.Context, s *RSSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `INSERT INTO rs_snapshots
		(timestamp, as_of, symbol, benchmark, price,
		 std_1m, std_3m, std_6m, std_1y, std_composite,
		 adj_1m, adj_3m, adj_6m, adj_1y, adj_composite,
		 rs_rating, quadrant, rs_ratio, rs_momentum, adr_pct,
		 total_score, tier_label)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.Timestamp.Unix(), s.AsOf, s.Symbol, s.Benchmark, s.Price,
		s.Standard.OneMonth, s.Standard.ThreeMonth, s.Standard.SixMonth, s.Standard.OneYear, s.Standard.Composite,
		s.VolatilityAdjusted.OneMonth, s.VolatilityAdjusted.ThreeMonth, s.VolatilityAdjusted.SixMonth,
		s.VolatilityAdjusted.OneYear, s.VolatilityAdjusted.Composite,
		s.RSRating, string(s.Quadrant), s.Ratio, s.Momentum, s.ADRPercent,
		s.TotalScore, s.TierLabel,
	)
	return err
}

func (r *SQLiteRecorder) RecordRotation(ctx context.Context, evt model.RotationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := evt.Detected
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO rotation_events
		(timestamp, as_of, symbol, benchmark, from_quad, to_quad, rs_ratio, rs_momentum)
		VALUES (?,?,?,?,?,?,?,?)`,
		ts.Unix(), evt.AsOf, evt.Symbol, evt.Benchmark,
		string(evt.From), string(evt.To), evt.Ratio, evt.Momentum,
	)
	return err
}

func (r *SQLiteRecorder) RecordBreadth(ctx context.Context, b model.Breadth) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `INSERT INTO breadth_snapshots
		(timestamp, as_of, total, above_sma50, above_sma200, advancers, decliners,
		 unchanged, new_highs, new_lows, pct_above50, pct_above200)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), b.AsOf, b.Total, b.AboveSMA50, b.AboveSMA200,
		b.Advancers, b.Decliners, b.Unchanged, b.NewHighs, b.NewLows,
		b.PctAbove50, b.PctAbove200,
	)
	return err
}

// LatestRS returns the most recent snapshot for symbol.
func (r *SQLiteRecorder) LatestRS(ctx context.Context, symbol string) (*RSSnapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT
		timestamp, as_of, symbol, benchmark, price,
		std_1m, std_3m, std_6m, std_1y, std_composite,
		adj_1m, adj_3m, adj_6m, adj_1y, adj_composite,
		rs_rating, quadrant, rs_ratio, rs_momentum, adr_pct,
		total_score, tier_label
		FROM rs_snapshots WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT 1`,
		strings.ToUpper(symbol))

	var (
		s        RSSnapshot
		ts       int64
		quadrant string
	)
	err := row.Scan(&ts, &s.AsOf, &s.Symbol, &s.Benchmark, &s.Price,
		&s.Standard.OneMonth, &s.Standard.ThreeMonth, &s.Standard.SixMonth, &s.Standard.OneYear, &s.Standard.Composite,
		&s.VolatilityAdjusted.OneMonth, &s.VolatilityAdjusted.ThreeMonth, &s.VolatilityAdjusted.SixMonth,
		&s.VolatilityAdjusted.OneYear, &s.VolatilityAdjusted.Composite,
		&s.RSRating, &quadrant, &s.Ratio, &s.Momentum, &s.ADRPercent,
		&s.TotalScore, &s.TierLabel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query latest rs: %w", err)
	}
	s.Timestamp = time.Unix(ts, 0)
	s.Quadrant = model.Quadrant(quadrant)
	return &s, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

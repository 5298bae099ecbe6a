package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"MarketMotion/internal/model"
)

// SQLiteStore persists the bar cache and render history to a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so a render can read the cache while a refresh writes to it.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite store opened", zap.String("path", dbPath))
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetches (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT NOT NULL,
			start_ts   INTEGER NOT NULL,
			end_ts     INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL,
			UNIQUE(symbol, start_ts, end_ts)
		)`,
		`CREATE TABLE IF NOT EXISTS bars (
			fetch_id INTEGER NOT NULL REFERENCES fetches(id),
			ts       INTEGER NOT NULL,
			open     REAL,
			high     REAL,
			low      REAL,
			close    REAL,
			volume   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_fetch ON bars(fetch_id, ts)`,

		`CREATE TABLE IF NOT EXISTS renders (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			scene     TEXT,
			output    TEXT,
			frames    INTEGER,
			duration  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_renders_ts ON renders(timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadBars(symbol string, start, end time.Time) ([]model.OHLCV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fetchID int64
	err := s.db.QueryRow(
		`SELECT id FROM fetches WHERE symbol=? AND start_ts=? AND end_ts=?`,
		symbol, start.Unix(), end.Unix(),
	).Scan(&fetchID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query fetch: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT ts, open, high, low, close, volume FROM bars WHERE fetch_id=? ORDER BY ts`,
		fetchID,
	)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var ts int64
		var b model.OHLCV
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(ts, 0)
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func (s *SQLiteStore) SaveBars(symbol string, start, end time.Time, bars []model.OHLCV) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	res, err := tx.Exec(
		`INSERT OR REPLACE INTO fetches (symbol, start_ts, end_ts, fetched_at) VALUES (?,?,?,?)`,
		symbol, start.Unix(), end.Unix(), time.Now().Unix(),
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert fetch: %w", err)
	}
	fetchID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("fetch id: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM bars WHERE fetch_id=?`, fetchID); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear stale bars: %w", err)
	}
	for _, b := range bars {
		if _, err := tx.Exec(
			`INSERT INTO bars (fetch_id, ts, open, high, low, close, volume) VALUES (?,?,?,?,?,?,?)`,
			fetchID, b.Time.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) RecordRender(evt *RenderEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO renders (timestamp, scene, output, frames, duration) VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Scene, evt.Output, evt.Frames, evt.Duration.Seconds(),
	)
	return err
}

func (s *SQLiteStore) Close() error {
	s.log.Info("closing sqlite store")
	return s.db.Close()
}

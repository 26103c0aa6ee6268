package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the pipeline writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS training_runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			samples      INTEGER,
			r2           REAL,
			grid_source  TEXT,
			price_source TEXT,
			duration_ms  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_training_ts ON training_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS prediction_days (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			date            TEXT,
			day_offset      INTEGER,
			predicted_price REAL,
			price_level     TEXT,
			confidence      REAL,
			avg_wind_speed  REAL,
			avg_temperature REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prediction_ts ON prediction_days(timestamp)`,

		`CREATE TABLE IF NOT EXISTS fetch_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			kind      TEXT,
			source    TEXT,
			count     INTEGER,
			success   INTEGER,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTraining(run *TrainingRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO training_runs
		(timestamp, samples, r2, grid_source, price_source, duration_ms)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), run.Samples, run.R2,
		run.GridSource, run.PriceSource, run.DurationMS,
	)
	return err
}

func (r *SQLiteRecorder) RecordPredictionDay(day *PredictionDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO prediction_days
		(timestamp, date, day_offset, predicted_price, price_level, confidence, avg_wind_speed, avg_temperature)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), day.Date, day.DayOffset, day.PredictedPrice,
		day.PriceLevel, day.Confidence, day.AvgWindSpeed, day.AvgTemperature,
	)
	return err
}

func (r *SQLiteRecorder) RecordFetch(evt *FetchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	success := 0
	if evt.Success {
		success = 1
	}
	_, err := r.db.Exec(`INSERT INTO fetch_events
		(timestamp, kind, source, count, success, error)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Kind, evt.Source, evt.Count, success, evt.Error,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

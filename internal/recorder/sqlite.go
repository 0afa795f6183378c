package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"TempHarvest/internal/calculator"
	"TempHarvest/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// Open returns a SQLiteRecorder for dbPath, or a NoopRecorder when dbPath
// is empty or the database cannot be opened.
func Open(dbPath string, log *zap.Logger) Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	if dbPath == "" {
		return NewNoopRecorder()
	}
	r, err := NewSQLiteRecorder(dbPath, log)
	if err != nil {
		log.Warn("sqlite recorder unavailable, history disabled", zap.String("path", dbPath), zap.Error(err))
		return NewNoopRecorder()
	}
	return r
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets readers query history while a run is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS harvest_runs (
			id          TEXT PRIMARY KEY,
			city        TEXT NOT NULL,
			start_month TEXT NOT NULL,
			end_month   TEXT NOT NULL,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			months      INTEGER,
			records     INTEGER,
			failures    INTEGER,
			csv_path    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON harvest_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS daily_temperatures (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL,
			city      TEXT NOT NULL,
			date      TEXT NOT NULL,
			high_text TEXT,
			low_text  TEXT,
			high      REAL,
			low       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_temps_city_date ON daily_temperatures(city, date)`,
		`CREATE INDEX IF NOT EXISTS idx_temps_run ON daily_temperatures(run_id)`,

		`CREATE TABLE IF NOT EXISTS month_failures (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			month  TEXT NOT NULL,
			url    TEXT,
			kind   TEXT,
			detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_run ON month_failures(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *model.RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO harvest_runs
		(id, city, start_month, end_month, started_at, finished_at, months, records, failures, csv_path)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.City, run.Start, run.End,
		run.StartedAt.Unix(), run.FinishedAt.Unix(),
		run.Months, run.Records, len(run.Failures), run.CSVPath,
	)
	return err
}

// RecordTemperatures appends records in a single transaction. Numeric
// columns are NULL when the text is not a plain reading.
func (r *SQLiteRecorder) RecordTemperatures(runID, city string, records []model.TemperatureRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO daily_temperatures
		(run_id, city, date, high_text, low_text, high, low)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(runID, city, rec.Date, rec.High, rec.Low, reading(rec.High), reading(rec.Low)); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s: %w", rec.Date, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordFailures(runID string, failures []model.MonthFailure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, f := range failures {
		if _, err := tx.Exec(`INSERT INTO month_failures
			(run_id, month, url, kind, detail)
			VALUES (?,?,?,?,?)`,
			runID, f.Key, f.URL, string(f.Kind), f.Detail,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert failure %s: %w", f.Key, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}

func reading(text string) sql.NullFloat64 {
	v, err := calculator.ParseTemperature(text)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

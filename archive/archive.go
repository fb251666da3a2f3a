// Package archive persists parsed QSO records to SQLite so analyzed logs
// can be queried later. Only input records are stored; computed statistics
// are recomputed on demand, never persisted.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"contestlog/config"
	"contestlog/qso"
)

// Store wraps the archive database. One analysis run writes one batch per
// input log inside a single transaction; this is a batch tool, so there is
// no async queue and no hot path to protect.
type Store struct {
	db *sql.DB
}

// Open initializes the SQLite database, applying pragmas and the schema.
func Open(cfg config.ArchiveConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("archive: mkdir: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("archive: open db: %w", err)
	}
	busy := cfg.BusyTimeoutMS
	if busy <= 0 {
		busy = 5000
	}
	if _, err := db.Exec(fmt.Sprintf("pragma journal_mode=WAL; pragma synchronous=NORMAL; pragma busy_timeout=%d", busy)); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: pragmas: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func ensureSchema(db *sql.DB) error {
	const schema = `
create table if not exists qsos (
	id integer primary key autoincrement,
	log_name text not null,
	call text not null,
	band text,
	mode text,
	freq_mhz real,
	time_on integer,
	qso_date text,
	operator text,
	station text,
	section text,
	country text
);
create index if not exists idx_qsos_log on qsos(log_name);
create index if not exists idx_qsos_call on qsos(call, band, mode);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("archive: schema: %w", err)
	}
	return nil
}

// StoreLog writes all records of one log in a single transaction. A repeat
// run for the same log name replaces the previous batch.
func (s *Store) StoreLog(logName string, records []qso.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("archive: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("delete from qsos where log_name = ?", logName); err != nil {
		return fmt.Errorf("archive: clear previous batch: %w", err)
	}

	stmt, err := tx.Prepare(`insert into qsos
		(log_name, call, band, mode, freq_mhz, time_on, qso_date, operator, station, section, country)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("archive: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		var freq any
		if r.HasFreq {
			freq = r.Freq
		}
		var timeOn any
		if r.HasTime {
			timeOn = r.TimeOn
		}
		if _, err := stmt.Exec(logName, r.Call, r.Band, r.Mode, freq, timeOn,
			r.Date, r.Operator, r.Station, r.Section, r.Country); err != nil {
			return fmt.Errorf("archive: insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("archive: commit: %w", err)
	}
	return nil
}

// CountQSOs returns how many records the archive holds for a log name.
func (s *Store) CountQSOs(logName string) (int, error) {
	var n int
	if err := s.db.QueryRow("select count(*) from qsos where log_name = ?", logName).Scan(&n); err != nil {
		return 0, fmt.Errorf("archive: count: %w", err)
	}
	return n, nil
}

// LogNames lists the distinct archived log names, ascending.
func (s *Store) LogNames() ([]string, error) {
	rows, err := s.db.Query("select distinct log_name from qsos order by log_name")
	if err != nil {
		return nil, fmt.Errorf("archive: list logs: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("archive: scan log name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("archive: iterate log names: %w", err)
	}
	return names, nil
}

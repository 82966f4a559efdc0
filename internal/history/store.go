// Package history persists lint runs in SQLite so two runs can be
// compared. It is opt-in: the analysis core itself keeps no state.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // CGO-free SQLite driver

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
)

// Run is one persisted lint run.
type Run struct {
	ID            string        `json:"id"`
	StartedAt     time.Time     `json:"started_at"`
	Source        string        `json:"source,omitempty"`
	TargetVersion string        `json:"target_version,omitempty"`
	Issues        []issue.Issue `json:"issues"`
}

// DB is the concrete store backed by SQLite.
type DB struct {
	conn *sql.DB
}

// Open opens (and creates if missing) a SQLite DB at path.
func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	c, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{conn: c}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

// CreateSchema ensures the tables exist.
func (db *DB) CreateSchema() error {
	_, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id             TEXT PRIMARY KEY,
  started_at     TEXT,          -- RFC3339
  source         TEXT,
  target_version TEXT,
  run_json       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS issues (
  run_id    TEXT NOT NULL,
  rule_id   TEXT,
  severity  TEXT,
  path      TEXT,
  line      INTEGER,
  col       INTEGER,
  end_line  INTEGER,
  end_col   INTEGER,
  message   TEXT,
  FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_issues_run ON issues(run_id);
CREATE INDEX IF NOT EXISTS idx_issues_rule ON issues(rule_id);
`)
	return err
}

// SaveRun upserts a run and (re)writes its issues.
func (db *DB) SaveRun(r *Run) error {
	blob, err := json.Marshal(r)
	if err != nil {
		return err
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO runs (id, started_at, source, target_version, run_json)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET started_at=excluded.started_at, source=excluded.source,
  target_version=excluded.target_version, run_json=excluded.run_json`,
		r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.Source, r.TargetVersion, string(blob))
	if err != nil {
		return err
	}
	if _, err = tx.Exec(`DELETE FROM issues WHERE run_id = ?`, r.ID); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO issues
(run_id, rule_id, severity, path, line, col, end_line, end_col, message)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, i := range r.Issues {
		if _, err := stmt.Exec(r.ID, i.RuleID, i.Severity.String(), i.Path,
			i.Line, i.Col, i.EndLine, i.EndCol, i.Message); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadRun restores a run from its stored JSON.
func (db *DB) LoadRun(id string) (Run, error) {
	var blob string
	err := db.conn.QueryRow(`SELECT run_json FROM runs WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %q not found", id)
	}
	if err != nil {
		return Run{}, err
	}
	var r Run
	if err := json.Unmarshal([]byte(blob), &r); err != nil {
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns stored run ids, most recent first.
func (db *DB) ListRuns() ([]string, error) {
	rows, err := db.conn.Query(`SELECT id FROM runs ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

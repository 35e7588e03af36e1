// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists search sessions and their result records in a local
// SQLite database so past searches can be listed, re-rendered, and exported.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

const dbFile = "evidence.db"

// Store manages the session SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the session database at dataDir/evidence.db,
// creating the schema when missing.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "sessions"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			expanded_query TEXT NOT NULL,
			mode TEXT NOT NULL,
			since TEXT,
			created_at TEXT NOT NULL,
			result_count INTEGER NOT NULL,
			mean_score REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			search_id INTEGER NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			published TEXT,
			type TEXT NOT NULL,
			score REAL NOT NULL,
			summary TEXT,
			PRIMARY KEY (search_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_search_id ON results(search_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Session identifies one saved search.
type Session struct {
	ID          int64      `json:"id" yaml:"id"`
	Query       string     `json:"query" yaml:"query"`
	Expanded    string     `json:"expanded_query" yaml:"expanded_query"`
	Mode        types.Mode `json:"mode" yaml:"mode"`
	Since       string     `json:"since,omitempty" yaml:"since,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	ResultCount int        `json:"result_count" yaml:"result_count"`
	MeanScore   float64    `json:"mean_score" yaml:"mean_score"`
}

// SaveSearch persists one search and its records in a single transaction and
// returns the session id. Record positions preserve the upstream relevance
// order.
func (s *Store) SaveSearch(ctx context.Context, session Session, records []types.ResultRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := session.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO searches (query, expanded_query, mode, since, created_at, result_count, mean_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.Query, session.Expanded, string(session.Mode), session.Since,
		createdAt.Format(time.RFC3339), len(records), session.MeanScore,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting search: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading search id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (search_id, position, title, url, published, type, score, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			id, i, r.Title, r.URL, r.Published, string(r.Type), r.Score, r.Summary,
		); err != nil {
			return 0, fmt.Errorf("inserting result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing search: %w", err)
	}
	return id, nil
}

// ListSessions returns saved searches, newest first, capped at the store's
// max results.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, expanded_query, mode, since, created_at, result_count, mean_score
		 FROM searches ORDER BY id DESC LIMIT ?`, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var mode, createdAt string
		var since sql.NullString
		if err := rows.Scan(&sess.ID, &sess.Query, &sess.Expanded, &mode, &since,
			&createdAt, &sess.ResultCount, &sess.MeanScore); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sess.Mode = types.Mode(mode)
		sess.Since = since.String
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			sess.CreatedAt = t
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Results returns the records of one session in their stored order.
func (s *Store) Results(ctx context.Context, sessionID int64) ([]types.ResultRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, url, published, type, score, summary
		 FROM results WHERE search_id = ? ORDER BY position`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var records []types.ResultRecord
	for rows.Next() {
		var r types.ResultRecord
		var typ string
		var published, summary sql.NullString
		if err := rows.Scan(&r.Title, &r.URL, &published, &typ, &r.Score, &summary); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Published = published.String
		r.Summary = summary.String
		r.Type = types.EvidenceType(typ)
		records = append(records, r)
	}
	return records, rows.Err()
}

// LatestSessionID returns the most recent session id, or an error when the
// store is empty.
func (s *Store) LatestSessionID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM searches ORDER BY id DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no saved searches")
	}
	if err != nil {
		return 0, fmt.Errorf("querying latest session: %w", err)
	}
	return id, nil
}

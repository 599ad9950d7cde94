// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph is the triple store behind the attribute queries. Turtle
// files are decoded with knakk/rdf and kept in a SQLite table with set
// semantics: a triple is stored once no matter how many times, or in which
// order, its files are loaded. The store is read-only once loaded and is
// passed explicitly to every query.
package graph

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/dca-graph/pkg/types"
)

// Term kinds stored in the kind column.
const (
	KindIRI     = "iri"
	KindBlank   = "blank"
	KindLiteral = "literal"
)

// Triple is one stored statement. Blank node identifiers carry the name of
// the file they were read from.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
	Kind      string
	Datatype  string
	Lang      string
}

// Store manages the SQLite triple table.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the store. An empty cfg.DBPath keeps the store in
// memory for the life of the process.
func Open(cfg types.GraphConfig) (*Store, error) {
	dsn := ":memory:"
	if cfg.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		dsn = cfg.DBPath + "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: every connection to :memory: is a separate database,
	// and queries run one at a time anyway.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: cfg.DBPath}
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
		`CREATE TABLE IF NOT EXISTS triples (
			subject TEXT NOT NULL,
			predicate TEXT NOT NULL,
			object TEXT NOT NULL,
			kind TEXT NOT NULL,
			datatype TEXT NOT NULL DEFAULT '',
			lang TEXT NOT NULL DEFAULT '',
			UNIQUE(subject, predicate, object, kind, datatype, lang)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_triples_po ON triples(predicate, object)`,
		`CREATE INDEX IF NOT EXISTS idx_triples_sp ON triples(subject, predicate)`,
		`CREATE TABLE IF NOT EXISTS sources (
			path TEXT PRIMARY KEY,
			mod_time TEXT NOT NULL,
			triples INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Count returns the number of distinct triples in the store.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM triples`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting triples: %w", err)
	}
	return n, nil
}

// Insert adds triples in one transaction and returns how many were new.
func (s *Store) Insert(ctx context.Context, ts []Triple) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	added, err := insertTriples(ctx, tx, ts)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing triples: %w", err)
	}
	return added, nil
}

func insertTriples(ctx context.Context, tx *sql.Tx, ts []Triple) (int, error) {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO triples (subject, predicate, object, kind, datatype, lang)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, t := range ts {
		res, err := stmt.ExecContext(ctx, t.Subject, t.Predicate, t.Object, t.Kind, t.Datatype, t.Lang)
		if err != nil {
			return added, fmt.Errorf("inserting triple %s %s: %w", t.Subject, t.Predicate, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	return added, nil
}

// Reset removes all triples and source records.
func (s *Store) Reset(ctx context.Context) error {
	for _, stmt := range []string{`DELETE FROM triples`, `DELETE FROM sources`} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("resetting store: %w", err)
		}
	}
	return nil
}

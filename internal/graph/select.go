// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotReadOnly is returned for statements other than a single SELECT or
// WITH query.
var ErrNotReadOnly = errors.New("only a single SELECT or WITH statement is allowed")

// ResultSet is the tabular result of an ad hoc query.
type ResultSet struct {
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// CheckReadOnly rejects anything but one SELECT/WITH statement. A trailing
// semicolon is allowed.
func CheckReadOnly(query string) (string, error) {
	q := strings.TrimSpace(query)
	q = strings.TrimSuffix(q, ";")
	q = strings.TrimSpace(q)
	if q == "" {
		return "", ErrNotReadOnly
	}
	if strings.Contains(q, ";") {
		return "", ErrNotReadOnly
	}
	head := strings.ToUpper(strings.Fields(q)[0])
	if head != "SELECT" && head != "WITH" {
		return "", ErrNotReadOnly
	}
	return q, nil
}

// Select runs a read-only query and returns at most limit rows (all rows
// when limit is zero). The connection is switched to query_only for the
// duration of the call so a statement that slips past CheckReadOnly still
// cannot write.
func (s *Store) Select(ctx context.Context, query string, limit int) (ResultSet, error) {
	q, err := CheckReadOnly(query)
	if err != nil {
		return ResultSet{}, err
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return ResultSet{}, fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `PRAGMA query_only = ON`); err != nil {
		return ResultSet{}, fmt.Errorf("enabling query_only: %w", err)
	}
	defer conn.ExecContext(context.WithoutCancel(ctx), `PRAGMA query_only = OFF`)

	rows, err := conn.QueryContext(ctx, q)
	if err != nil {
		return ResultSet{}, fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return ResultSet{}, fmt.Errorf("reading columns: %w", err)
	}
	rs := ResultSet{Columns: cols}

	for rows.Next() {
		if limit > 0 && len(rs.Rows) >= limit {
			break
		}
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return ResultSet{}, fmt.Errorf("scanning row: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = v.String
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return ResultSet{}, fmt.Errorf("reading rows: %w", err)
	}
	return rs, nil
}

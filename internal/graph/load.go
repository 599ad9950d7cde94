// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/knakk/rdf"
)

// LoadSummary holds counts from a load run.
type LoadSummary struct {
	Loaded  int
	Failed  int
	Triples int

	// UpToDate is set when a persistent store already held exactly these
	// files and nothing was re-read.
	UpToDate bool
}

// HasFailures reports whether any file failed to parse.
func (s LoadSummary) HasFailures() bool {
	return s.Failed > 0
}

// TurtleFiles lists the *.ttl files of each directory, sorted within each
// directory. Missing directories are an error.
func TurtleFiles(dirs ...string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("turtle directory %s: %w", dir, err)
		}
		matches, err := filepath.Glob(filepath.Join(dir, "*.ttl"))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}

// ParseFile decodes one Turtle file. Blank node labels are prefixed with the
// file's base name so that labels from different files never collide while
// re-reading the same file yields the same identifiers.
func ParseFile(path string) ([]Triple, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, filepath.Base(path))
}

// Parse decodes Turtle from r, scoping blank nodes by scope.
func Parse(r io.Reader, scope string) ([]Triple, error) {
	dec := rdf.NewTripleDecoder(r, rdf.Turtle)
	var out []Triple
	for {
		tr, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, convertTriple(tr, scope))
	}
	return out, nil
}

func convertTriple(tr rdf.Triple, scope string) Triple {
	t := Triple{
		Subject:   termID(tr.Subj, scope),
		Predicate: tr.Pred.String(),
	}
	switch obj := tr.Obj.(type) {
	case rdf.Literal:
		t.Object = obj.String()
		t.Kind = KindLiteral
		t.Lang = obj.Lang()
		t.Datatype = obj.DataType.String()
	default:
		t.Object = termID(tr.Obj, scope)
		t.Kind = KindIRI
		if tr.Obj.Type() == rdf.TermBlank {
			t.Kind = KindBlank
		}
	}
	return t
}

// BlankPrefix starts every stored blank node identifier.
const BlankPrefix = "_:"

func termID(term rdf.Term, scope string) string {
	if term.Type() == rdf.TermBlank {
		return BlankPrefix + scope + "#" + strings.TrimPrefix(term.String(), BlankPrefix)
	}
	return term.String()
}

// LoadDirs reads every Turtle file of the given directories into the store.
// A file that fails to parse is reported and skipped; its triples are not
// added. A persistent store whose recorded sources match the files on disk
// is left as is.
func (s *Store) LoadDirs(ctx context.Context, w io.Writer, dirs ...string) (LoadSummary, error) {
	files, err := TurtleFiles(dirs...)
	if err != nil {
		return LoadSummary{}, err
	}

	stamps := make(map[string]string, len(files))
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return LoadSummary{}, fmt.Errorf("stat %s: %w", f, err)
		}
		stamps[f] = info.ModTime().UTC().Format(time.RFC3339Nano)
	}

	if s.path != "" {
		same, err := s.sourcesMatch(ctx, stamps)
		if err != nil {
			return LoadSummary{}, err
		}
		if same {
			n, err := s.Count(ctx)
			if err != nil {
				return LoadSummary{}, err
			}
			fmt.Fprintf(w, "graph up to date: %d files, %d triples\n", len(files), n)
			return LoadSummary{Loaded: len(files), Triples: n, UpToDate: true}, nil
		}
	}
	if err := s.Reset(ctx); err != nil {
		return LoadSummary{}, err
	}

	var summary LoadSummary
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		ts, err := ParseFile(f)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(f), err)
			summary.Failed++
			continue
		}
		added, err := s.loadFile(ctx, f, stamps[f], ts)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(f), err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "loaded: %s (%d triples, %d new)\n", filepath.Base(f), len(ts), added)
		summary.Loaded++
	}

	n, err := s.Count(ctx)
	if err != nil {
		return summary, err
	}
	summary.Triples = n
	fmt.Fprintf(w, "\nLoad summary: %d files loaded, %d failed, %d triples\n",
		summary.Loaded, summary.Failed, summary.Triples)
	return summary, nil
}

func (s *Store) loadFile(ctx context.Context, path, stamp string, ts []Triple) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	added, err := insertTriples(ctx, tx, ts)
	if err != nil {
		return 0, err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sources (path, mod_time, triples) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET mod_time=excluded.mod_time, triples=excluded.triples`,
		path, stamp, len(ts))
	if err != nil {
		return 0, fmt.Errorf("recording source: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing %s: %w", path, err)
	}
	return added, nil
}

// sourcesMatch reports whether the recorded sources equal stamps exactly.
func (s *Store) sourcesMatch(ctx context.Context, stamps map[string]string) (bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, mod_time FROM sources`)
	if err != nil {
		return false, fmt.Errorf("reading sources: %w", err)
	}
	defer rows.Close()

	seen := 0
	for rows.Next() {
		var path, stamp string
		if err := rows.Scan(&path, &stamp); err != nil {
			return false, fmt.Errorf("scanning source: %w", err)
		}
		if stamps[path] != stamp {
			return false, nil
		}
		seen++
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("reading sources: %w", err)
	}
	return seen > 0 && seen == len(stamps), nil
}

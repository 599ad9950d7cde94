// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ask

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pdiddy/dca-graph/internal/graph"
	"github.com/pdiddy/dca-graph/internal/vocab"
)

// Output formats accepted by Write.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Write renders rs in format.
func Write(w io.Writer, rs graph.ResultSet, format string) error {
	switch strings.ToLower(format) {
	case FormatTable, "":
		return WriteTable(w, rs)
	case FormatCSV:
		return WriteCSV(w, rs)
	case FormatJSON:
		return WriteJSON(w, rs)
	default:
		return fmt.Errorf("unknown output format %q (want table, csv, or json)", format)
	}
}

// WriteTable prints rs as aligned columns with IRIs shortened.
func WriteTable(w io.Writer, rs graph.ResultSet) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(rs.Columns, "\t"))
	for _, row := range rs.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = strings.ReplaceAll(vocab.Shorten(v), "\n", " ")
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(rs.Rows))
	return err
}

// WriteCSV writes rs with its columns as the header.
func WriteCSV(w io.Writer, rs graph.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rs.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(rs.Rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}

// WriteJSON writes rs as an array of objects keyed by column, in row order.
func WriteJSON(w io.Writer, rs graph.ResultSet) error {
	var b strings.Builder
	b.WriteString("[")
	for i, row := range rs.Rows {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  {")
		for j, col := range rs.Columns {
			if j > 0 {
				b.WriteString(", ")
			}
			k, err := json.Marshal(col)
			if err != nil {
				return err
			}
			v, err := json.Marshal(row[j])
			if err != nil {
				return err
			}
			b.Write(k)
			b.WriteString(": ")
			b.Write(v)
		}
		b.WriteString("}")
	}
	if len(rs.Rows) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	_, err := io.WriteString(w, b.String())
	return err
}

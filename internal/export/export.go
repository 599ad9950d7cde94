// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes attribute records as CSV, JSON, and a Frictionless
// data package descriptor, and checks every written file by reading it back.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/dca-graph/pkg/types"
)

// ErrCountMismatch reports a written file whose row count differs from the
// records it was written from.
var ErrCountMismatch = errors.New("row count mismatch")

// WriteCSV writes records under the AttributeColumns header.
func WriteCSV(path string, recs []types.AttributeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(types.AttributeColumns); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range recs {
		if err := w.Write(r.Values()); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}

// ReadCSV reads an attribute CSV written by WriteCSV. The header must match
// AttributeColumns exactly.
func ReadCSV(path string) ([]types.AttributeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(types.AttributeColumns)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if strings.Join(header, ",") != strings.Join(types.AttributeColumns, ",") {
		return nil, fmt.Errorf("%s: unexpected header %v", path, header)
	}

	var recs []types.AttributeRecord
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		recs = append(recs, types.AttributeRecord{
			ID:              rec[0],
			Label:           rec[1],
			Description:     rec[2],
			ValidationRules: rec[3],
			ValidValues:     rec[4],
		})
	}
	return recs, nil
}

// WriteJSON writes records as an indented array of objects. Keys follow
// AttributeColumns and absent values are empty strings.
func WriteJSON(path string, recs []types.AttributeRecord) error {
	if recs == nil {
		recs = []types.AttributeRecord{}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// ReadJSON reads an attribute JSON file written by WriteJSON.
func ReadJSON(path string) ([]types.AttributeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var recs []types.AttributeRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return recs, nil
}

// JSONPath returns the JSON output path that accompanies a CSV path.
func JSONPath(csvPath string) string {
	return strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".json"
}

func checkCount(path string, got, want int) error {
	if got != want {
		return fmt.Errorf("%s: %w: wrote %d, read back %d", path, ErrCountMismatch, want, got)
	}
	return nil
}

// VerifyCSV reads path back and compares its row count with want.
func VerifyCSV(path string, want int) error {
	recs, err := ReadCSV(path)
	if err != nil {
		return err
	}
	return checkCount(path, len(recs), want)
}

// VerifyJSON reads path back and compares its object count with want.
func VerifyJSON(path string, want int) error {
	recs, err := ReadJSON(path)
	if err != nil {
		return err
	}
	return checkCount(path, len(recs), want)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/dca-graph/pkg/types"
)

// Result lists the files written by Write.
type Result struct {
	RunID    uuid.UUID
	CSV      string
	JSON     string
	Package  string
	Rows     int
	Resource []string
	Stats    Stats
}

// Write exports recs to csvPath, the matching JSON path, and a data package
// descriptor in the same directory. Each file is read back after writing;
// a count mismatch fails the export.
func Write(csvPath, roleSet string, recs []types.AttributeRecord, w io.Writer) (Result, error) {
	res := Result{
		RunID: uuid.New(),
		CSV:   csvPath,
		JSON:  JSONPath(csvPath),
		Rows:  len(recs),
		Stats: Analyze(recs),
	}
	res.Package = filepath.Join(filepath.Dir(csvPath), DescriptorFile)

	if err := os.MkdirAll(filepath.Dir(csvPath), 0o755); err != nil {
		return res, fmt.Errorf("creating output directory: %w", err)
	}

	if err := WriteCSV(res.CSV, recs); err != nil {
		return res, err
	}
	if err := VerifyCSV(res.CSV, len(recs)); err != nil {
		return res, err
	}
	fmt.Fprintf(w, "wrote: %s (%d rows)\n", res.CSV, len(recs))

	if err := WriteJSON(res.JSON, recs); err != nil {
		return res, err
	}
	if err := VerifyJSON(res.JSON, len(recs)); err != nil {
		return res, err
	}
	fmt.Fprintf(w, "wrote: %s (%d objects)\n", res.JSON, len(recs))

	pkg, err := NewPackage(res.CSV, res.JSON, PackageInfo{
		RunID:   res.RunID,
		RoleSet: roleSet,
		Stats:   res.Stats,
		Created: time.Now(),
	})
	if err != nil {
		return res, err
	}
	if err := pkg.SaveDescriptor(res.Package); err != nil {
		return res, fmt.Errorf("saving %s: %w", res.Package, err)
	}
	res.Resource = pkg.ResourceNames()
	fmt.Fprintf(w, "wrote: %s (run %s)\n", res.Package, res.RunID)
	return res, nil
}

const sampleWidth = 60

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= sampleWidth {
		return s
	}
	return string(r[:sampleWidth-3]) + "..."
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// PrintSample writes the first n records in a readable block form.
func PrintSample(w io.Writer, recs []types.AttributeRecord, n int) {
	if n <= 0 || len(recs) == 0 {
		return
	}
	n = min(n, len(recs))
	fmt.Fprintf(w, "\nSample (first %d of %d):\n", n, len(recs))
	for i, r := range recs[:n] {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, r.ID)
		fmt.Fprintf(w, "   label:        %s\n", r.Label)
		fmt.Fprintf(w, "   description:  %s\n", truncate(orDefault(r.Description, "N/A")))
		fmt.Fprintf(w, "   validation:   %s\n", truncate(orDefault(r.ValidationRules, "N/A")))
		fmt.Fprintf(w, "   valid values: %s\n", truncate(orDefault(r.ValidValues, "free text")))
	}
	if len(recs) > n {
		fmt.Fprintf(w, "\n... and %d more\n", len(recs)-n)
	}
}

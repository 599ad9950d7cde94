// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/dca-graph/internal/projects"
)

// fakeConverter implements Converter for testing. It returns canned Turtle
// or an error, depending on configuration.
type fakeConverter struct {
	output string
	err    error
}

func (f *fakeConverter) Convert(project, inPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

// selectiveConverter returns different results per project.
type selectiveConverter struct {
	outputs map[string]string
	errors  map[string]error
}

func (s *selectiveConverter) Convert(project, inPath string) (string, error) {
	if err, ok := s.errors[project]; ok {
		return "", err
	}
	if out, ok := s.outputs[project]; ok {
		return out, nil
	}
	return "", errors.New("unexpected project: " + project)
}

func testLayout(t *testing.T) Layout {
	t.Helper()
	dir := t.TempDir()
	l := Layout{
		InputDir:     filepath.Join(dir, "in"),
		InputSuffix:  "_data_model.jsonld",
		OutputDir:    filepath.Join(dir, "out"),
		OutputSuffix: "_data_model.ttl",
	}
	if err := os.MkdirAll(l.InputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return l
}

func writeInput(t *testing.T, l Layout, project string) {
	t.Helper()
	if err := os.WriteFile(l.input(project), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestConvertProject(t *testing.T) {
	tests := []struct {
		name       string
		converter  *fakeConverter
		preCreate  bool // create an up-to-date output before running
		force      bool
		wantStatus Status
		wantLog    string
	}{
		{
			name:       "successful conversion",
			converter:  &fakeConverter{output: "cb:A a rdfs:Class .\n"},
			wantStatus: StatusConverted,
			wantLog:    "converted:",
		},
		{
			name:       "skip up-to-date output",
			converter:  &fakeConverter{output: "should not be written"},
			preCreate:  true,
			wantStatus: StatusSkipped,
			wantLog:    "skipped:",
		},
		{
			name:       "force rewrites up-to-date output",
			converter:  &fakeConverter{output: "cb:A a rdfs:Class .\n"},
			preCreate:  true,
			force:      true,
			wantStatus: StatusConverted,
			wantLog:    "converted:",
		},
		{
			name:       "empty result",
			converter:  &fakeConverter{},
			wantStatus: StatusSkipped,
			wantLog:    "nothing to convert",
		},
		{
			name:       "conversion failure",
			converter:  &fakeConverter{err: errors.New("bad json")},
			wantStatus: StatusFailed,
			wantLog:    "failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLayout(t)
			writeInput(t, l, "CB")

			if tt.preCreate {
				if err := os.MkdirAll(l.OutputDir, 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(l.output("CB"), []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
				later := time.Now().Add(time.Hour)
				if err := os.Chtimes(l.output("CB"), later, later); err != nil {
					t.Fatal(err)
				}
			}

			var log bytes.Buffer
			status := ConvertProject(tt.converter, l, "CB", tt.force, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
			if tt.wantStatus == StatusConverted {
				data, err := os.ReadFile(l.output("CB"))
				if err != nil {
					t.Fatalf("reading output: %v", err)
				}
				if string(data) != tt.converter.output {
					t.Errorf("output = %q, want %q", data, tt.converter.output)
				}
			}
		})
	}
}

func TestConvertProject_MissingInput(t *testing.T) {
	l := testLayout(t)
	var log bytes.Buffer
	if status := ConvertProject(&fakeConverter{output: "x"}, l, "NOPE", false, &log); status != StatusFailed {
		t.Errorf("status = %d, want StatusFailed", status)
	}
}

func TestConvertAll(t *testing.T) {
	l := testLayout(t)
	for _, p := range []string{"ADKP", "CB", "NF-OSI", "demo"} {
		writeInput(t, l, p)
	}

	conv := &selectiveConverter{
		outputs: map[string]string{
			"ADKP":   "adkp:A a rdfs:Class .\n",
			"NF-OSI": "nf-osi:A a rdfs:Class .\n",
		},
		errors: map[string]error{
			"CB": errors.New("bad json"),
		},
	}

	var log bytes.Buffer
	result, err := ConvertAll(conv, l, Options{}, &log)
	if err != nil {
		t.Fatalf("ConvertAll: %v", err)
	}

	if result.Converted != 2 {
		t.Errorf("converted = %d, want 2", result.Converted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1 (demo)", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 4 {
		t.Errorf("total = %d, want 4", result.Total())
	}

	output := log.String()
	for _, want := range []string{"skipped: demo (ignored)", "failed:  CB (bad json)", "Batch summary:"} {
		if !strings.Contains(output, want) {
			t.Errorf("output %q does not contain %q", output, want)
		}
	}
	if _, err := os.Stat(l.output("demo")); !os.IsNotExist(err) {
		t.Error("demo project should not be converted")
	}
}

func TestConvertAll_Only(t *testing.T) {
	l := testLayout(t)
	writeInput(t, l, "CB")
	writeInput(t, l, "ADKP")

	var log bytes.Buffer
	result, err := ConvertAll(&fakeConverter{output: "x"}, l, Options{Filter: projects.Filter{Only: "CB"}}, &log)
	if err != nil {
		t.Fatal(err)
	}
	if result.Total() != 1 || result.Converted != 1 {
		t.Errorf("result = %+v, want one conversion", result)
	}

	if _, err := ConvertAll(&fakeConverter{output: "x"}, l, Options{Filter: projects.Filter{Only: "XYZ"}}, &log); err == nil {
		t.Error("expected error for unknown project")
	}
}

func TestConvertAll_NoInputs(t *testing.T) {
	l := testLayout(t)
	var log bytes.Buffer
	if _, err := ConvertAll(&fakeConverter{}, l, Options{}, &log); err == nil {
		t.Error("expected error when no inputs match")
	}
}

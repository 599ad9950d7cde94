//go:build mage

// Package main contains Mage build targets for dca-graph developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// workDirs lists the working directories the pipeline reads and writes.
var workDirs = []string{
	"data_models",
	"data_models_rdf",
	"template_configs",
	"template_outputs",
	"template_enrichment_rdf",
	"notebook_data",
	".secrets",
}

// Init creates the pipeline's working directories.
func Init() error {
	for _, dir := range workDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Working directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "dca-graph"
	cmdPkg  = "./cmd/dca-graph"
)

func binPath() string {
	return filepath.Join(binDir, binName)
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + strings.TrimSpace(version)
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath(), cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath())
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Pipeline builds the binary and runs convert, templates, enrich, and
// attributes in order.
func Pipeline() error {
	mg.Deps(Init, Build)
	for _, stage := range [][]string{
		{"convert"},
		{"templates"},
		{"enrich"},
		{"attributes"},
		{"summarize"},
	} {
		fmt.Printf("\n== %s ==\n", stage[0])
		if err := sh.RunV(binPath(), stage...); err != nil {
			return fmt.Errorf("%s: %w", stage[0], err)
		}
	}
	return nil
}

// Stats prints Go production and test line counts and the number of Turtle
// files in each output directory.
func Stats() error {
	prod, test, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)

	for _, dir := range []string{"data_models_rdf", "template_enrichment_rdf"} {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.ttl"))
		fmt.Printf("Turtle files (%s): %d\n", dir, len(matches))
	}
	return nil
}

// countGoLines counts non-blank lines in Go files under root, skipping
// hidden and underscore-prefixed directories.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(name) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				n++
			}
		}
		if strings.HasSuffix(name, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

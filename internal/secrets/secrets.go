// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves credentials for the ask stage. Keys come from
// the process environment, a .env file, or a directory of plain-text files
// where each file name is a key and its trimmed contents the value.
package secrets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Key names understood by Resolve.
const (
	AnthropicKeyFile = "anthropic-api-key"
	AnthropicKeyEnv  = "ANTHROPIC_API_KEY"
)

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty map. Unreadable files are reported to warn and skipped.
func Load(dir string, warn io.Writer) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			out[name] = v
		}
	}
	return out, nil
}

// LoadEnv adds the variables of a .env file to the environment without
// overriding ones already set. A missing file is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Resolve returns the first non-empty of configured, the environment
// variable env, and files[file].
func Resolve(configured, env, file string, files map[string]string) string {
	if configured != "" {
		return configured
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return files[file]
}

// AnthropicKey resolves the Claude API key.
func AnthropicKey(configured string, files map[string]string) string {
	return Resolve(configured, AnthropicKeyEnv, AnthropicKeyFile, files)
}

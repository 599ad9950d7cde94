// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dca-graph/pkg/types"
)

func configCmd(t *testing.T, file string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	if file != "" {
		require.NoError(t, cmd.Flags().Set("config", file))
	}
	return cmd
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := loadConfig(configCmd(t, ""))
	require.NoError(t, err)
	assert.Equal(t, types.DefaultPipelineConfig(), c)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
templates:
  timeout: 5s
  master_file: urls.csv
export:
  role_set: all
`), 0o644))
	t.Setenv("DCA_GRAPH_EXPORT_SAMPLE", "3")

	c, err := loadConfig(configCmd(t, path))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.Templates.Timeout)
	assert.Equal(t, "urls.csv", c.Templates.MasterFile)
	assert.Equal(t, "all", c.Export.RoleSet)
	assert.Equal(t, 3, c.Export.Sample)
	assert.Equal(t, "template_outputs", c.Templates.OutputDir)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(configCmd(t, filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestAskLoop(t *testing.T) {
	in := strings.NewReader("first\n\nsecond\nquit\nnever\n")
	var out bytes.Buffer
	var asked []string
	err := askLoop(in, &out, func(q string) error {
		asked = append(asked, q)
		if q == "second" {
			return errors.New("bad query")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, asked)
	assert.Contains(t, out.String(), "error: bad query")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package projects

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dca-graph/pkg/types"
)

func TestMasterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_model_urls.csv")
	in := []types.Project{
		{Name: "CB", DataModelURL: "https://example.org/cb.jsonld", TemplateConfigURL: "https://example.org/cb.json"},
		{Name: "ADKP", DataModelURL: "https://example.org/adkp.jsonld"},
	}
	require.NoError(t, WriteMaster(path, in))

	got, err := ReadMaster(path)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestReadMaster_WithoutConfigColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.csv")
	require.NoError(t, os.WriteFile(path, []byte("Project,Data Model URL\nCB,https://x/cb.jsonld\n,\n"), 0o644))

	got, err := ReadMaster(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CB", got[0].Name)
	assert.Empty(t, got[0].TemplateConfigURL)
}

func TestReadMaster_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadMaster(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = ReadMaster(empty)
	assert.Error(t, err)

	noProject := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(noProject, []byte("Name\nCB\n"), 0o644))
	_, err = ReadMaster(noProject)
	assert.Error(t, err)
}

func writeConfig(t *testing.T, root, project, body string) {
	t.Helper()
	dir := filepath.Join(root, project)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dca_config.json"), []byte(body), 0o644))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "NF-OSI", `{"dcc": {"data_model_url": "https://x/nf.jsonld", "template_menu_config_file": "https://x/nf.json"}}`)
	writeConfig(t, root, "CB", `{"dcc": {"data_model_url": "https://x/cb.jsonld"}}`)
	writeConfig(t, root, "demo", `{"dcc": {"data_model_url": "https://x/demo.jsonld"}}`)
	writeConfig(t, root, "EMPTY", `{"dcc": {}}`)

	got, err := Discover(root, io.Discard)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CB", got[0].Name)
	assert.Equal(t, "NF-OSI", got[1].Name)
	assert.Equal(t, "https://x/nf.json", got[1].TemplateConfigURL)
}

func TestDiscover_CorruptConfigSkipped(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "CB", `{"dcc": {"data_model_url": "https://x/cb.jsonld"}}`)
	writeConfig(t, root, "NF-OSI", `{"dcc": {"data_model_url": "https://x/nf.jsonld"}}`)
	writeConfig(t, root, "AAA", `{"dcc": {"data_model_url": `)

	var buf bytes.Buffer
	ps, err := Index(filepath.Join(t.TempDir(), "data_model_urls.csv"), root, true, &buf)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "CB", ps[0].Name)
	assert.Equal(t, "NF-OSI", ps[1].Name)
	assert.Contains(t, buf.String(), "skipped: AAA (parsing ")
	assert.Contains(t, buf.String(), "2 projects discovered")
}

func TestFillTemplateConfigs(t *testing.T) {
	ps := []types.Project{{Name: "CB"}, {Name: "ADKP", TemplateConfigURL: "keep"}}
	FillTemplateConfigs(ps, []types.Project{{Name: "CB", TemplateConfigURL: "found"}, {Name: "ADKP", TemplateConfigURL: "other"}})
	assert.Equal(t, "found", ps[0].TemplateConfigURL)
	assert.Equal(t, "keep", ps[1].TemplateConfigURL)
}

func TestFilter(t *testing.T) {
	all := []types.Project{{Name: "CB"}, {Name: "demo"}, {Name: "demo_upsert"}, {Name: "ADKP"}}

	tests := []struct {
		name        string
		filter      Filter
		wantNames   []string
		wantSkipped []string
		wantErr     bool
	}{
		{"defaults skip demos", Filter{}, []string{"CB", "ADKP"}, []string{"demo", "demo_upsert"}, false},
		{"extra ignore", Filter{Ignore: []string{"ADKP"}}, []string{"CB"}, []string{"demo", "demo_upsert", "ADKP"}, false},
		{"none clears defaults", Filter{Ignore: []string{"none"}}, []string{"CB", "demo", "demo_upsert", "ADKP"}, nil, false},
		{"only", Filter{Only: "demo"}, []string{"demo"}, nil, false},
		{"only unknown", Filter{Only: "XYZ"}, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped, err := tt.filter.Apply(all)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			var names []string
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantSkipped, skipped)
		})
	}
}

func TestIndex(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "CB", `{"dcc": {"data_model_url": "https://x/cb.jsonld", "template_menu_config_file": "https://x/cb.json"}}`)
	master := filepath.Join(root, "data_model_urls.csv")

	t.Run("missing master is rebuilt from discovery", func(t *testing.T) {
		var buf bytes.Buffer
		ps, err := Index(master, root, false, &buf)
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.FileExists(t, master)
		assert.Contains(t, buf.String(), "1 projects discovered")
	})

	t.Run("existing master is read and completed", func(t *testing.T) {
		require.NoError(t, WriteMaster(master, []types.Project{
			{Name: "CB", DataModelURL: "https://x/cb.jsonld"},
			{Name: "ADKP", DataModelURL: "https://x/adkp.jsonld"},
		}))
		ps, err := Index(master, root, false, io.Discard)
		require.NoError(t, err)
		require.Len(t, ps, 2)
		assert.Equal(t, "https://x/cb.json", ps[0].TemplateConfigURL)
		assert.Empty(t, ps[1].TemplateConfigURL)
	})

	t.Run("nothing to discover", func(t *testing.T) {
		_, err := Index(filepath.Join(t.TempDir(), "m.csv"), t.TempDir(), true, io.Discard)
		assert.Error(t, err)
	})
}

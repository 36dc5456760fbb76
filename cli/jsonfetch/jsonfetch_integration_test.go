//go:build integration

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cperrin88/jsonfetch/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFetch_EndToEnd(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))

	src := testutil.NewDataSource(t, map[string][]byte{
		"/o1.bed":   []byte("track\n"),
		"/reads.gz": testutil.TarGz(t, testutil.Member{Name: "s_1.fastq", Content: "@r1\n"}),
	})
	src.Set("/manifest.json", []byte(fmt.Sprintf(`[
		{"url":"%[1]s/o1.bed","name":"Sample A","extension":"bed"},
		{"url":"%[1]s/reads.gz","name":"reads","extension":"fastq"}
	]`, src.URL)))

	output1 := filepath.Join(tempDir, "o1.bed")
	metaFile := filepath.Join(tempDir, "galaxy.json")
	params := testutil.WriteJobParams(t, tempDir, testutil.Job{
		ManifestURL:  src.URL + "/manifest.json",
		Output1:      output1,
		MetadataFile: metaFile,
		HDAID:        42,
		DatasetID:    7,
	})
	appdata := filepath.Join(tempDir, "appdata")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"max_size", "-j", params, "-p", tempDir, "-a", appdata, "--log-level", "warn"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	meta, err := os.ReadFile(metaFile)
	require.NoError(t, err)
	assert.Equal(t,
		fmt.Sprintf(`{"type":"new_primary_dataset","ext":"bed","filename":"%s","name":"Sample A","metadata":{},"base_dataset_id":7}`+"\n", output1),
		string(meta))

	data, err := os.ReadFile(output1)
	require.NoError(t, err)
	assert.Equal(t, "track\n", string(data))

	member, err := os.ReadFile(filepath.Join(appdata, "reads_s-1.fastq_fastq_?"))
	require.NoError(t, err)
	assert.Equal(t, "@r1\n", string(member))
	assert.FileExists(t, filepath.Join(appdata, "reads"))
}

func TestJSONFetch_FailsOnMissingManifest(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))

	src := testutil.NewDataSource(t, map[string][]byte{})
	params := testutil.WriteJobParams(t, tempDir, testutil.Job{
		ManifestURL:  src.URL + "/nope.json",
		Output1:      filepath.Join(tempDir, "o1"),
		MetadataFile: filepath.Join(tempDir, "galaxy.json"),
		HDAID:        "h1",
		DatasetID:    "d1",
	})

	cmd := newRootCmd()
	cmd.SetArgs([]string{"-j", params, "-p", tempDir, "-a", filepath.Join(tempDir, "appdata")})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "404"), err.Error())
}

func TestJSONFetch_StringIDsInFilenames(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))

	src := testutil.NewDataSource(t, map[string][]byte{"/a": []byte("1"), "/b": []byte("2")})
	src.Set("/m", []byte(fmt.Sprintf(`[{"url":"%[1]s/a","name":"a","extension":"txt"},{"url":"%[1]s/b","name":"b (2)","extension":"txt"}]`, src.URL)))

	metaFile := filepath.Join(tempDir, "galaxy.json")
	params := testutil.WriteJobParams(t, tempDir, testutil.Job{
		ManifestURL:  src.URL + "/m",
		Output1:      filepath.Join(tempDir, "o1"),
		MetadataFile: metaFile,
		HDAID:        "h1",
		DatasetID:    "d1",
	})

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--json_param_file", params, "--path", tempDir, "--appdata", filepath.Join(tempDir, "appdata")})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.FileExists(t, filepath.Join(tempDir, "primary_h1_b (2)_visible_txt"))
	meta, err := os.ReadFile(metaFile)
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"dataset_id":"d1"`)
	assert.Contains(t, string(meta), `"base_dataset_id":"d1"`)
}

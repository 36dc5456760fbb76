// Package testutil builds the fixtures end-to-end tests need: a data source
// serving manifests and dataset files, job parameter files and tarballs.
package testutil

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mholt/archives"
	"github.com/stretchr/testify/require"
)

// DataSource is an HTTP server answering with fixed bodies per path.
type DataSource struct {
	*httptest.Server

	mu       sync.Mutex
	files    map[string][]byte
	requests []string
	agents   []string
}

// NewDataSource starts a server for files; unknown paths get 404. It is closed
// when the test ends.
func NewDataSource(t *testing.T, files map[string][]byte) *DataSource {
	t.Helper()
	ds := &DataSource{files: files}
	ds.Server = httptest.NewServer(http.HandlerFunc(ds.serve))
	t.Cleanup(ds.Close)
	return ds
}

func (ds *DataSource) serve(w http.ResponseWriter, r *http.Request) {
	ds.mu.Lock()
	body, ok := ds.files[r.URL.Path]
	ds.requests = append(ds.requests, r.URL.Path)
	ds.agents = append(ds.agents, r.UserAgent())
	ds.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write(body)
}

// Set adds or replaces the body served at path.
func (ds *DataSource) Set(path string, body []byte) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.files[path] = body
}

// Requests returns the request paths in arrival order.
func (ds *DataSource) Requests() []string {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return append([]string(nil), ds.requests...)
}

// UserAgents returns the User-Agent header of every request in arrival order.
func (ds *DataSource) UserAgents() []string {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return append([]string(nil), ds.agents...)
}

// Job describes a job parameter file. IDs are written as given, so an int
// stays a JSON number and a string a JSON string.
type Job struct {
	ManifestURL  string
	Output1      string
	MetadataFile string
	HDAID        any
	DatasetID    any
}

// WriteJobParams writes job as the runner would and returns the file path.
func WriteJobParams(t *testing.T, dir string, job Job) string {
	t.Helper()

	doc := map[string]any{
		"param_dict": map[string]any{"URL": job.ManifestURL, "output1": job.Output1},
		"output_data": []map[string]any{{
			"extra_files_path": filepath.Join(dir, "extra"),
			"file_name":        job.Output1,
			"ext":              "data",
			"out_data_name":    "output1",
			"hda_id":           job.HDAID,
			"dataset_id":       job.DatasetID,
		}},
		"job_config": map[string]any{"TOOL_PROVIDED_JOB_METADATA_FILE": job.MetadataFile},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(dir, "params.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// Member is one regular file of a test tarball.
type Member struct {
	Name    string
	Content string
}

// TarGz returns a gzip-compressed tar holding members in order.
func TarGz(t *testing.T, members ...Member) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz, err := archives.Gz{}.OpenWriter(&buf)
	require.NoError(t, err)

	tw := tar.NewWriter(gz)
	for _, m := range members {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     m.Name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(m.Content)),
		}))
		_, err := tw.Write([]byte(m.Content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

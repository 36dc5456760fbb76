package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cperrin88/jsonfetch/internal/logger"
	"github.com/cperrin88/jsonfetch/pkg/auth"
	pkgerrors "github.com/cperrin88/jsonfetch/pkg/errors"
	"github.com/cperrin88/jsonfetch/pkg/fsutil"
)

// DefaultBufferSize is the copy buffer used for streamed transfers.
const DefaultBufferSize = 1 << 20

// ManagerImpl fetches http(s) URLs with net/http and file URLs (or bare local
// paths) from the local filesystem.
type ManagerImpl struct {
	client     *http.Client
	userAgent  string
	bufferSize int
	auth       auth.Hosts
}

// NewManager creates a new download manager with the given timeout and user agent.
// A zero timeout means transfers may take as long as they need.
func NewManager(timeout time.Duration, userAgent string) *ManagerImpl {
	if userAgent == "" {
		userAgent = "jsonfetch/1.0"
	}
	return &ManagerImpl{
		client:     &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		bufferSize: DefaultBufferSize,
	}
}

// WithBufferSize sets the copy buffer size used by Fetch.
func (m *ManagerImpl) WithBufferSize(size int) *ManagerImpl {
	if size > 0 {
		m.bufferSize = size
	}
	return m
}

// WithAuth sets the per-host credentials applied to http(s) requests.
func (m *ManagerImpl) WithAuth(hosts auth.Hosts) *ManagerImpl {
	m.auth = hosts
	return m
}

// Open returns the body of rawURL.
func (m *ManagerImpl) Open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, pkgerrors.ErrDownloadFailed)
	}

	switch u.Scheme {
	case "http", "https":
		resp, err := m.doRequest(ctx, u)
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	case "file":
		return openLocal(u.Path)
	case "":
		return openLocal(rawURL)
	default:
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrUnsupportedScheme, u.Scheme)
	}
}

// Fetch streams rawURL into dest through a temporary file in dest's directory.
func (m *ManagerImpl) Fetch(ctx context.Context, rawURL, dest string) error {
	body, err := m.Open(ctx, rawURL)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	tmpPath, err := m.writeBodyToTemp(body, dest)
	if err != nil {
		return err
	}
	if err := finalizeFile(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func (m *ManagerImpl) doRequest(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)
	if err := m.auth.Apply(req); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to authenticate request to %s", u.Host)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pkgerrors.ErrDownloadFailed, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d from %s: %w", resp.StatusCode, u.Redacted(), pkgerrors.ErrDownloadFailed)
	}
	return resp, nil
}

func openLocal(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pkgerrors.ErrDownloadFailed, err)
	}
	return f, nil
}

func (m *ManagerImpl) writeBodyToTemp(body io.Reader, absPath string) (string, error) {
	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return "", pkgerrors.Wrap(err, "could not create download dir")
	}
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	// Hide ReaderFrom and WriterTo so the configured buffer is actually used.
	buf := make([]byte, m.bufferSize)
	written, err := io.CopyBuffer(struct{ io.Writer }{tmp}, struct{ io.Reader }{body}, buf)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not write file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not close file")
	}
	logger.DebugfWithFields(logger.Fields{"dest": absPath, "bytes": written}, "Downloaded %s", filepath.Base(absPath))
	return tmpPath, nil
}

func finalizeFile(tmpPath, absPath string) error {
	if err := os.Chmod(tmpPath, fsutil.FileModeDefault); err != nil {
		return pkgerrors.Wrap(err, "could not set permissions")
	}
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		return pkgerrors.Wrap(err, "could not finalize file")
	}
	return nil
}

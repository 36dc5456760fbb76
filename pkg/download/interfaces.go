//go:generate mockgen -destination=mocks/download.go . Manager,PathResolver

package download

import (
	"context"
	"io"
)

// Manager retrieves remote resources. Every call is a single blocking transfer;
// there is no retry, resume or checksum verification.
type Manager interface {
	// Open returns the body of rawURL. The caller must close it.
	Open(ctx context.Context, rawURL string) (io.ReadCloser, error)

	// Fetch streams rawURL into dest, creating parent directories as needed.
	// dest only appears once the transfer has completed.
	Fetch(ctx context.Context, rawURL, dest string) error
}

// PathResolver maps a manifest-supplied relative path onto a base directory.
type PathResolver interface {
	Resolve(baseDir, relPath string) (string, error)
}

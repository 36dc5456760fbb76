package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cperrin88/jsonfetch/internal/logger"
	pkgerrors "github.com/cperrin88/jsonfetch/pkg/errors"
	"github.com/cperrin88/jsonfetch/pkg/fsutil"
	"github.com/cperrin88/jsonfetch/pkg/manifest"
)

// JoinResolver joins the relative path onto the base directory and cleans the
// result. It does not check that the result stays inside baseDir: a path with
// ".." segments supplied by the data source can write outside of it.
type JoinResolver struct{}

// Resolve implements PathResolver.
func (JoinResolver) Resolve(baseDir, relPath string) (string, error) {
	return filepath.Join(baseDir, relPath), nil
}

// ContainedResolver behaves like JoinResolver but rejects paths that escape baseDir.
type ContainedResolver struct{}

// Resolve implements PathResolver.
func (ContainedResolver) Resolve(baseDir, relPath string) (string, error) {
	target := filepath.Join(baseDir, relPath)
	rel, err := filepath.Rel(filepath.Clean(baseDir), target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s escapes %s", pkgerrors.ErrInvalidPath, relPath, baseDir)
	}
	return target, nil
}

// ExtraFetcher downloads a dataset's auxiliary files into its extra-files directory.
type ExtraFetcher struct {
	dl       Manager
	resolver PathResolver
}

// NewExtraFetcher creates an ExtraFetcher. A nil resolver means JoinResolver.
func NewExtraFetcher(dl Manager, resolver PathResolver) *ExtraFetcher {
	if resolver == nil {
		resolver = JoinResolver{}
	}
	return &ExtraFetcher{dl: dl, resolver: resolver}
}

// FetchAll fetches every item to baseDir/<item.Path>, in order, stopping at the first failure.
func (e *ExtraFetcher) FetchAll(ctx context.Context, items []manifest.ExtraData, baseDir string) error {
	for _, item := range items {
		if err := fsutil.EnsureDir(baseDir); err != nil {
			return pkgerrors.Wrapf(err, "could not create extra files dir %s", baseDir)
		}
		target, err := e.resolver.Resolve(baseDir, item.Path)
		if err != nil {
			return err
		}
		if err := fsutil.EnsureFileDir(target); err != nil {
			return pkgerrors.Wrapf(err, "could not create directory for %s", item.Path)
		}
		logger.Debug("Fetching extra file", logger.Fields{"url": item.URL, "path": target})
		if err := e.dl.Fetch(ctx, item.URL, target); err != nil {
			return pkgerrors.Wrapf(err, "failed to fetch extra file %s", item.Path)
		}
	}
	return nil
}

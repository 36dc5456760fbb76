// Package archive expands downloaded tar archives into a flat collection of
// member files named for the job runner's collection discovery.
package archive

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cperrin88/jsonfetch/internal/logger"
	pkgerrors "github.com/cperrin88/jsonfetch/pkg/errors"
	"github.com/cperrin88/jsonfetch/pkg/fsutil"
	"github.com/cperrin88/jsonfetch/pkg/naming"
	"github.com/mholt/archives"
)

// Compression is the tar flavour inferred from a dataset URL.
type Compression int

const (
	// None means the URL does not point at an archive.
	None Compression = iota
	// Plain is an uncompressed tar.
	Plain
	// Gzip is a gzip-compressed tar.
	Gzip
	// Bzip2 is a bzip2-compressed tar.
	Bzip2
)

func (c Compression) String() string {
	switch c {
	case Plain:
		return "tar"
	case Gzip:
		return "tar+gzip"
	case Bzip2:
		return "tar+bzip2"
	default:
		return "none"
	}
}

// IsArchive reports whether c denotes a tar archive.
func (c Compression) IsArchive() bool {
	return c != None
}

// DetectCompression inspects the suffix of the URL path (query and fragment
// are ignored): ".gz", ".bz2" and ".tar" select an archive, anything else does not.
func DetectCompression(rawURL string) Compression {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	switch {
	case strings.HasSuffix(p, ".gz"):
		return Gzip
	case strings.HasSuffix(p, ".bz2"):
		return Bzip2
	case strings.HasSuffix(p, ".tar"):
		return Plain
	default:
		return None
	}
}

func (c Compression) extractor() (archives.Extractor, error) {
	switch c {
	case Plain:
		return archives.Tar{}, nil
	case Gzip:
		return archives.CompressedArchive{Compression: archives.Gz{}, Extraction: archives.Tar{}}, nil
	case Bzip2:
		return archives.CompressedArchive{Compression: archives.Bz2{}, Extraction: archives.Tar{}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrUnsupportedArchive, c)
	}
}

// ExpandRequest describes one archive to expand.
type ExpandRequest struct {
	ArchivePath string
	Compression Compression
	// Collection prefixes every member filename; see naming.CollectionName.
	Collection string
	// DBKey is the genome build appended to every member filename.
	DBKey string
	// DestDir receives the flattened members.
	DestDir string
}

// Manager handles archive expansion.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// Expand writes every regular file of the archive into req.DestDir under its
// constructed member filename and returns the written paths in archive order.
// Directories, links and other special members are skipped. Members whose
// names collide overwrite each other; the last one wins.
func (am *Manager) Expand(ctx context.Context, req ExpandRequest) ([]string, error) {
	extractor, err := req.Compression.extractor()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(req.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := fsutil.EnsureDir(req.DestDir); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	var written []string
	handler := func(_ context.Context, f archives.FileInfo) error {
		if !isRegularMember(f) {
			return nil
		}
		target, err := am.writeMember(f, req)
		if err != nil {
			return err
		}
		written = append(written, target)
		return nil
	}

	if err := extractor.Extract(ctx, file, handler); err != nil {
		return written, fmt.Errorf("%w %s: %w", pkgerrors.ErrArchiveExtract, req.ArchivePath, err)
	}
	return written, nil
}

// isRegularMember reports whether f carries its own file content. Hard links
// are reported as regular files by the tar reader, so the header is checked too.
func isRegularMember(f archives.FileInfo) bool {
	if !f.Mode().IsRegular() || f.LinkTarget != "" {
		return false
	}
	if hdr, ok := f.Header.(*tar.Header); ok && hdr.Typeflag == tar.TypeLink {
		return false
	}
	return true
}

// writeMember reads the member fully into memory and writes it in one go.
func (am *Manager) writeMember(f archives.FileInfo, req ExpandRequest) (string, error) {
	member := naming.MemberFilename(req.Collection, f.NameInArchive, req.DBKey)
	target := filepath.Join(req.DestDir, member.Filename)

	src, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open member %s: %w", f.NameInArchive, err)
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read member %s: %w", f.NameInArchive, err)
	}
	if err := os.WriteFile(target, data, fsutil.FileModeDefault); err != nil {
		return "", fmt.Errorf("failed to write member %s to %s: %w", f.NameInArchive, target, err)
	}

	logger.Debug("Expanded archive member", logger.Fields{
		"member": f.NameInArchive,
		"file":   target,
		"ext":    member.Ext,
		"size":   len(data),
	})
	return target, nil
}

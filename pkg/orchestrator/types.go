//go:generate mockgen -destination=./mocks/orchestrator.go . ExtraFetcher,Expander,MetadataSink

package orchestrator

import (
	"context"
	"io"

	"github.com/cperrin88/jsonfetch/pkg/archive"
	"github.com/cperrin88/jsonfetch/pkg/jobparams"
	"github.com/cperrin88/jsonfetch/pkg/manifest"
	"github.com/cperrin88/jsonfetch/pkg/metadata"
)

// Downloader is the subset of the download manager used by the orchestrator.
type Downloader interface {
	Open(ctx context.Context, rawURL string) (io.ReadCloser, error)
	Fetch(ctx context.Context, rawURL, dest string) error
}

// ExtraFetcher downloads a dataset's extra_data items into its extra files directory.
type ExtraFetcher interface {
	FetchAll(ctx context.Context, items []manifest.ExtraData, baseDir string) error
}

// Expander flattens a staged archive into individual files.
type Expander interface {
	Expand(ctx context.Context, req archive.ExpandRequest) ([]string, error)
}

// MetadataSink receives one record per non-archive dataset.
type MetadataSink interface {
	Write(rec metadata.Record) error
}

// Orchestrator ties the download, archive and metadata components together.
type Orchestrator struct {
	DL       Downloader
	Extras   ExtraFetcher
	Archives Expander
	Metadata MetadataSink
	Hooks    Hooks // Hooks for progress and event notifications
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // manifest|downloading|metadata|extra_files|extracting|done
	ID    string // dataset name
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Job is everything a run needs besides the manifest itself.
type Job struct {
	Params *jobparams.Params
	// Path is the directory that receives every dataset after the first.
	Path string
	// AppData stages archives and receives their expanded members.
	AppData string
}

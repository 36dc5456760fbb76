package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cperrin88/jsonfetch/internal/logger"
	"github.com/cperrin88/jsonfetch/pkg/archive"
	"github.com/cperrin88/jsonfetch/pkg/errors"
	"github.com/cperrin88/jsonfetch/pkg/manifest"
	"github.com/cperrin88/jsonfetch/pkg/metadata"
	"github.com/cperrin88/jsonfetch/pkg/naming"
)

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Run fetches the manifest named by the job's URL parameter and materializes
// every dataset in it, stopping at the first error.
func (o *Orchestrator) Run(ctx context.Context, job Job) (manifest.State, error) {
	if err := o.check(); err != nil {
		return manifest.State{}, err
	}
	if job.Params == nil {
		return manifest.State{}, fmt.Errorf("job parameters are not configured")
	}

	manifestURL := job.Params.ParamDict.URL
	emit(o.Hooks, Event{Phase: "manifest", Msg: manifestURL})

	body, err := o.DL.Open(ctx, manifestURL)
	if err != nil {
		return manifest.State{}, errors.Wrapf(err, "failed to fetch manifest %s", manifestURL)
	}
	m, err := manifest.Parse(body)
	_ = body.Close()
	if err != nil {
		return manifest.State{}, err
	}

	state, err := manifest.Walk(ctx, m, func(ctx context.Context, d manifest.Descriptor, first bool) error {
		return o.Materialize(ctx, job, d, first)
	})
	if err != nil {
		return state, err
	}

	emit(o.Hooks, Event{Phase: "done", Msg: fmt.Sprintf("%d datasets", state.Datasets)})
	return state, nil
}

// Materialize downloads one dataset. Plain datasets are announced in the
// metadata file before their bytes arrive; archives are staged in the app-data
// directory and expanded there without any metadata record.
func (o *Orchestrator) Materialize(ctx context.Context, job Job, d manifest.Descriptor, first bool) error {
	if err := o.check(); err != nil {
		return err
	}

	out := job.Params.Output()
	compression := archive.DetectCompression(d.URL)
	target := TargetFilename(job, d, first)

	dest := target
	if compression.IsArchive() {
		dest = filepath.Join(job.AppData, d.Name)
	} else {
		rec := metadata.NewRecord(first, d.Extension, target, d.Name, d.MetadataObject(), d.HasExtraData(), out.DatasetID)
		emit(o.Hooks, Event{Phase: "metadata", ID: d.Name, Msg: rec.Type})
		if err := o.Metadata.Write(rec); err != nil {
			return err
		}
	}

	emit(o.Hooks, Event{Phase: "downloading", ID: d.Name, Msg: dest})
	if err := o.DL.Fetch(ctx, d.URL, dest); err != nil {
		return errors.Wrapf(err, "failed to download %s", d.URL)
	}

	if d.HasExtraData() {
		extraDir := target + metadata.ExtraFilesSuffix
		emit(o.Hooks, Event{Phase: "extra_files", ID: d.Name, Msg: extraDir})
		if err := o.Extras.FetchAll(ctx, d.ExtraData, extraDir); err != nil {
			return err
		}
	}

	if compression.IsArchive() {
		dbKey, _ := d.DBKey()
		emit(o.Hooks, Event{Phase: "extracting", ID: d.Name, Msg: compression.String()})
		members, err := o.Archives.Expand(ctx, archive.ExpandRequest{
			ArchivePath: dest,
			Compression: compression,
			Collection:  naming.CollectionName(d.Name),
			DBKey:       dbKey,
			DestDir:     job.AppData,
		})
		if err != nil {
			return err
		}
		if len(members) == 0 {
			logger.Warn("Archive contained no regular files", logger.Fields{"dataset": d.Name, "url": d.URL})
		} else {
			logger.Debug("Expanded archive", logger.Fields{"dataset": d.Name, "members": len(members)})
		}
	}
	return nil
}

// TargetFilename is where a dataset's bytes belong: output1 for the first
// dataset of a run, a generated name under the job path for the rest.
func TargetFilename(job Job, d manifest.Descriptor, first bool) string {
	if first {
		return job.Params.ParamDict.Output1
	}
	hdaID := job.Params.Output().HDAID.String()
	return filepath.Join(job.Path, naming.MultiFilename(hdaID, naming.Sanitize(d.Name), d.Extension))
}

func (o *Orchestrator) check() error {
	switch {
	case o.DL == nil:
		return fmt.Errorf("download manager is not configured")
	case o.Extras == nil:
		return fmt.Errorf("extra files fetcher is not configured")
	case o.Archives == nil:
		return fmt.Errorf("archive expander is not configured")
	case o.Metadata == nil:
		return fmt.Errorf("metadata sink is not configured")
	}
	return nil
}

// New constructs an Orchestrator from its collaborators. Helper for wiring.
func New(dl Downloader, extras ExtraFetcher, archives Expander, sink MetadataSink, hooks Hooks) *Orchestrator {
	return &Orchestrator{
		DL:       dl,
		Extras:   extras,
		Archives: archives,
		Metadata: sink,
		Hooks:    hooks,
	}
}

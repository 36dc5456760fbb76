// Package cli implements the jsonfetch command: it reads the runner's job
// parameters, fetches the manifest they point at and materializes every
// dataset it lists.
package cli

import (
	"context"
	"fmt"

	"github.com/cperrin88/jsonfetch/internal/logger"
	"github.com/cperrin88/jsonfetch/pkg/archive"
	"github.com/cperrin88/jsonfetch/pkg/config"
	"github.com/cperrin88/jsonfetch/pkg/download"
	"github.com/cperrin88/jsonfetch/pkg/fsutil"
	"github.com/cperrin88/jsonfetch/pkg/jobparams"
	"github.com/cperrin88/jsonfetch/pkg/metadata"
	"github.com/cperrin88/jsonfetch/pkg/orchestrator"
)

// Options carries the command line of one invocation.
type Options struct {
	JobParamFile string
	Path         string
	AppData      string
	ConfigPath   string
	LogLevel     string
}

// Run executes one fetch job.
func Run(ctx context.Context, opts Options) (err error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	initLogger(cfg)
	logger.Debug("Effective settings", toFields(cfg.ToMap()))

	if err := fsutil.EnsureDir(opts.AppData); err != nil {
		return fmt.Errorf("failed to create appdata directory %s: %w", opts.AppData, err)
	}

	params, err := jobparams.Load(opts.JobParamFile)
	if err != nil {
		return err
	}

	sink, err := metadata.Create(params.JobConfig.MetadataFile)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close metadata file: %w", closeErr)
		}
	}()

	orch := newOrchestrator(cfg, sink)

	logger.Info("Fetching datasets", logger.Fields{"url": params.ParamDict.URL})
	state, err := orch.Run(ctx, orchestrator.Job{
		Params:  params,
		Path:    opts.Path,
		AppData: opts.AppData,
	})
	if err != nil {
		return err
	}

	logger.Success("Datasets fetched", logger.Fields{
		"datasets": state.Datasets,
		"skipped":  state.Skipped,
		"records":  sink.Count(),
	})
	return nil
}

func newOrchestrator(cfg *config.Config, sink orchestrator.MetadataSink) *orchestrator.Orchestrator {
	dl := download.NewManager(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent).
		WithBufferSize(cfg.Settings.BufferSize).
		WithAuth(cfg.ToAuthMap())

	var resolver download.PathResolver = download.JoinResolver{}
	if cfg.Settings.StrictExtraPaths {
		resolver = download.ContainedResolver{}
	}

	return orchestrator.New(
		dl,
		download.NewExtraFetcher(dl, resolver),
		archive.NewManager(),
		sink,
		progressHooks(),
	)
}

func toFields(m map[string]string) logger.Fields {
	fields := make(logger.Fields, len(m))
	for k, v := range m {
		fields[k] = v
	}
	return fields
}

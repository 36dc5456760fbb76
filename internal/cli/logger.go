package cli

import (
	"github.com/cperrin88/jsonfetch/internal/logger"
	"github.com/cperrin88/jsonfetch/pkg/config"
	"github.com/cperrin88/jsonfetch/pkg/orchestrator"
	"github.com/google/uuid"
)

// initLogger configures the process logger for one run and tags every line
// with a fresh run id, which it returns.
func initLogger(cfg *config.Config) string {
	logger.InitLogger(cfg.Settings.LogLevel, logger.FormatText)

	runID := uuid.NewString()
	logger.SetBaseFields(logger.Fields{"run_id": runID})
	return runID
}

// progressHooks forwards orchestrator events to the debug log.
func progressHooks() orchestrator.Hooks {
	return orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		fields := logger.Fields{"phase": e.Phase}
		if e.ID != "" {
			fields["dataset"] = e.ID
		}
		if e.Msg != "" {
			fields["detail"] = e.Msg
		}
		logger.Debug("Progress", fields)
	}}
}

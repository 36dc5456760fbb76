package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cperrin88/jsonfetch/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	var opts cli.Options

	cmd := &cobra.Command{
		Use:   "jsonfetch --json_param_file FILE --path DIR --appdata DIR",
		Short: "Fetch datasets listed by a JSON data source",
		Long: `jsonfetch reads a job parameter file, downloads the JSON manifest its URL
parameter points at and fetches every dataset the manifest lists. The first
dataset lands in output1, later ones under --path, archives are expanded into
--appdata, and one metadata line per dataset is written for the job runner.`,
		Version:      cli.Version,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.Run(cmd.Context(), opts)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.Flags().StringVarP(&opts.JobParamFile, "json_param_file", "j", "", "job parameter file written by the runner")
	cmd.Flags().StringVarP(&opts.Path, "path", "p", "", "directory for datasets after the first")
	cmd.Flags().StringVarP(&opts.AppData, "appdata", "a", "", "directory for archives and their members")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path (default: auto-detect)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	for _, name := range []string{"json_param_file", "path", "appdata"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

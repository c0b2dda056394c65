package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ligustah/segfetch/internal/config"
	"github.com/ligustah/segfetch/internal/coordinator"
	"github.com/ligustah/segfetch/internal/downloader"
	"github.com/ligustah/segfetch/internal/progress"
	"github.com/ligustah/segfetch/pkg/parts"
)

func newRunCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch all parts and combine them",
		Long: `Fetch every part concurrently, wait for all of them up to the timeout, and
combine them into complete_file.txt only if every part succeeded in time.
Any failure or timeout cancels the remaining parts. Part artifacts are
removed afterwards either way.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &f)
			if err != nil {
				return withExit(ExitInvalidArgs, err)
			}
			return runDownload(cmd, cfg)
		},
	}
	addStorageFlags(cmd, &f)
	addRunFlags(cmd, &f)
	return cmd
}

func runDownload(cmd *cobra.Command, cfg config.Config) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	bkt, err := openBucket(cmd, cfg.Bucket)
	if err != nil {
		return withExit(ExitStorageError, err)
	}
	defer bkt.Close()

	kind, err := coordinator.ParseKind(cfg.Coordinator)
	if err != nil {
		return withExit(ExitInvalidArgs, err)
	}

	logger := log.New(out, "[segfetch] ", 0)

	var reporter *progress.Reporter
	if cfg.Progress {
		reporter = progress.NewReporter(progress.Options{
			TotalParts:  cfg.Parts,
			Timeout:     cfg.Timeout,
			Coordinator: string(kind),
			Output:      cmd.ErrOrStderr(),
		})
	}

	res, err := downloader.Run(ctx, parts.NewStore(bkt, cfg.Prefix), downloader.Options{
		Parts:        cfg.Parts,
		Timeout:      cfg.Timeout,
		Coordinator:  kind,
		Feed:         cfg.NewFeed(),
		DrainTimeout: cfg.DrainTimeout,
		Progress:     reporter,
		Logger:       logger,
	})
	if err != nil {
		return withExit(ExitGeneralError, err)
	}

	// A failed run is reported, not propagated as a process error.
	if res.Succeeded() {
		fmt.Fprintln(out, "download complete")
	} else {
		fmt.Fprintf(out, "timeout/error, parts incomplete (%v)\n", res.Err())
	}
	return nil
}

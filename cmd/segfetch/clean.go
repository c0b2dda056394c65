package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ligustah/segfetch/internal/downloader"
	"github.com/ligustah/segfetch/pkg/parts"
)

// newCleanCmd removes every artifact a run may have left behind.
func newCleanCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove part artifacts and the combined artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &f)
			if err != nil {
				return withExit(ExitInvalidArgs, err)
			}

			bkt, err := openBucket(cmd, cfg.Bucket)
			if err != nil {
				return withExit(ExitStorageError, err)
			}
			defer bkt.Close()

			out := cmd.OutOrStdout()
			logger := log.New(out, "[segfetch] ", 0)
			if err := downloader.Clean(cmd.Context(), parts.NewStore(bkt, cfg.Prefix), cfg.Parts, logger); err != nil {
				return withExit(ExitStorageError, err)
			}
			fmt.Fprintln(out, "[segfetch] Cleanup finished")
			return nil
		},
	}
	addStorageFlags(cmd, &f)
	return cmd
}

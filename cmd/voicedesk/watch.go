package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/voicedesk/internal/metrics"
	"github.com/nguyentantai21042004/voicedesk/internal/processor"
	"github.com/nguyentantai21042004/voicedesk/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Transcribe and summarize recordings dropped into the inbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			paths := cfg.Paths

			if err := ensureDirectories(paths.Inbox, paths.Output, paths.Archived); err != nil {
				return err
			}

			a, err := buildAssistant(ctx, metrics.New())
			if err != nil {
				return err
			}
			proc := processor.New(paths, a, log)

			w, err := watcher.New(paths.Inbox, processor.AudioExtensions, proc.Process, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			log.Info(ctx, "========================================")
			log.Info(ctx, "Inbox pipeline is ready!")
			log.Info(ctx, "Monitoring: %s", paths.Inbox)
			log.Info(ctx, "Output: %s", paths.Output)
			log.Info(ctx, "Concurrent: %d recordings at once", cfg.Performance.MaxConcurrent)
			log.Info(ctx, "Press Ctrl+C to stop")
			log.Info(ctx, "========================================")

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info(ctx, "Inbox pipeline stopped")
			return nil
		},
	}
}

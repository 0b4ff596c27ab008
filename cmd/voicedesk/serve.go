package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/voicedesk/internal/httpserver"
	"github.com/nguyentantai21042004/voicedesk/internal/metrics"
	"github.com/nguyentantai21042004/voicedesk/internal/session"
)

const sweepInterval = time.Minute

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the browser app",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr != "" {
				cfg.Server.Addr = addr
			}

			m := metrics.New()
			a, err := buildAssistant(ctx, m)
			if err != nil {
				return err
			}

			srv := httpserver.New(httpserver.Options{
				Assistant:   a,
				Store:       session.NewStore(cfg.Server.SessionTTL),
				Metrics:     m,
				Logger:      log,
				MaxUploadMB: cfg.Server.MaxUploadMB,
			})
			go srv.RunSweeper(ctx, sweepInterval)

			log.Info(ctx, "Open http://localhost%s in a browser. Press Ctrl+C to stop", cfg.Server.Addr)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// Command voicedesk runs the voice assistant web app (serve) or the inbox
// pipeline (watch).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/voicedesk/internal/config"
	"github.com/nguyentantai21042004/voicedesk/internal/logger"
)

var (
	cfgFile string

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "voicedesk",
	Short: "Record, transcribe and work with voice notes",
	Long: `voicedesk turns recordings into transcripts and builds on them:
a summary (PDF/DOCX), a slide deck and a chat grounded in the transcript
and uploaded PDF/CSV documents.

  voicedesk serve   browser app
  voicedesk watch   transcribe recordings dropped into the inbox folder`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log = logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "path to the YAML config file")
	rootCmd.AddCommand(newServeCmd(), newWatchCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/nguyentantai21042004/voicedesk/internal/artifact"
	"github.com/nguyentantai21042004/voicedesk/internal/assistant"
	"github.com/nguyentantai21042004/voicedesk/internal/conversation"
	"github.com/nguyentantai21042004/voicedesk/internal/extractor"
	"github.com/nguyentantai21042004/voicedesk/internal/generator"
	"github.com/nguyentantai21042004/voicedesk/internal/metrics"
	"github.com/nguyentantai21042004/voicedesk/internal/transcriber"
	"github.com/nguyentantai21042004/voicedesk/pkg/executor"
)

// buildAssistant wires the adapters and writers from cfg.
func buildAssistant(ctx context.Context, m *metrics.Metrics) (assistant.Assistant, error) {
	if err := ensureDirectories(cfg.Paths.Temp); err != nil {
		return nil, err
	}

	exec := executor.New()
	a := assistant.New(assistant.Deps{
		Transcriber: transcriber.New(cfg, exec, log),
		Generator:   generator.New(cfg.Gemini, log),
		Extractor:   extractor.New(),
		Writer:      artifact.New(cfg.Paths.Temp, cfg.PDF.FontPath),
		Metrics:     m,
		Logger:      log,
		TempDir:     cfg.Paths.Temp,
		Chat: conversation.Options{
			HistoryWindow:    cfg.Chat.HistoryWindow,
			AddonProbability: cfg.Chat.Addon(),
		},
	})

	caps := a.Capabilities()
	log.Info(ctx, "System: %s/%s, %d CPU cores", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Whisper: %s (model %s, %d threads)", cfg.Whisper.BinaryPath, cfg.Whisper.ModelPath, cfg.Whisper.Threads)
	if !caps.Transcription {
		log.Warn(ctx, "Transcription unavailable: check whisper.binary_path, whisper.model_path and ffmpeg")
	}
	if cfg.GenerationEnabled() {
		log.Info(ctx, "Gemini: %s (%d API keys)", cfg.Gemini.Model, len(cfg.Gemini.APIKeys))
	} else {
		log.Warn(ctx, "Gemini: no API key configured, summary, slides and chat are disabled")
	}
	return a, nil
}

func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

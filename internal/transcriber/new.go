package transcriber

import (
	"github.com/nguyentantai21042004/voicedesk/internal/config"
	"github.com/nguyentantai21042004/voicedesk/internal/logger"
	"github.com/nguyentantai21042004/voicedesk/pkg/executor"
)

type implTranscriber struct {
	whisper  config.WhisperConfig
	ffmpeg   config.FFmpegConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
	sem      *semaphore
}

// New creates a Transcriber backed by ffmpeg and whisper.cpp. At most
// cfg.Performance.MaxConcurrent whisper runs execute at once.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Transcriber {
	capacity := cfg.Performance.MaxConcurrent
	if capacity <= 0 {
		capacity = 1
	}
	return &implTranscriber{
		whisper:  cfg.Whisper,
		ffmpeg:   cfg.FFmpeg,
		tempDir:  cfg.Paths.Temp,
		executor: exec,
		logger:   log,
		sem:      newSemaphore(capacity),
	}
}

package processor

import (
	"time"

	"github.com/nguyentantai21042004/voicedesk/internal/assistant"
	"github.com/nguyentantai21042004/voicedesk/internal/config"
	"github.com/nguyentantai21042004/voicedesk/internal/logger"
)

type implProcessor struct {
	paths     config.PathsConfig
	assistant assistant.Assistant
	logger    logger.Logger
	now       func() time.Time
}

// New creates a Processor that runs every recording through a fresh session.
func New(paths config.PathsConfig, a assistant.Assistant, log logger.Logger) Processor {
	return &implProcessor{
		paths:     paths,
		assistant: a,
		logger:    log,
		now:       time.Now,
	}
}

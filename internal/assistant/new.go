package assistant

import (
	"time"

	"github.com/nguyentantai21042004/voicedesk/internal/artifact"
	"github.com/nguyentantai21042004/voicedesk/internal/conversation"
	"github.com/nguyentantai21042004/voicedesk/internal/extractor"
	"github.com/nguyentantai21042004/voicedesk/internal/generator"
	"github.com/nguyentantai21042004/voicedesk/internal/logger"
	"github.com/nguyentantai21042004/voicedesk/internal/metrics"
	"github.com/nguyentantai21042004/voicedesk/internal/transcriber"
)

// Deps are the collaborators of the assistant.
type Deps struct {
	Transcriber transcriber.Transcriber
	Generator   generator.Generator
	Extractor   extractor.Extractor
	Writer      artifact.Writer
	Metrics     *metrics.Metrics
	Logger      logger.Logger
	TempDir     string
	Chat        conversation.Options
}

type implAssistant struct {
	transcriber transcriber.Transcriber
	summaries   generator.Generator
	bullets     generator.Generator
	available   func() bool
	chat        *conversation.Manager
	extractor   extractor.Extractor
	writer      artifact.Writer
	metrics     *metrics.Metrics
	logger      logger.Logger
	tempDir     string
	now         func() time.Time
}

// New creates an Assistant from its dependencies.
func New(d Deps) Assistant {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	return &implAssistant{
		transcriber: d.Transcriber,
		summaries:   instrument(d.Generator, d.Metrics, "summary"),
		bullets:     instrument(d.Generator, d.Metrics, "bullets"),
		available:   d.Generator.Available,
		chat:        conversation.NewManager(instrument(d.Generator, d.Metrics, "chat"), d.Logger, d.Chat),
		extractor:   d.Extractor,
		writer:      d.Writer,
		metrics:     d.Metrics,
		logger:      d.Logger,
		tempDir:     d.TempDir,
		now:         time.Now,
	}
}

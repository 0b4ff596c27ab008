package generator

import (
	"net/http"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/voicedesk/internal/config"
	"github.com/nguyentantai21042004/voicedesk/internal/logger"
)

type implGenerator struct {
	apiKeys    []string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     logger.Logger

	mu         sync.Mutex
	currentKey int
	clients    map[int]*genai.Client
}

// New creates a Gemini-backed Generator that rotates through the configured
// API keys when one is rate limited.
func New(cfg config.GeminiConfig, log logger.Logger) Generator {
	return &implGenerator{
		apiKeys: append([]string(nil), cfg.APIKeys...),
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		logger:  log,
		clients: make(map[int]*genai.Client),
	}
}

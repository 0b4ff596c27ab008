package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv holds one or more comma separated Gemini API keys.
const APIKeyEnv = "GEMINI_API_KEY"

const defaultAddonProbability = 0.2

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Chat        ChatConfig        `yaml:"chat"`
	Paths       PathsConfig       `yaml:"paths"`
	PDF         PDFConfig         `yaml:"pdf"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
	MaxUploadMB int64         `yaml:"max_upload_mb"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
	BaseURL string   `yaml:"base_url"`
}

type ChatConfig struct {
	HistoryWindow int `yaml:"history_window"`
	// AddonProbability defaults to 0.2 when unset; 0 disables the suffix.
	AddonProbability *float64 `yaml:"addon_probability"`
}

// Addon returns the configured continuation-phrase probability.
func (c ChatConfig) Addon() float64 {
	if c.AddonProbability == nil {
		return defaultAddonProbability
	}
	return *c.AddonProbability
}

type PathsConfig struct {
	Temp     string `yaml:"temp"`
	Inbox    string `yaml:"inbox"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

// PDFConfig selects the PDF body font. FontPath points at a UTF-8 TrueType
// font; without it only text representable in cp1252 can be written.
type PDFConfig struct {
	FontPath string `yaml:"font_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads the YAML file at path, merges keys from the environment
// (and an optional .env file next to the working directory) and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Missing .env is the common case.
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	raw := os.Getenv(APIKeyEnv)
	if raw == "" {
		return
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		c.Gemini.APIKeys = keys
	}
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if p := c.Chat.Addon(); p < 0 || p > 1 {
		return fmt.Errorf("chat.addon_probability must be between 0 and 1")
	}
	if c.PDF.FontPath != "" {
		if _, err := os.Stat(c.PDF.FontPath); err != nil {
			return fmt.Errorf("pdf.font_path: %w", err)
		}
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8501"
	}
	if c.Server.SessionTTL == 0 {
		c.Server.SessionTTL = 2 * time.Hour
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 50
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Chat.HistoryWindow == 0 {
		c.Chat.HistoryWindow = 6
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = filepath.Join(os.TempDir(), "voicedesk")
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

// GenerationEnabled reports whether at least one Gemini key is configured.
func (c *Config) GenerationEnabled() bool {
	return len(c.Gemini.APIKeys) > 0
}

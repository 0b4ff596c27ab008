package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/ggml-base.bin",
					BinaryPath: "whisper-cli",
					Language:   "en",
				},
			},
			wantErr: false,
		},
		{
			name: "missing model path",
			config: Config{
				Whisper: WhisperConfig{
					BinaryPath: "whisper-cli",
				},
			},
			wantErr: true,
		},
		{
			name: "missing binary path",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath: "models/ggml-base.bin",
				},
			},
			wantErr: true,
		},
		{
			name: "addon probability out of range",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/ggml-base.bin",
					BinaryPath: "whisper-cli",
				},
				Chat: ChatConfig{AddonProbability: ptr(1.5)},
			},
			wantErr: true,
		},
		{
			name: "missing pdf font",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/ggml-base.bin",
					BinaryPath: "whisper-cli",
				},
				PDF: PDFConfig{FontPath: "fonts/does-not-exist.ttf"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Whisper: WhisperConfig{ModelPath: "m.bin", BinaryPath: "whisper-cli"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.Addr != ":8501" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.Server.SessionTTL)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q", cfg.Gemini.Model)
	}
	if cfg.Chat.HistoryWindow != 6 {
		t.Errorf("HistoryWindow = %d, want 6", cfg.Chat.HistoryWindow)
	}
	if cfg.Whisper.Language != "auto" {
		t.Errorf("Language = %q, want auto", cfg.Whisper.Language)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.Performance.MaxConcurrent)
	}
	if cfg.Chat.Addon() != 0.2 {
		t.Errorf("Addon() = %v, want 0.2", cfg.Chat.Addon())
	}
	if cfg.GenerationEnabled() {
		t.Error("GenerationEnabled() = true without keys")
	}
}

func ptr(f float64) *float64 { return &f }

func TestLoad(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9000"
  session_ttl: 30m

whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper-cli"
  language: "en"
  prompt: "meeting"

gemini:
  model: "gemini-2.5-flash"
  api_keys: ["k1", "k2"]

chat:
  addon_probability: 0

paths:
  temp: "data/tmp"

logging:
  level: "debug"
  format: "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.ModelPath != "models/test.bin" {
		t.Errorf("ModelPath = %v, want %v", cfg.Whisper.ModelPath, "models/test.bin")
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Addr = %v", cfg.Server.Addr)
	}
	if cfg.Server.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.Server.SessionTTL)
	}
	if len(cfg.Gemini.APIKeys) != 2 || !cfg.GenerationEnabled() {
		t.Errorf("APIKeys = %v", cfg.Gemini.APIKeys)
	}
	if cfg.Chat.Addon() != 0 {
		t.Errorf("Addon() = %v, explicit 0 should disable", cfg.Chat.Addon())
	}
	if cfg.Paths.Temp != "data/tmp" {
		t.Errorf("Temp = %v", cfg.Paths.Temp)
	}
}

func TestLoadEnvOverridesKeys(t *testing.T) {
	t.Setenv(APIKeyEnv, " env-a , env-b ,")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "whisper:\n  model_path: m.bin\n  binary_path: w\ngemini:\n  api_keys: [\"file\"]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Gemini.APIKeys) != 2 || cfg.Gemini.APIKeys[0] != "env-a" || cfg.Gemini.APIKeys[1] != "env-b" {
		t.Errorf("APIKeys = %v, want [env-a env-b]", cfg.Gemini.APIKeys)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

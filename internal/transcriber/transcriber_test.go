package transcriber

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/voicedesk/internal/config"
	"github.com/nguyentantai21042004/voicedesk/internal/logger"
)

const whisperJSON = `{
  "transcription": [
    {"offsets": {"from": 4200, "to": 6000}, "text": " second line"},
    {"offsets": {"from": 0, "to": 4200}, "text": " Hello there."},
    {"offsets": {"from": 6000, "to": 6500}, "text": "   "}
  ]
}`

type fakeExecutor struct {
	mu        sync.Mutex
	calls     [][]string
	whisperFn func(args []string) error
	ffmpegErr error
	available map[string]bool
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	switch name {
	case "ffmpeg":
		return "", f.ffmpegErr
	case "whisper-cli":
		if f.whisperFn != nil {
			return "", f.whisperFn(args)
		}
	}
	return "", nil
}

func (f *fakeExecutor) Available(name string) bool { return f.available[name] }

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func newTestTranscriber(t *testing.T, exec *fakeExecutor) Transcriber {
	t.Helper()
	model := filepath.Join(t.TempDir(), "ggml-base.bin")
	require.NoError(t, os.WriteFile(model, []byte("model"), 0644))

	cfg := &config.Config{
		Whisper: config.WhisperConfig{ModelPath: model, BinaryPath: "whisper-cli"},
		Paths:   config.PathsConfig{Temp: t.TempDir()},
	}
	require.NoError(t, cfg.Validate())
	return New(cfg, exec, logger.Nop())
}

func TestTranscribe(t *testing.T) {
	exec := &fakeExecutor{
		whisperFn: func(args []string) error {
			return os.WriteFile(argAfter(args, "-of")+".json", []byte(whisperJSON), 0644)
		},
	}
	tr := newTestTranscriber(t, exec)

	segments, err := tr.Transcribe(context.Background(), "clip.webm")
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, Segment{Start: 0, End: 4.2, Text: "Hello there."}, segments[0])
	assert.Equal(t, 4.2, segments[1].Start)
	assert.Equal(t, "[0.00s] Hello there.\n[4.20s] second line", Format(segments))

	require.Len(t, exec.calls, 2)
	assert.Equal(t, "ffmpeg", exec.calls[0][0])
	assert.Contains(t, exec.calls[0], "clip.webm")
	assert.Equal(t, "whisper-cli", exec.calls[1][0])
	assert.Contains(t, exec.calls[1], "-oj")
	assert.Equal(t, "auto", argAfter(exec.calls[1], "-l"))
}

func TestTranscribeFFmpegFailure(t *testing.T) {
	exec := &fakeExecutor{ffmpegErr: errors.New("invalid data found")}
	tr := newTestTranscriber(t, exec)

	_, err := tr.Transcribe(context.Background(), "broken.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg normalize audio")
	assert.Len(t, exec.calls, 1, "whisper must not run after ffmpeg fails")
}

func TestTranscribeMissingOutput(t *testing.T) {
	exec := &fakeExecutor{}
	tr := newTestTranscriber(t, exec)

	_, err := tr.Transcribe(context.Background(), "clip.wav")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "read whisper output"))
}

func TestAvailable(t *testing.T) {
	exec := &fakeExecutor{available: map[string]bool{"ffmpeg": true}}
	tr := newTestTranscriber(t, exec)
	assert.False(t, tr.Available())

	exec.available["whisper-cli"] = true
	assert.True(t, tr.Available())
}

func TestParseSegmentsInvalid(t *testing.T) {
	_, err := parseSegments([]byte("not json"))
	assert.Error(t, err)
}

func TestFormatEmpty(t *testing.T) {
	assert.Equal(t, "", Format(nil))
}

package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// whisperOutput mirrors the subset of whisper.cpp's -oj output we read.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Available reports whether both binaries are installed and the model exists.
func (t *implTranscriber) Available() bool {
	if _, err := os.Stat(t.whisper.ModelPath); err != nil {
		return false
	}
	return t.executor.Available(t.ffmpeg.BinaryPath) && t.executor.Available(t.whisper.BinaryPath)
}

// Transcribe normalizes the audio, runs whisper.cpp and returns its segments
// ordered by start time.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	startTime := time.Now()

	if err := os.MkdirAll(t.tempDir, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	workDir, err := os.MkdirTemp(t.tempDir, "transcribe-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	wavPath := filepath.Join(workDir, "audio.wav")
	if err := t.normalizeAudio(ctx, audioPath, wavPath); err != nil {
		return nil, err
	}

	if err := t.sem.acquire(ctx); err != nil {
		return nil, fmt.Errorf("wait for transcription slot: %w", err)
	}
	defer t.sem.release()

	outputPrefix := filepath.Join(workDir, "transcript")
	t.logger.Info(ctx, "Starting transcription with %d threads: %s", t.whisper.Threads, audioPath)

	// -oj: JSON output, -of: output prefix (whisper appends .json)
	args := []string{
		"-m", t.whisper.ModelPath,
		"-f", wavPath,
		"-oj",
		"-of", outputPrefix,
		"-l", t.whisper.Language,
		"-t", strconv.Itoa(t.whisper.Threads),
	}
	if t.whisper.Prompt != "" {
		args = append(args, "--prompt", t.whisper.Prompt)
	}

	if _, err := t.executor.Execute(ctx, t.whisper.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	segments, err := readSegments(outputPrefix + ".json")
	if err != nil {
		return nil, err
	}

	t.logger.Info(ctx, "Transcription completed: %d segments in %s", len(segments), time.Since(startTime))
	return segments, nil
}

func readSegments(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	return parseSegments(data)
}

func parseSegments(data []byte) ([]Segment, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]Segment, 0, len(out.Transcription))
	for _, item := range out.Transcription {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Start: float64(item.Offsets.From) / 1000,
			End:   float64(item.Offsets.To) / 1000,
			Text:  text,
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
	return segments, nil
}

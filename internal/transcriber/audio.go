package transcriber

import (
	"context"
	"fmt"
	"strconv"
)

// normalizeAudio converts any input ffmpeg understands into mono PCM WAV at
// the configured sample rate, which is what whisper.cpp expects.
func (t *implTranscriber) normalizeAudio(ctx context.Context, inputPath, wavPath string) error {
	t.logger.Debug(ctx, "Normalizing audio: %s -> %s", inputPath, wavPath)

	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", strconv.Itoa(t.ffmpeg.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	if _, err := t.executor.Execute(ctx, t.ffmpeg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg normalize audio: %w", err)
	}
	return nil
}

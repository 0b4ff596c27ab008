package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// publish moves a generated temp file into the output directory as name.
func (p *implProcessor) publish(src, name string) (string, error) {
	dst := filepath.Join(p.paths.Output, name)
	if err := moveFile(src, dst); err != nil {
		return "", fmt.Errorf("publish %s: %w", name, err)
	}
	return dst, nil
}

// moveToArchived moves the processed recording out of the inbox. An existing
// file with the same name is never overwritten.
func (p *implProcessor) moveToArchived(ctx context.Context, audioPath string) error {
	filename := filepath.Base(audioPath)
	destPath := filepath.Join(p.paths.Archived, filename)

	if _, err := os.Stat(destPath); err == nil {
		ext := filepath.Ext(filename)
		stamp := p.now().Format("20060102-150405")
		destPath = filepath.Join(p.paths.Archived, strings.TrimSuffix(filename, ext)+"_"+stamp+ext)
	}

	p.logger.Info(ctx, "Archiving: %s -> %s", audioPath, destPath)
	return moveFile(audioPath, destPath)
}

// moveFile renames src to dst, copying when they are on different devices.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/voicedesk/internal/logger"
	"github.com/nguyentantai21042004/voicedesk/internal/session"
)

// Process transcribes audioPath, writes the transcript and, when generation
// is configured, the summary next to it in the output directory. The source
// recording is archived afterwards.
func (p *implProcessor) Process(ctx context.Context, audioPath string) error {
	startTime := p.now()
	filename := filepath.Base(audioPath)
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))

	st := session.NewState()
	ctx = logger.WithSession(ctx, "inbox:"+stem)
	defer p.assistant.Discard(ctx, &st)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing recording: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Transcribe
	if err := p.transcribe(ctx, &st, audioPath); err != nil {
		return err
	}

	// Step 2: Transcript as text and PDF
	var outputs []string
	txtPath := filepath.Join(p.paths.Output, stem+".txt")
	if err := os.WriteFile(txtPath, []byte(st.OriginalTranscript+"\n"), 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	outputs = append(outputs, txtPath)

	if out, err := p.export(ctx, stem+"_transcript.pdf", func() (string, error) {
		return p.assistant.ExportTranscriptPDF(ctx, &st, false)
	}); err == nil {
		outputs = append(outputs, out)
	}

	// Step 3: Summary, only when a key is configured
	if p.assistant.Capabilities().Generation {
		outputs = append(outputs, p.summarize(ctx, &st, stem)...)
	} else {
		p.logger.Info(ctx, "Text generation not configured, skipping summary")
	}

	// Step 4: Archive the source
	if err := p.moveToArchived(ctx, audioPath); err != nil {
		p.logger.Warn(ctx, "Failed to move recording to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	for _, o := range outputs {
		p.logger.Info(ctx, "Output: %s", o)
	}
	p.logger.Info(ctx, "Processing time: %s", p.now().Sub(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")

	return nil
}

func (p *implProcessor) transcribe(ctx context.Context, st *session.State, audioPath string) error {
	f, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	if err := p.assistant.TranscribeAudio(ctx, st, filepath.Base(audioPath), f); err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	return nil
}

// summarize writes the summary as Markdown, PDF and DOCX. Failures are
// logged and leave the other outputs in place.
func (p *implProcessor) summarize(ctx context.Context, st *session.State, stem string) []string {
	summary, err := p.assistant.Summary(ctx, st)
	if err != nil {
		p.logger.Error(ctx, "Summary failed: %v", err)
		return nil
	}

	var outputs []string
	mdPath := filepath.Join(p.paths.Output, stem+"_summary.md")
	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n", stem, p.now().Format("2006-01-02 15:04"), summary)
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		p.logger.Warn(ctx, "Failed to write %s: %v", mdPath, err)
	} else {
		outputs = append(outputs, mdPath)
	}

	if out, err := p.export(ctx, stem+"_summary.pdf", func() (string, error) {
		return p.assistant.ExportSummaryPDF(ctx, st)
	}); err == nil {
		outputs = append(outputs, out)
	}
	if out, err := p.export(ctx, stem+"_summary.docx", func() (string, error) {
		return p.assistant.ExportSummaryDocx(ctx, st)
	}); err == nil {
		outputs = append(outputs, out)
	}
	return outputs
}

// export runs one artifact export and publishes the result as name. Failures
// are logged; the remaining outputs are still produced.
func (p *implProcessor) export(ctx context.Context, name string, fn func() (string, error)) (string, error) {
	path, err := fn()
	if err == nil {
		path, err = p.publish(path, name)
	}
	if err != nil {
		p.logger.Warn(ctx, "Skipping %s: %v", name, err)
		return "", err
	}
	return path, nil
}

package assistant

import (
	"context"

	"github.com/nguyentantai21042004/voicedesk/internal/generator"
	"github.com/nguyentantai21042004/voicedesk/internal/metrics"
)

// instrumented counts every generation call under kind.
type instrumented struct {
	generator.Generator
	metrics *metrics.Metrics
	kind    string
}

func instrument(g generator.Generator, m *metrics.Metrics, kind string) generator.Generator {
	return &instrumented{Generator: g, metrics: m, kind: kind}
}

func (i *instrumented) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := i.Generator.Generate(ctx, prompt)
	i.metrics.ObserveGeneration(i.kind, err)
	return text, err
}

package generator

import "context"

// Generator sends a prompt to a hosted text model and returns its reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Available reports whether any API key is configured.
	Available() bool
}

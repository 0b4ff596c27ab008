package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrNoAPIKey is returned when generation is attempted without any key.
var ErrNoAPIKey = errors.New("no Gemini API key configured")

func (g *implGenerator) Available() bool {
	return len(g.apiKeys) > 0
}

// Generate sends prompt to Gemini. Rotates API keys on 429 / quota errors.
func (g *implGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", ErrNoAPIKey
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		idx := g.keyIndex()

		client, err := g.client(ctx, idx)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			if isRateLimited(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if text := responseText(result); text != "" {
			return text, nil
		}
		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGenerator) keyIndex() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey
}

// rotateKey advances past idx unless another caller already rotated.
func (g *implGenerator) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func (g *implGenerator) client(ctx context.Context, idx int) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[idx]; ok {
		return c, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     g.apiKeys[idx],
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	}
	if g.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	g.clients[idx] = c
	return c, nil
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

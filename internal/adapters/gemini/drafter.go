package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"certwatch/internal/application"
	"certwatch/internal/ports"
)

// Drafter implements ports.Drafter using the Google Gemini API
type Drafter struct {
	apiKey string
	model  string
}

// Ensure Drafter implements the port
var _ ports.Drafter = (*Drafter)(nil)

// Option configures the Drafter
type Option func(*Drafter)

// WithModel sets the Gemini model to use
func WithModel(model string) Option {
	return func(d *Drafter) {
		d.model = model
	}
}

// NewDrafter creates a Gemini drafter
func NewDrafter(apiKey string, opts ...Option) *Drafter {
	d := &Drafter{
		apiKey: apiKey,
		model:  "gemini-1.5-flash", // fast and cheap, fine for short emails
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Available returns true if an API key is configured
func (d *Drafter) Available() bool {
	return d.apiKey != ""
}

// Draft sends the prompt to Gemini and returns the generated body
func (d *Drafter) Draft(ctx context.Context, prompt string) (string, error) {
	if !d.Available() {
		return "", fmt.Errorf("gemini API key: %w", application.ErrNotConfigured)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(d.apiKey))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	defer client.Close()

	resp, err := client.GenerativeModel(d.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	body, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return body, nil
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", application.ErrEmptyDraft
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	body := strings.TrimSpace(b.String())
	if body == "" {
		return "", application.ErrEmptyDraft
	}
	return body, nil
}

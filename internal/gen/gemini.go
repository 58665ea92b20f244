package gen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DefaultModel matches the backend the prompts were tuned against.
const DefaultModel = "gemini-2.5-flash"

// Gemini is the Google generative backend.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, &FatalError{StatusCode: http.StatusUnauthorized, Message: "GEMINI_API_KEY is not set"}
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Generate runs one prompt through the model and returns the joined text
// parts of the first candidate.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	m := g.client.GenerativeModel(g.model)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &RetryableError{StatusCode: 0, Message: "empty response from model"}
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}

// classify maps transport errors onto the retryable/fatal split: rate limits
// and server-side failures retry, auth and bad configuration never do.
func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
			return &RetryableError{StatusCode: apiErr.Code, Message: apiErr.Message}
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return &FatalError{StatusCode: apiErr.Code, Message: apiErr.Message}
		case apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "api key"):
			return &FatalError{StatusCode: apiErr.Code, Message: apiErr.Message}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &RetryableError{StatusCode: 0, Message: err.Error()}
	}
	return fmt.Errorf("gemini generate: %w", err)
}

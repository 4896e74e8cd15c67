package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/riskibarqy/goals-api/internal/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/option"
)

const (
	DefaultModel       = "gemini-2.5-flash"
	defaultTemperature = 0.3
)

type ClientConfig struct {
	APIKey string
	Model  string
}

// Client answers free-form prompts with a Gemini model.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	name := strings.TrimSpace(cfg.Model)
	if name == "" {
		name = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(name)
	model.SetTemperature(defaultTemperature)

	return &Client{client: client, model: model, name: name}, nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("goals-api/external/gemini").Start(ctx, "gemini.Complete")
	defer span.End()
	span.SetAttributes(attribute.String("gemini.model", c.name), attribute.Int("gemini.prompt_bytes", len(prompt)))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("%w: gemini generate content: %w", usecase.ErrDependencyUnavailable, err)
	}

	text, err := textFromResponse(resp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	}
	return text, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// textFromResponse joins the text parts of the first candidate.
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("unexpected gemini response format")
	}
	return b.String(), nil
}

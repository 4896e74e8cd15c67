package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestTextFromResponse_JoinsTextParts(t *testing.T) {
	t.Parallel()

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("Salah scored "),
				genai.Blob{MIMEType: "image/png"},
				genai.Text("the most goals."),
			}},
		}},
	}

	got, err := textFromResponse(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Salah scored the most goals." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextFromResponse_Empty(t *testing.T) {
	t.Parallel()

	cases := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Blob{}}}}}},
	}
	for i, resp := range cases {
		if _, err := textFromResponse(resp); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(context.Background(), ClientConfig{APIKey: "  "}); err == nil {
		t.Fatalf("expected missing api key error")
	}
}

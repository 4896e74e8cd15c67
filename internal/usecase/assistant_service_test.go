package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	usecasemock "github.com/riskibarqy/goals-api/internal/mocks/usecase"
	"github.com/stretchr/testify/mock"
)

func TestAssistantService_Ask(t *testing.T) {
	t.Parallel()

	completer := usecasemock.NewTextCompleter(t)
	svc := NewAssistantService(completer)

	completer.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Question: Who scored most?") && strings.Contains(prompt, `"league":"epl"`)
	})).Return("  Haaland.  ", nil).Once()

	got, err := svc.Ask(context.Background(), AskInput{
		Question: "Who scored most?",
		Context:  map[string]any{"league": "epl"},
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got.Answer != "Haaland." {
		t.Fatalf("unexpected answer: %q", got.Answer)
	}
}

func TestAssistantService_Ask_Validation(t *testing.T) {
	t.Parallel()

	svc := NewAssistantService(usecasemock.NewTextCompleter(t))
	if _, err := svc.Ask(context.Background(), AskInput{Question: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Ask(context.Background(), AskInput{Question: strings.Repeat("x", maxQuestionLength+1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected long question to be rejected, got %v", err)
	}

	disabled := NewAssistantService(nil)
	if _, err := disabled.Ask(context.Background(), AskInput{Question: "hi"}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

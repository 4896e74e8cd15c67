package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
)

const (
	maxQuestionLength = 2000
	maxContextBytes   = 32 << 10
)

const assistantPreamble = "You are a football analyst answering questions about goals, " +
	"expected goals (xG) and match highlights from the top five European leagues. " +
	"Answer concisely. If the provided data does not contain the answer, say so."

type AskInput struct {
	Question string
	Context  map[string]any
}

type AskResult struct {
	Answer string `json:"answer"`
}

// AssistantService forwards questions to a text completion backend.
type AssistantService struct {
	completer TextCompleter
}

func NewAssistantService(completer TextCompleter) *AssistantService {
	return &AssistantService{completer: completer}
}

func (s *AssistantService) Ask(ctx context.Context, input AskInput) (AskResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssistantService.Ask")
	defer span.End()

	question := strings.TrimSpace(input.Question)
	if question == "" {
		return AskResult{}, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(question) > maxQuestionLength {
		return AskResult{}, fmt.Errorf("%w: question exceeds %d characters", ErrInvalidInput, maxQuestionLength)
	}
	if s.completer == nil {
		return AskResult{}, fmt.Errorf("%w: assistant is not configured", ErrDependencyUnavailable)
	}

	prompt, err := buildPrompt(question, input.Context)
	if err != nil {
		return AskResult{}, err
	}

	answer, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return AskResult{}, fmt.Errorf("complete question: %w", err)
	}
	return AskResult{Answer: strings.TrimSpace(answer)}, nil
}

func buildPrompt(question string, data map[string]any) (string, error) {
	var b strings.Builder
	b.WriteString(assistantPreamble)

	if len(data) > 0 {
		raw, err := sonic.Marshal(data)
		if err != nil {
			return "", fmt.Errorf("%w: context is not serializable: %v", ErrInvalidInput, err)
		}
		if len(raw) > maxContextBytes {
			return "", fmt.Errorf("%w: context exceeds %d bytes", ErrInvalidInput, maxContextBytes)
		}
		b.WriteString("\n\nData:\n")
		b.Write(raw)
	}

	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String(), nil
}

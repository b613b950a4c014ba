package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/snowskye/clinic-backend/internal/config"
)

// ErrNotConfigured is returned when no OpenAI API key is set. Callers show
// a fixed notice instead of failing the chat request.
var ErrNotConfigured = errors.New("assistant not configured")

// Responder produces a reply to a single user message.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Assistant answers chat messages through the OpenAI completion API with a
// fixed clinic-receptionist prompt.
type Assistant struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	clinicName  string
	logger      *zap.Logger
}

func NewAssistant(cfg config.OpenAIConfig, clinicName string, logger *zap.Logger) *Assistant {
	a := &Assistant{
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
		timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		clinicName:  clinicName,
		logger:      logger,
	}
	if cfg.APIKey != "" {
		a.client = openai.NewClient(cfg.APIKey)
	}
	return a
}

func (a *Assistant) Reply(ctx context.Context, message string) (string, error) {
	if a.client == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: a.receptionistPrompt(message),
			},
		},
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		a.logger.Error("chat completion failed", zap.Error(err))
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (a *Assistant) receptionistPrompt(message string) string {
	return strings.TrimSpace(fmt.Sprintf(`
You are the official AI assistant of %s.
You act like a professional clinic receptionist.

Responsibilities:
- Help patients
- Book appointments
- Answer clinic questions
- Provide support
- Convert visitors into patients

Rules:
- Be professional, friendly, helpful
- If user wants to book: ask for name, service, preferred date/time, and email (if not provided)
- Never claim the appointment is confirmed unless confirmation link is completed or staff confirmed it
- Keep replies concise

User message:
%s`, a.clinicName, message))
}

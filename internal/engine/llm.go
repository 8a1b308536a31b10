package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNoLLM is returned when no API key is configured.
var ErrNoLLM = errors.New("llm: no api key configured")

const llmSummaryPrompt = "Summarize the following transcript concisely in the same language. " +
	"Focus on key points, arguments, and conclusions. Keep it under 300 words."

// Input sent to the LLM is capped to keep token usage bounded.
const llmInputCap = 30000

var (
	llmOnce   sync.Once
	llmClient *openai.Client
)

func client() *openai.Client {
	llmOnce.Do(func() {
		c := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMAPIBase != "" {
			c.BaseURL = cfg.LLMAPIBase
		}
		if cfg.HTTPClient != nil {
			c.HTTPClient = cfg.HTTPClient
		}
		llmClient = openai.NewClientWithConfig(c)
	})
	return llmClient
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// SummarizeLLM asks the configured model for a summary of text.
// Returns ErrNoLLM when no key is set so callers can fall back to the
// extractive summarizer.
func SummarizeLLM(ctx context.Context, text string) (string, error) {
	if cfg.LLMAPIKey == "" {
		return "", ErrNoLLM
	}
	metrics.LLMCalls.Add(1)

	temperature := float32(cfg.LLMTemperature)
	if temperature == 0 {
		temperature = 0.3
	}
	maxTokens := cfg.LLMMaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}

	resp, err := client().CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       cfg.LLMModel,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llmSummaryPrompt},
			{Role: openai.ChatMessageRoleUser, Content: Truncate(text, llmInputCap)},
		},
	})
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	if len(resp.Choices) == 0 {
		metrics.LLMErrors.Add(1)
		return "", errors.New("llm: empty response")
	}
	return stripFences(resp.Choices[0].Message.Content), nil
}

// SummarizeBest prefers the LLM summary and falls back to extractive on
// any failure.
func SummarizeBest(ctx context.Context, text string) string {
	if s, err := SummarizeLLM(ctx, text); err == nil && s != "" {
		return s
	} else if err != nil && !errors.Is(err, ErrNoLLM) {
		slog.Warn("llm summary failed, using extractive", slog.Any("error", err))
	}
	return Summarize(text, 0, 0)
}

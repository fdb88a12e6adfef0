package enhancer

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
)

const systemPrompt = "You are a warm, skilled family historian. Rewrite the " +
	"story you are given into a polished, engaging narrative while preserving " +
	"every fact, name and date. Keep the author's voice. Reply with the " +
	"rewritten story only."

// OpenAIEnhancer enhances stories through the OpenAI chat completion API.
type OpenAIEnhancer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

var _ Enhancer = (*OpenAIEnhancer)(nil)

// NewOpenAIEnhancer builds an enhancer. Returns nil when no API key is
// configured; callers treat a nil enhancer as the feature being off.
func NewOpenAIEnhancer(apiKey, model string, timeout time.Duration) *OpenAIEnhancer {
	if apiKey == "" {
		return nil
	}
	return &OpenAIEnhancer{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

func (e *OpenAIEnhancer) Enhance(ctx context.Context, title, content string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Title: %s\n\n%s", title, content)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResult
	}

	result := strings.TrimSpace(resp.Choices[0].Message.Content)
	if result == "" {
		return "", ErrEmptyResult
	}

	log.Ctx(ctx).Debug().
		Str("model", e.model).
		Dur("latency", time.Since(start)).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("story enhancement completed")
	return result, nil
}

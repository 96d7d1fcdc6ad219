// Package llm turns structured turn results into natural-language answers.
// It sits strictly outside the routing core: the router is already done by
// the time a result reaches the renderer, and callers without an API key
// fall back to deterministic formatting.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/hualei/FinGenie/config"
	"github.com/hualei/FinGenie/internal/models"
)

const systemPrompt = `You are FinGenie, a personal finance assistant. You receive a JSON
document describing the computed result of the user's request: a debt
repayment plan, a financial metric, a stock quote or forecast, a sentiment
reading, or a budget summary.

Explain the result in plain language:
1. Lead with the headline number or recommendation.
2. Mention the key figures that support it.
3. Close with one practical next step.

Never invent numbers that are not in the document. If the document reports
an error or asks for clarification, relay that instead. Keep answers under
150 words.`

// Renderer generates prose for structured results through a chat model.
type Renderer struct {
	chatModel model.BaseChatModel
}

// NewRenderer builds a renderer against the provider the config selects.
func NewRenderer(ctx context.Context, cfg *config.Config) (*Renderer, error) {
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM API key not configured")
	}

	var chatModel model.BaseChatModel
	var err error

	switch cfg.LLMProvider {
	case "deepseek":
		chatModel, err = deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.BackendURL,
		})
	default:
		maxTokens := 1024
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   cfg.BackendURL,
			APIKey:    cfg.LLMAPIKey,
			Model:     cfg.LLMModel,
			MaxTokens: &maxTokens,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	return &Renderer{chatModel: chatModel}, nil
}

// Render produces a natural-language answer for one turn result.
func (r *Renderer) Render(ctx context.Context, result models.StructuredResult) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(fmt.Sprintf("User asked: %s\n\nResult document:\n%s", result.Utterance, payload)),
	}

	msg, err := r.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return msg.Content, nil
}

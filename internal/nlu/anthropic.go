package nlu

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// implements Oracle using Anthropic Claude
type AnthropicOracle struct {
	client anthropic.Client
	model  anthropic.Model
}

func NewAnthropicOracle(apiKey string, opts Options) (*AnthropicOracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	return &AnthropicOracle{
		client: client,
		model:  model,
	}, nil
}

func (o *AnthropicOracle) Interpret(
	ctx context.Context,
	userMessage, timelineContext string,
) (Result, error) {
	return interpret(ctx, o, userMessage, timelineContext)
}

func (o *AnthropicOracle) complete(
	ctx context.Context,
	prompt string,
) (string, error) {
	message, err := o.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     o.model,
			MaxTokens: 1024,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(prompt),
				),
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	if message == nil || len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from Anthropic")
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}

	if responseText == "" {
		return "", fmt.Errorf("no text in Anthropic response")
	}

	return responseText, nil
}

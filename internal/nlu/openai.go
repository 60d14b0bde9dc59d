package nlu

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// implements Oracle using OpenAI Chat Completions
type OpenAIOracle struct {
	client openai.Client
	model  string
}

func NewOpenAIOracle(apiKey string, opts Options) (*OpenAIOracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "gpt-5-mini"
	}

	return &OpenAIOracle{
		client: client,
		model:  model,
	}, nil
}

func (o *OpenAIOracle) Interpret(
	ctx context.Context,
	userMessage, timelineContext string,
) (Result, error) {
	return interpret(ctx, o, userMessage, timelineContext)
}

func (o *OpenAIOracle) complete(
	ctx context.Context,
	prompt string,
) (string, error) {
	completion, err := o.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model: o.model,
		},
	)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	responseText := completion.Choices[0].Message.Content
	if responseText == "" {
		return "", fmt.Errorf("no text in OpenAI response")
	}

	return responseText, nil
}

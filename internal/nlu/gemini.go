package nlu

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// implements Oracle using Google Gemini
type GeminiOracle struct {
	client *genai.Client
	model  string
}

func NewGeminiOracle(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiOracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiOracle{
		client: client,
		model:  model,
	}, nil
}

func (o *GeminiOracle) Interpret(
	ctx context.Context,
	userMessage, timelineContext string,
) (Result, error) {
	return interpret(ctx, o, userMessage, timelineContext)
}

func (o *GeminiOracle) complete(
	ctx context.Context,
	prompt string,
) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := o.client.Models.GenerateContent(ctx, o.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				responseText += part.Text
			}
		}
		if responseText != "" {
			break
		}
	}

	if responseText == "" {
		return "", fmt.Errorf("no text in Gemini response")
	}

	return responseText, nil
}

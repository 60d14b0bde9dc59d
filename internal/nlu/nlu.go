// Package nlu asks a language model what a chat message wants done to
// the subtitle timeline. Responses are untrusted free text: the intent
// is normalized here and the raw parameter text is left for the edit
// compiler to salvage.
package nlu

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mahideveloper1/Video-editor-assignment/internal/timeline"
)

// Result is the oracle's reading of one user message.
type Result struct {
	// Intent is the normalized intent label.
	Intent string
	// RawParams is the model's parameter JSON, verbatim. Empty when
	// the intent takes no parameters.
	RawParams string
}

// Oracle interprets a user message against the current timeline.
type Oracle interface {
	Interpret(
		ctx context.Context,
		userMessage, timelineContext string,
	) (Result, error)
}

// language model provider
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

type Options struct {
	Model string
}

// creates an Oracle based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Oracle, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIOracle(apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicOracle(apiKey, opts)
	case ProviderGemini:
		return NewGeminiOracle(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported oracle provider: %s", provider)
	}
}

// completer is the single-call surface each provider implements.
type completer interface {
	complete(ctx context.Context, prompt string) (string, error)
}

// paramIntents are the intents whose parameters are worth extracting.
var paramIntents = map[string]bool{
	"add_subtitle":    true,
	"modify_subtitle": true,
	"modify_style":    true,
}

// interpret runs the two-step flow shared by all providers: classify
// the intent, then extract parameters when the intent carries any.
func interpret(
	ctx context.Context,
	c completer,
	userMessage, timelineContext string,
) (Result, error) {
	intentRaw, err := c.complete(ctx, BuildIntentPrompt(userMessage))
	if err != nil {
		return Result{}, fmt.Errorf("intent classification failed: %w", err)
	}

	intent := NormalizeIntent(intentRaw)
	if !paramIntents[intent] {
		return Result{Intent: intent}, nil
	}

	paramsRaw, err := c.complete(
		ctx,
		BuildExtractionPrompt(userMessage, timelineContext),
	)
	if err != nil {
		return Result{}, fmt.Errorf("parameter extraction failed: %w", err)
	}

	return Result{Intent: intent, RawParams: cleanResponse(paramsRaw)}, nil
}

// BuildIntentPrompt creates the intent classification prompt.
func BuildIntentPrompt(userMessage string) string {
	var sb strings.Builder

	sb.WriteString("You are a subtitle editing assistant. ")
	sb.WriteString("Analyze the user's message and determine their intent.\n\n")
	sb.WriteString("Possible intents:\n")
	sb.WriteString("- add_subtitle: add a new subtitle\n")
	sb.WriteString("- modify_subtitle: change the text or timing of an existing subtitle\n")
	sb.WriteString("- modify_style: change subtitle styling (font, size, color, position)\n")
	sb.WriteString("- list_subtitles: see the current subtitles\n")
	sb.WriteString("- clear_all: remove all subtitles\n")
	sb.WriteString("- help: the user needs help\n\n")
	sb.WriteString("Respond with ONLY the intent name, nothing else.\n\n")
	sb.WriteString("User message: ")
	sb.WriteString(userMessage)

	return sb.String()
}

// BuildExtractionPrompt creates the parameter extraction prompt.
func BuildExtractionPrompt(userMessage, timelineContext string) string {
	var sb strings.Builder

	sb.WriteString("You are a subtitle parameter extractor. ")
	sb.WriteString("Extract subtitle information from the user's message.\n\n")
	sb.WriteString("Extract the following parameters:\n")
	sb.WriteString("- text: the subtitle text\n")
	sb.WriteString("- start_time: start time in seconds or time format (e.g., \"5 seconds\", \"1:30\", \"0:00:05\")\n")
	sb.WriteString("- end_time: end time in seconds or time format\n")
	sb.WriteString("- subtitle_index: which existing subtitle is meant, 0-based; -1 for the most recent; null for a new subtitle\n")
	sb.WriteString("- font_family: font name (e.g., Arial, Helvetica, Roboto)\n")
	sb.WriteString("- font_size: font size in pixels (12-72)\n")
	sb.WriteString("- font_color: color name or hex (e.g., red, #FF0000, white)\n")
	sb.WriteString("- position: top, center, or bottom\n")
	sb.WriteString("- bold: true or false\n")
	sb.WriteString("- italic: true or false\n\n")
	sb.WriteString("Respond with ONLY a JSON object containing the extracted parameters. ")
	sb.WriteString("Use null for missing values.\n")
	sb.WriteString(`Example: {"text": "Hello", "start_time": "0", "end_time": "5", "font_color": "red", "font_size": 32}`)
	sb.WriteString("\n\n")

	if timelineContext != "" {
		sb.WriteString("Current timeline:\n")
		sb.WriteString(timelineContext)
		sb.WriteString("\n\n")
	}

	sb.WriteString("User message: ")
	sb.WriteString(userMessage)

	return sb.String()
}

// TimelineContext renders a snapshot as the compact listing the
// extraction prompt embeds.
func TimelineContext(subs []timeline.Subtitle) string {
	if len(subs) == 0 {
		return "(no subtitles yet)"
	}

	var sb strings.Builder
	for i, sub := range subs {
		fmt.Fprintf(&sb, "%d: [%.1fs - %.1fs] %q\n",
			i, sub.StartTime, sub.EndTime, sub.Text)
	}
	return strings.TrimRight(sb.String(), "\n")
}

var intentRe = regexp.MustCompile(`[a-z_]+`)

// NormalizeIntent reduces a model reply to a bare intent label. Models
// occasionally wrap the label in quotes, punctuation, or a sentence;
// the first word-like token wins.
func NormalizeIntent(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(cleanResponse(raw)))
	if m := intentRe.FindString(raw); m != "" {
		return m
	}
	return raw
}

func cleanResponse(s string) string {
	s = strings.TrimSpace(s)

	fenceRe := regexp.MustCompile("```(?:json)?\\s*")
	s = fenceRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	return strings.TrimSpace(s)
}

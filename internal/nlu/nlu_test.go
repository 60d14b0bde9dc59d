package nlu

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mahideveloper1/Video-editor-assignment/internal/timeline"
)

func TestFactoryReturnsOpenAIOracle(t *testing.T) {
	oracle, err := Factory(context.Background(), ProviderOpenAI, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := oracle.(*OpenAIOracle); !ok {
		t.Errorf("expected *OpenAIOracle, got %T", oracle)
	}
}

func TestFactoryReturnsAnthropicOracle(t *testing.T) {
	oracle, err := Factory(context.Background(), ProviderAnthropic, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderAnthropic) returned error: %v", err)
	}
	if _, ok := oracle.(*AnthropicOracle); !ok {
		t.Errorf("expected *AnthropicOracle, got %T", oracle)
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	_, err := Factory(context.Background(), Provider("unknown"), "fake-key", Options{})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFactoryRequiresAPIKey(t *testing.T) {
	_, err := Factory(context.Background(), ProviderOpenAI, "", Options{})
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestNormalizeIntent(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"add_subtitle", "add_subtitle"},
		{" Add_Subtitle \n", "add_subtitle"},
		{"\"modify_style\"", "modify_style"},
		{"The intent is: help.", "the"},
		{"modify_subtitle\n", "modify_subtitle"},
		{"```\nclear_all\n```", "clear_all"},
	}

	for _, tt := range tests {
		if got := NormalizeIntent(tt.raw); got != tt.want {
			t.Errorf("NormalizeIntent(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// scripted completer for exercising the two-step flow without a
// network call
type fakeCompleter struct {
	replies []string
	calls   int
	prompts []string
	err     error
}

func (f *fakeCompleter) complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	reply := f.replies[f.calls]
	f.calls++
	return reply, nil
}

func TestInterpretExtractsParamsForEditingIntents(t *testing.T) {
	fake := &fakeCompleter{replies: []string{
		"add_subtitle",
		"```json\n{\"text\": \"Hello\"}\n```",
	}}

	result, err := interpret(context.Background(), fake, "add Hello", "")
	if err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	if result.Intent != "add_subtitle" {
		t.Errorf("Intent = %q, want add_subtitle", result.Intent)
	}
	if result.RawParams != `{"text": "Hello"}` {
		t.Errorf("RawParams = %q, fences should be stripped", result.RawParams)
	}
	if fake.calls != 2 {
		t.Errorf("made %d model calls, want 2", fake.calls)
	}
}

func TestInterpretSkipsExtractionForInformationalIntents(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"help"}}

	result, err := interpret(context.Background(), fake, "what can you do?", "")
	if err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	if result.Intent != "help" || result.RawParams != "" {
		t.Errorf("got %+v, want bare help intent", result)
	}
	if fake.calls != 1 {
		t.Errorf("made %d model calls, want 1", fake.calls)
	}
}

func TestInterpretEmbedsTimelineContext(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"modify_subtitle", "{}"}}

	_, err := interpret(context.Background(), fake, "fix the last one", "0: [0.0s - 3.0s] \"Hi\"")
	if err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	if len(fake.prompts) != 2 {
		t.Fatalf("made %d calls, want 2", len(fake.prompts))
	}
	if !strings.Contains(fake.prompts[1], "Current timeline:") {
		t.Error("extraction prompt missing timeline context")
	}
}

func TestInterpretPropagatesErrors(t *testing.T) {
	wantErr := errors.New("model unavailable")
	fake := &fakeCompleter{err: wantErr}

	_, err := interpret(context.Background(), fake, "add Hello", "")
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestTimelineContext(t *testing.T) {
	got := TimelineContext([]timeline.Subtitle{
		{Text: "Hello", StartTime: 0, EndTime: 3},
		{Text: "World", StartTime: 5.5, EndTime: 8},
	})

	want := "0: [0.0s - 3.0s] \"Hello\"\n1: [5.5s - 8.0s] \"World\""
	if got != want {
		t.Errorf("TimelineContext = %q, want %q", got, want)
	}

	if got := TimelineContext(nil); got != "(no subtitles yet)" {
		t.Errorf("empty timeline context = %q", got)
	}
}

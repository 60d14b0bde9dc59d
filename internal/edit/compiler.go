// Package edit turns an oracle-extracted parameter bag into a single
// well-formed timeline mutation.
package edit

import (
	"fmt"
	"strings"

	"github.com/mahideveloper1/Video-editor-assignment/internal/timeline"
	"github.com/mahideveloper1/Video-editor-assignment/internal/timeref"
)

// Intents that produce a mutation. Anything else is informational and
// compiles to the no-op sentinel.
const (
	IntentAddSubtitle    = "add_subtitle"
	IntentModifySubtitle = "modify_subtitle"
	IntentModifyStyle    = "modify_style"
)

// how long a subtitle runs when the oracle supplied no usable end time
const defaultDuration = 3.0

// CompileError reports a parameter combination that cannot become a
// mutation. It is scoped to one request; the timeline is untouched.
type CompileError struct {
	Field string
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("cannot compile %s: %v", e.Field, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compiler builds mutations from extracted parameters. Time-like
// fields go through the timeref parser; style fields fall back to the
// configured default style on the addition path.
type Compiler struct {
	defaults timeline.Style
}

func NewCompiler(defaults timeline.Style) *Compiler {
	return &Compiler{defaults: defaults}
}

// Compile keys off the intent. add_subtitle always inserts;
// modify_subtitle always updates; modify_style inserts when no ordinal
// was supplied (style of a new subtitle) and updates otherwise. Index
// bounds are not checked here: the raw ordinal is threaded through and
// resolved by the store at apply time.
func (c *Compiler) Compile(intent string, p Params) (timeline.Mutation, error) {
	switch intent {
	case IntentAddSubtitle:
		return c.compileInsert(p), nil
	case IntentModifySubtitle:
		return c.compileUpdate(p)
	case IntentModifyStyle:
		if p.SubtitleIndex == nil || !p.SubtitleIndex.Valid {
			return c.compileInsert(p), nil
		}
		return c.compileUpdate(p)
	default:
		return timeline.None(), nil
	}
}

// compileInsert builds a fully populated subtitle. Missing or
// unparseable values always degrade to defaults, never to an error.
func (c *Compiler) compileInsert(p Params) timeline.Mutation {
	text := ""
	if p.Text != nil {
		text = *p.Text
	}

	start := 0.0
	if p.StartTime != nil {
		if v, err := timeref.Parse(string(*p.StartTime)); err == nil {
			start = v
		}
	}

	end := start + defaultDuration
	if p.EndTime != nil {
		if v, err := timeref.Parse(string(*p.EndTime)); err == nil && v > start {
			end = v
		}
	}

	return timeline.Insert(timeline.Subtitle{
		Text:      text,
		StartTime: start,
		EndTime:   end,
		Style:     c.buildStyle(p),
	})
}

// compileUpdate carries only the supplied fields through; everything
// absent stays untouched on the target subtitle. A present but
// unparseable time is a hard failure here, since unlike the addition
// path there is no default that would not overwrite the existing value.
func (c *Compiler) compileUpdate(p Params) (timeline.Mutation, error) {
	index := -1
	if p.SubtitleIndex != nil && p.SubtitleIndex.Valid {
		index = p.SubtitleIndex.Value
	}

	var fields timeline.FieldPatch
	fields.Text = p.Text

	if p.StartTime != nil {
		v, err := timeref.Parse(string(*p.StartTime))
		if err != nil {
			return timeline.None(), &CompileError{Field: "start_time", Err: err}
		}
		fields.StartTime = &v
	}
	if p.EndTime != nil {
		v, err := timeref.Parse(string(*p.EndTime))
		if err != nil {
			return timeline.None(), &CompileError{Field: "end_time", Err: err}
		}
		fields.EndTime = &v
	}

	fields.FontFamily = p.FontFamily
	fields.FontColor = p.FontColor
	fields.BackgroundColor = p.BackgroundColor
	fields.Bold = p.Bold
	fields.Italic = p.Italic

	if p.FontSize != nil && p.FontSize.Valid {
		if size := p.FontSize.Value; validFontSize(size) {
			fields.FontSize = &size
		}
	}
	if p.Position != nil {
		if pos, ok := parsePosition(*p.Position); ok {
			fields.Position = &pos
		}
	}

	return timeline.Update(index, fields), nil
}

// buildStyle takes supplied style values and falls back to the
// configured defaults for everything absent or out of range.
func (c *Compiler) buildStyle(p Params) timeline.Style {
	style := c.defaults

	if p.FontFamily != nil && *p.FontFamily != "" {
		style.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil && p.FontSize.Valid {
		if size := p.FontSize.Value; validFontSize(size) {
			style.FontSize = size
		}
	}
	if p.FontColor != nil && *p.FontColor != "" {
		style.FontColor = *p.FontColor
	}
	if p.Position != nil {
		if pos, ok := parsePosition(*p.Position); ok {
			style.Position = pos
		}
	}
	if p.BackgroundColor != nil && *p.BackgroundColor != "" {
		style.BackgroundColor = *p.BackgroundColor
	}
	if p.Bold != nil {
		style.Bold = *p.Bold
	}
	if p.Italic != nil {
		style.Italic = *p.Italic
	}

	return style
}

func validFontSize(size int) bool {
	return size >= 12 && size <= 72
}

func parsePosition(s string) (timeline.Position, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return timeline.PositionTop, true
	case "center", "middle":
		return timeline.PositionCenter, true
	case "bottom":
		return timeline.PositionBottom, true
	default:
		return "", false
	}
}

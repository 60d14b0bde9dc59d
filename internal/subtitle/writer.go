// Package subtitle serializes a timeline to subtitle file formats.
package subtitle

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mahideveloper1/Video-editor-assignment/internal/timeline"
)

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatASS Format = "ass"
)

// interface for writing a timeline to a subtitle file
type Writer interface {
	Write(subs []timeline.Subtitle, path string) error
}

// SubRip format; styling is limited to bold/italic tags
type SRTWriter struct{}

// Advanced SubStation Alpha format with full style support
type ASSWriter struct {
	PlayResX int
	PlayResY int
}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatASS:
		return &ASSWriter{PlayResX: 1920, PlayResY: 1080}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func (w *SRTWriter) Write(subs []timeline.Subtitle, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(renderSRT(subs)), 0644)
}

func renderSRT(subs []timeline.Subtitle) string {
	var sb strings.Builder

	for i, sub := range timeline.Chronological(subs) {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(sub.StartTime),
			formatSRTTime(sub.EndTime)))

		sb.WriteString(srtStyledText(sub.Text, sub.Style))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// srtStyledText applies the HTML-like tags SRT supports. Font family
// and color need the ASS format or burn-in filters.
func srtStyledText(text string, style timeline.Style) string {
	if style.Bold {
		text = "<b>" + text + "</b>"
	}
	if style.Italic {
		text = "<i>" + text + "</i>"
	}
	return text
}

func (w *ASSWriter) Write(subs []timeline.Subtitle, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(w.render(subs)), 0644)
}

func (w *ASSWriter) render(subs []timeline.Subtitle) string {
	ordered := timeline.Chronological(subs)

	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString(fmt.Sprintf("PlayResX: %d\n", w.PlayResX))
	sb.WriteString(fmt.Sprintf("PlayResY: %d\n", w.PlayResY))
	sb.WriteString("WrapStyle: 0\n\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")

	for _, name := range uniqueStyleNames(ordered) {
		sb.WriteString(assStyleLine(name.name, name.style))
		sb.WriteString("\n")
	}

	sb.WriteString("\n[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, sub := range ordered {
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			formatASSTime(sub.StartTime),
			formatASSTime(sub.EndTime),
			styleName(sub.Style),
			escapeASSText(sub.Text)))
	}

	return sb.String()
}

type namedStyle struct {
	name  string
	style timeline.Style
}

// uniqueStyleNames deduplicates styles in first-appearance order so
// each distinct configuration is emitted once.
func uniqueStyleNames(subs []timeline.Subtitle) []namedStyle {
	seen := make(map[string]bool)
	var out []namedStyle

	for _, sub := range subs {
		name := styleName(sub.Style)
		if !seen[name] {
			seen[name] = true
			out = append(out, namedStyle{name: name, style: sub.Style})
		}
	}

	if !seen["Default"] && len(out) == 0 {
		out = append(out, namedStyle{name: "Default", style: timeline.Style{
			FontFamily: "Arial",
			FontSize:   32,
			FontColor:  "white",
			Position:   timeline.PositionBottom,
		}})
	}

	return out
}

func styleName(style timeline.Style) string {
	family := strings.ReplaceAll(style.FontFamily, " ", "")
	color := strings.TrimPrefix(style.FontColor, "#")
	if len(color) > 6 {
		color = color[:6]
	}
	return fmt.Sprintf("%s_%d_%s", family, style.FontSize, color)
}

func assStyleLine(name string, style timeline.Style) string {
	primary := assColor(style.FontColor)

	back := "&H00000000"
	if style.BackgroundColor != "" {
		back = assColor(style.BackgroundColor)
	}

	bold := "0"
	if style.Bold {
		bold = "-1"
	}
	italic := "0"
	if style.Italic {
		italic = "-1"
	}

	// numpad alignment: 2 bottom-center, 5 middle-center, 8 top-center
	alignment := "2"
	switch style.Position {
	case timeline.PositionTop:
		alignment = "8"
	case timeline.PositionCenter:
		alignment = "5"
	}

	return fmt.Sprintf(
		"Style: %s,%s,%d,%s,%s,&H00000000,%s,%s,%s,0,0,100,100,0,0,1,2,1,%s,10,10,20,1",
		name, style.FontFamily, style.FontSize,
		primary, primary, back,
		bold, italic, alignment,
	)
}

// formatSRTTime renders seconds as HH:MM:SS,mmm.
func formatSRTTime(seconds float64) string {
	total := int(math.Round(seconds * 1000))
	hours := total / 3600000
	minutes := (total % 3600000) / 60000
	secs := (total % 60000) / 1000
	millis := total % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// formatASSTime renders seconds as H:MM:SS.cc.
func formatASSTime(seconds float64) string {
	total := int(math.Round(seconds * 100))
	hours := total / 360000
	minutes := (total % 360000) / 6000
	secs := (total % 6000) / 100
	centis := total % 100

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

func escapeASSText(text string) string {
	return strings.ReplaceAll(text, "\n", "\\N")
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

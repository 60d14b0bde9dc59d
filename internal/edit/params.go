package edit

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Params is the closed set of fields the language-model oracle may
// extract from a user message. Every field is tri-state: a nil pointer
// means absent or null, a set pointer carries the extracted value. The
// oracle's output is untrusted free text, so numeric fields tolerate
// both JSON numbers and numeric strings.
type Params struct {
	Text          *string   `json:"text"`
	StartTime     *TimeText `json:"start_time"`
	EndTime       *TimeText `json:"end_time"`
	SubtitleIndex *FlexInt  `json:"subtitle_index"`

	FontFamily      *string  `json:"font_family"`
	FontSize        *FlexInt `json:"font_size"`
	FontColor       *string  `json:"font_color"`
	Position        *string  `json:"position"`
	BackgroundColor *string  `json:"background_color"`
	Bold            *bool    `json:"bold"`
	Italic          *bool    `json:"italic"`
}

// TimeText holds a time expression as delivered by the oracle, which
// may arrive as a JSON string ("1:30") or a bare number (5).
type TimeText string

func (t *TimeText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = TimeText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = TimeText(n.String())
		return nil
	}
	// Unusable shape; treat as empty rather than failing the whole bag.
	*t = ""
	return nil
}

// FlexInt is an integer that also accepts JSON floats and numeric
// strings. An unusable shape leaves Valid false, making the field
// behave as absent rather than silently targeting value zero.
type FlexInt struct {
	Value int
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			*f = FlexInt{Value: int(i), Valid: true}
			return nil
		}
		if v, err := n.Float64(); err == nil {
			*f = FlexInt{Value: int(v), Valid: true}
			return nil
		}
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*f = FlexInt{Value: i, Valid: true}
			return nil
		}
	}
	*f = FlexInt{}
	return nil
}

// DecodeParams parses the oracle's raw parameter text. Markdown code
// fences are stripped first; if the remainder is not valid JSON, the
// first brace-delimited object substring is tried instead. When that
// also fails the result is the empty bag, which the addition path
// degrades to an empty subtitle at 0.0-3.0 rather than an error.
func DecodeParams(raw string) Params {
	raw = stripCodeFences(raw)

	var p Params
	if err := json.Unmarshal([]byte(raw), &p); err == nil {
		return p
	}

	if obj, ok := extractObject(raw); ok {
		if err := json.Unmarshal(obj, &p); err == nil {
			return p
		}
	}

	return Params{}
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractObject scans for the first position where a complete JSON
// object can be decoded.
func extractObject(s string) (json.RawMessage, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(s[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil {
			return raw, true
		}
	}
	return nil, false
}

// Package timeline owns the ordered subtitle collection for one editing
// session and applies mutations to it atomically.
package timeline

import (
	"sort"

	"github.com/oklog/ulid/v2"
)

// subtitle placement on the video
type Position string

const (
	PositionTop    Position = "top"
	PositionCenter Position = "center"
	PositionBottom Position = "bottom"
)

// Style is the visual configuration of a single subtitle. A subtitle
// owns exactly one Style by value.
type Style struct {
	FontFamily      string   `json:"font_family"`
	FontSize        int      `json:"font_size"` // 12-72 pixels
	FontColor       string   `json:"font_color"`
	Position        Position `json:"position"`
	BackgroundColor string   `json:"background_color,omitempty"`
	Bold            bool     `json:"bold"`
	Italic          bool     `json:"italic"`
}

// Subtitle is a single timed text entry. EndTime is always strictly
// greater than StartTime and StartTime is never negative.
type Subtitle struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Style     Style   `json:"style"`
}

// Valid reports whether the subtitle satisfies the timing invariants.
func (s Subtitle) Valid() bool {
	return s.StartTime >= 0 && s.EndTime > s.StartTime
}

// NewID returns a fresh unique subtitle id.
func NewID() string {
	return "sub_" + ulid.Make().String()
}

// ResolveIndex maps a possibly negative ordinal onto a position in a
// sequence of the given length. Negative indices count back from the
// end: -1 is the last element, -2 the second to last.
func ResolveIndex(index, length int) (int, error) {
	resolved := index
	if resolved < 0 {
		resolved += length
	}
	if resolved < 0 || resolved >= length {
		return 0, ErrIndexOutOfRange
	}
	return resolved, nil
}

// Chronological returns a copy of subs sorted by start time. Entries
// with equal start times keep their relative (insertion) order.
func Chronological(subs []Subtitle) []Subtitle {
	out := make([]Subtitle, len(subs))
	copy(out, subs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

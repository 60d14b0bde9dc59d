// Package silence computes the complement of detected silent intervals
// and remaps subtitle timestamps onto the compacted time axis.
package silence

import (
	"math"

	"github.com/mahideveloper1/Video-editor-assignment/internal/timeline"
)

// Interval is a half-open [Start, End) span in seconds. Detector output
// is assumed sorted ascending and non-overlapping; intervals are never
// re-sorted or merged here.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns End - Start.
func (i Interval) Duration() float64 {
	return i.End - i.Start
}

// Compact removes the silent intervals from a timeline of the given
// total duration. It returns the keep-intervals for the downstream
// media trim and the subtitles remapped onto the shortened axis.
// Subtitles whose remapped times violate the timing invariants are
// dropped; the survivors keep their input order.
func Compact(
	silence []Interval,
	totalDuration float64,
	subs []timeline.Subtitle,
) ([]Interval, []timeline.Subtitle) {
	return KeepIntervals(silence, totalDuration), Remap(silence, subs)
}

// KeepIntervals returns the ascending, non-overlapping complement of
// the silence list over [0, totalDuration). Zero silence yields the
// single interval [0, totalDuration).
func KeepIntervals(silence []Interval, totalDuration float64) []Interval {
	var keep []Interval
	cursor := 0.0

	for _, s := range silence {
		if s.Start > cursor {
			keep = append(keep, Interval{Start: cursor, End: s.Start})
		}
		cursor = s.End
	}
	if cursor < totalDuration {
		keep = append(keep, Interval{Start: cursor, End: totalDuration})
	}

	return keep
}

// Remap shifts every subtitle onto the compacted time axis and filters
// out entries that no longer describe a valid span.
func Remap(silence []Interval, subs []timeline.Subtitle) []timeline.Subtitle {
	out := make([]timeline.Subtitle, 0, len(subs))

	for _, sub := range subs {
		newStart := round2(sub.StartTime - removedBefore(silence, sub.StartTime))
		newEnd := round2(sub.EndTime - removedBefore(silence, sub.EndTime))

		if newStart < 0 || newEnd <= newStart {
			continue
		}

		sub.StartTime = newStart
		sub.EndTime = newEnd
		out = append(out, sub)
	}

	return out
}

// removedBefore sums the durations of silence intervals that have fully
// completed by time t. An interval that merely overlaps or contains t
// contributes nothing: a timestamp inside a removed span is therefore
// under-corrected, which keeps the mapping monotone.
func removedBefore(silence []Interval, t float64) float64 {
	removed := 0.0
	for _, s := range silence {
		if s.End <= t {
			removed += s.Duration()
		}
	}
	return removed
}

// Stats summarizes how much of the media the silence list covers.
type Stats struct {
	TotalSilence       float64 `json:"total_silence_duration"`
	SilencePercentage  float64 `json:"silence_percentage"`
	NumSilentSegments  int     `json:"num_silent_segments"`
	TotalDuration      float64 `json:"total_duration"`
	DurationAfterTrims float64 `json:"duration_after_removal"`
}

// Summarize computes silence statistics for a detector result.
func Summarize(silence []Interval, totalDuration float64) Stats {
	total := 0.0
	for _, s := range silence {
		total += s.Duration()
	}

	pct := 0.0
	if totalDuration > 0 {
		pct = total / totalDuration * 100
	}

	return Stats{
		TotalSilence:       round2(total),
		SilencePercentage:  round2(pct),
		NumSilentSegments:  len(silence),
		TotalDuration:      round2(totalDuration),
		DurationAfterTrims: round2(totalDuration - total),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

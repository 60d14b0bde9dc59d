// Package timeref converts free-form time expressions into seconds.
package timeref

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hoursRe   = regexp.MustCompile(`(\d+)\s*(?:hour|hr|h)`)
	minutesRe = regexp.MustCompile(`(\d+)\s*(?:minute|min|m)`)
	secondsRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:second|sec|s)`)
)

// ParseError reports a time expression that matched none of the
// recognized forms.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized time expression: %q", e.Input)
}

// Parse converts a time expression to seconds. Three forms are tried in
// order, first success wins:
//
//  1. Colon-separated groups: "MM:SS" or "HH:MM:SS" (a colon form may
//     legitimately evaluate to zero).
//  2. Natural language: "1 minute 30 seconds", "2h 5min", "1.5s".
//  3. A bare number, interpreted as seconds.
//
// Under forms 2 and 3 the result must be greater than zero; a zero sum
// is treated as no match.
func Parse(text string) (float64, error) {
	text = strings.ToLower(strings.TrimSpace(text))

	if secs, ok := parseColonForm(text); ok {
		return secs, nil
	}

	total := 0.0
	if m := hoursRe.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		total += v * 3600
	}
	if m := minutesRe.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		total += v * 60
	}
	if m := secondsRe.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		total += v
	}
	if total > 0 {
		return total, nil
	}

	if v, err := strconv.ParseFloat(text, 64); err == nil && v > 0 {
		return v, nil
	}

	return 0, &ParseError{Input: text}
}

// parseColonForm handles "MM:SS" and "HH:MM:SS". Any group failing to
// parse as a number disqualifies the form entirely.
func parseColonForm(text string) (float64, bool) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}

	values := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, false
		}
		values[i] = v
	}

	if len(values) == 2 {
		return values[0]*60 + values[1], true
	}
	return values[0]*3600 + values[1]*60 + values[2], true
}

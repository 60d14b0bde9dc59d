package video

import (
	"regexp"
	"strconv"

	"github.com/mahideveloper1/Video-editor-assignment/internal/silence"
)

var (
	silenceStartRegex = regexp.MustCompile(`silence_start: ([\d.]+)`)
	silenceEndRegex   = regexp.MustCompile(`silence_end: ([\d.]+)`)
)

// ParseSilenceOutput extracts silence intervals from silencedetect
// stderr output. A trailing silence_start without a matching
// silence_end is dropped.
func ParseSilenceOutput(output string) []silence.Interval {
	starts := silenceStartRegex.FindAllStringSubmatch(output, -1)
	ends := silenceEndRegex.FindAllStringSubmatch(output, -1)

	n := len(starts)
	if len(ends) < n {
		n = len(ends)
	}

	intervals := make([]silence.Interval, 0, n)
	for i := 0; i < n; i++ {
		start, err1 := strconv.ParseFloat(starts[i][1], 64)
		end, err2 := strconv.ParseFloat(ends[i][1], 64)
		if err1 != nil || err2 != nil || end <= start {
			continue
		}
		intervals = append(intervals, silence.Interval{Start: start, End: end})
	}
	return intervals
}

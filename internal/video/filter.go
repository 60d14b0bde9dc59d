package video

import (
	"fmt"
	"strings"

	"github.com/mahideveloper1/Video-editor-assignment/internal/silence"
)

// BuildConcatFilter produces a filter_complex expression that trims the
// input to the given intervals and concatenates the segments, labeling
// the results [outv] and [outa].
func BuildConcatFilter(keep []silence.Interval) string {
	if len(keep) == 1 {
		seg := keep[0]
		return fmt.Sprintf(
			"[0:v]trim=start=%g:end=%g,setpts=PTS-STARTPTS[outv];"+
				"[0:a]atrim=start=%g:end=%g,asetpts=PTS-STARTPTS[outa]",
			seg.Start, seg.End, seg.Start, seg.End)
	}

	var b strings.Builder
	for i, seg := range keep {
		fmt.Fprintf(&b,
			"[0:v]trim=start=%g:end=%g,setpts=PTS-STARTPTS[v%d];",
			seg.Start, seg.End, i)
		fmt.Fprintf(&b,
			"[0:a]atrim=start=%g:end=%g,asetpts=PTS-STARTPTS[a%d];",
			seg.Start, seg.End, i)
	}
	for i := range keep {
		fmt.Fprintf(&b, "[v%d][a%d]", i, i)
	}
	fmt.Fprintf(&b, "concat=n=%d:v=1:a=1[outv][outa]", len(keep))
	return b.String()
}

package query

import (
	"context"
	"sort"
	"time"

	"github.com/ixugo/goddd/pkg/web"
)

// MediaSeekTime computes the playback offset for a target instant
// within a piece of media: the summed duration of recorded segment
// overlap between the media start and the target. Gaps between
// segments contribute nothing. ok=false when the target lies outside
// the media bounds or no segments exist for the window.
func (c Core) MediaSeekTime(ctx context.Context, in *SeekInput, opts ...QueryOption) (time.Duration, bool, error) {
	if in.TargetMs < in.StartMs || in.TargetMs > in.EndMs {
		return 0, false, nil
	}

	entries, err := c.RecordingSegments(ctx, &SegmentsInput{
		CameraIDs:  []string{in.CameraID},
		DateFilter: web.DateFilter{StartMs: in.StartMs, EndMs: in.EndMs},
	}, opts...)
	if err != nil {
		return 0, false, err
	}
	if entries == nil {
		return 0, false, nil
	}

	segs := entries[0].Result.Segments
	if len(segs) == 0 {
		return 0, false, nil
	}
	// Oldest first; the walk below stops at the first segment past the
	// target.
	sort.Slice(segs, func(i, j int) bool { return segs[i].StartTime < segs[j].StartTime })

	start := float64(in.StartMs) / 1000
	target := float64(in.TargetMs) / 1000

	var seek float64
	for _, seg := range segs {
		if seg.StartTime > target {
			break
		}
		from := max(seg.StartTime, start)
		to := min(seg.EndTime, target)
		if to > from {
			seek += to - from
		}
	}
	return time.Duration(seek * float64(time.Second)), true, nil
}

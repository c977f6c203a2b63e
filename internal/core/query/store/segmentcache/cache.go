// Package segmentcache stores recording segments per camera, backed by
// a coverage set so repeated overlapping windows (video scrubbing) do
// not re-fetch already-known data.
package segmentcache

import (
	"sync"

	"github.com/gowvp/hawk/internal/core/query"
	"github.com/gowvp/hawk/pkg/frigate"
	"github.com/gowvp/hawk/pkg/ranges"
	"github.com/ixugo/goddd/pkg/conc"
)

var _ query.SegmentStorer = &Cache{}

type Cache struct {
	cameras *conc.Map[string, *cameraSegments]
}

type cameraSegments struct {
	mu       sync.Mutex
	coverage ranges.Coverage[int64]
	segments []frigate.Segment
}

func NewCache() *Cache {
	return &Cache{cameras: conc.NewMap[string, *cameraSegments]()}
}

// Get implements query.SegmentStorer. A window is answered only when it
// was fetched in full before; partial overlap is a miss for the whole
// request. A covered window may legitimately hold zero segments after
// garbage collection.
func (c *Cache) Get(cameraID string, span ranges.Span[int64]) ([]frigate.Segment, bool) {
	cs, ok := c.cameras.Load(cameraID)
	if !ok {
		return nil, false
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if !cs.coverage.Covered(span) {
		return nil, false
	}

	out := make([]frigate.Segment, 0, len(cs.segments))
	for _, seg := range cs.segments {
		s := ranges.Span[int64]{Start: int64(seg.StartTime), End: int64(seg.EndTime)}
		if s.Overlaps(span) {
			out = append(out, seg)
		}
	}
	return out, true
}

// Add implements query.SegmentStorer. Deduplication across overlapping
// windows is the source's concern, not enforced here.
func (c *Cache) Add(cameraID string, span ranges.Span[int64], segments []frigate.Segment) {
	cs, _ := c.cameras.LoadOrStore(cameraID, &cameraSegments{})
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.segments = append(cs.segments, segments...)
	cs.coverage.Add(span)
}

// CameraIDs implements query.SegmentStorer.
func (c *Cache) CameraIDs() []string {
	out := make([]string, 0, 8)
	c.cameras.Range(func(id string, _ *cameraSegments) bool {
		out = append(out, id)
		return true
	})
	return out
}

// ExpireMatches implements query.SegmentStorer. Coverage is about "was
// this ever fetched" and survives eviction untouched.
func (c *Cache) ExpireMatches(cameraID string, match func(frigate.Segment) bool) {
	cs, ok := c.cameras.Load(cameraID)
	if !ok {
		return
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	kept := cs.segments[:0]
	for _, seg := range cs.segments {
		if !match(seg) {
			kept = append(kept, seg)
		}
	}
	cs.segments = kept
}

package segmentcache

import (
	"testing"

	"github.com/gowvp/hawk/pkg/frigate"
	"github.com/gowvp/hawk/pkg/ranges"
)

func TestCacheCoverage(t *testing.T) {
	c := NewCache()
	span := ranges.Span[int64]{Start: 1000, End: 2000}

	if _, ok := c.Get("cam-1", span); ok {
		t.Fatal("empty cache reported coverage")
	}

	segs := []frigate.Segment{
		{StartTime: 1000, EndTime: 1100},
		{StartTime: 1500, EndTime: 1600},
	}
	c.Add("cam-1", span, segs)

	got, ok := c.Get("cam-1", ranges.Span[int64]{Start: 1200, End: 1800})
	if !ok {
		t.Fatal("contained window not covered")
	}
	if len(got) != 1 || got[0].StartTime != 1500 {
		t.Fatalf("overlap filter wrong: %+v", got)
	}

	if _, ok := c.Get("cam-1", ranges.Span[int64]{Start: 1500, End: 2500}); ok {
		t.Fatal("partially overlapping window must miss")
	}
	if _, ok := c.Get("cam-2", span); ok {
		t.Fatal("wrong camera answered")
	}
}

func TestExpireMatchesKeepsCoverage(t *testing.T) {
	c := NewCache()
	span := ranges.Span[int64]{Start: 0, End: 100}
	c.Add("cam-1", span, []frigate.Segment{
		{StartTime: 10, EndTime: 20},
		{StartTime: 30, EndTime: 40},
	})

	c.ExpireMatches("cam-1", func(s frigate.Segment) bool { return s.StartTime < 25 })

	got, ok := c.Get("cam-1", span)
	if !ok {
		t.Fatal("coverage must survive eviction")
	}
	if len(got) != 1 || got[0].StartTime != 30 {
		t.Fatalf("eviction wrong: %+v", got)
	}

	// Evicting everything still leaves the window covered-but-empty.
	c.ExpireMatches("cam-1", func(frigate.Segment) bool { return true })
	got, ok = c.Get("cam-1", span)
	if !ok || len(got) != 0 {
		t.Fatalf("covered-but-empty expected, got ok=%v segs=%+v", ok, got)
	}
}

func TestCameraIDs(t *testing.T) {
	c := NewCache()
	c.Add("cam-1", ranges.Span[int64]{Start: 0, End: 1}, nil)
	c.Add("cam-2", ranges.Span[int64]{Start: 0, End: 1}, nil)

	ids := c.CameraIDs()
	if len(ids) != 2 {
		t.Fatalf("ids=%v", ids)
	}
}

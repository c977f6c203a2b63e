package query

import (
	"testing"
	"time"

	"github.com/gowvp/hawk/pkg/frigate"
)

func TestEventMediaType(t *testing.T) {
	both := frigate.Event{HasClip: true, HasSnapshot: true}
	clipOnly := frigate.Event{HasClip: true}
	snapOnly := frigate.Event{HasSnapshot: true}
	neither := frigate.Event{}

	tests := []struct {
		name         string
		wantClip     bool
		wantSnapshot bool
		ev           frigate.Event
		media        MediaType
		ok           bool
	}{
		{"no request prefers clip", false, false, both, MediaClip, true},
		{"no request falls back to snapshot", false, false, snapOnly, MediaSnapshot, true},
		{"no request no media", false, false, neither, "", false},
		{"snapshot requested", false, true, both, MediaSnapshot, true},
		{"snapshot requested but clip only", false, true, clipOnly, "", false},
		{"clip requested", true, false, both, MediaClip, true},
		{"clip requested but snapshot only", true, false, snapOnly, "", false},
		{"both requested prefers clip", true, true, both, MediaClip, true},
		{"both requested snapshot only", true, true, snapOnly, MediaSnapshot, true},
	}
	for _, tt := range tests {
		got, ok := eventMediaType(tt.wantClip, tt.wantSnapshot, tt.ev)
		if got != tt.media || ok != tt.ok {
			t.Errorf("%s: got (%q,%v) want (%q,%v)", tt.name, got, ok, tt.media, tt.ok)
		}
	}
}

func TestExpandSummaryHourAligned(t *testing.T) {
	sub := RecordingSubQuery{
		CameraID: "cam-1",
		After:    0,
		Before:   1 << 40,
	}
	days := []frigate.SummaryDay{
		{Day: "2024-06-21", Hours: []frigate.SummaryHour{{Hour: 5, Events: 2}}},
		{Day: "bogus", Hours: []frigate.SummaryHour{{Hour: 1}}},
	}
	recs := expandSummary(sub, days, time.UTC)
	if len(recs) != 1 {
		t.Fatalf("recs=%d want 1 (bogus day skipped)", len(recs))
	}
	r := recs[0]
	if r.StartTime.Hour() != 5 || r.EndTime.Sub(r.StartTime) != time.Hour || r.Events != 2 {
		t.Fatalf("unexpected recording %+v", r)
	}
}

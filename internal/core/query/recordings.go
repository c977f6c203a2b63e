package query

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gowvp/hawk/pkg/frigate"
	"golang.org/x/sync/errgroup"
)

// Recordings federates a recording query: one sub-query per camera,
// since the backend only exposes a per-camera day/hour summary. The
// summary is expanded into hour-aligned Recording records, filtered to
// hours entirely inside the requested window, and limited client-side.
// Returns nil when no sub-query could be issued.
func (c Core) Recordings(ctx context.Context, in *RecordingsInput, opts ...QueryOption) ([]Entry, error) {
	if in.StartMs <= 0 || in.EndMs <= 0 {
		return nil, nil
	}
	o := evalOptions(opts)
	cams := c.resolveCameras(ctx, in.CameraIDs)
	if len(cams) == 0 {
		return nil, nil
	}

	tz := in.Timezone
	if tz == "" {
		tz = c.timezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = c.location()
		tz = c.timezone
	}

	subs := make([]RecordingSubQuery, 0, len(cams))
	for _, cam := range cams {
		subs = append(subs, RecordingSubQuery{
			Instance: cam.Instance,
			CameraID: cam.ID,
			Camera:   cam.FrigateName,
			After:    epochSeconds(in.StartMs),
			Before:   epochSeconds(in.EndMs),
			Limit:    in.Limit,
			Timezone: tz,
		})
	}

	var mu sync.Mutex
	entries := make([]Entry, 0, len(subs))
	g, ctx := errgroup.WithContext(ctx)
	for _, sub := range subs {
		g.Go(func() error {
			res, err := c.recordingBranch(ctx, sub, o, loc)
			if err != nil {
				return err
			}
			mu.Lock()
			entries = append(entries, Entry{Query: sub, Result: res})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries, nil
}

func (c Core) recordingBranch(ctx context.Context, sub RecordingSubQuery, o callOptions, loc *time.Location) (*Result, error) {
	key := sub.CacheKey()
	if o.useCache {
		if cached, ok := c.results.Get(key); ok {
			return cached.cachedCopy(), nil
		}
	}

	days, err := c.instances[sub.Instance].RecordingSummary(ctx, sub.Camera, sub.Timezone)
	if err != nil {
		return nil, err
	}
	recs := expandSummary(sub, days, loc)
	res := &Result{
		Instance:   sub.Instance,
		Kind:       KindRecordings,
		Recordings: recs,
		ExpiresAt:  time.Now().Add(c.recordingTTL),
	}
	c.results.Set(key, res, c.recordingTTL)
	return res, nil
}

// expandSummary turns the day/hour occupancy summary into hour-aligned
// recordings. A recording qualifies only when its hour lies entirely
// within the requested window; there is no partial-hour inclusion. The
// backend has no native limit or sort for this endpoint, so qualifying
// hours are sorted newest first and truncated here.
func expandSummary(sub RecordingSubQuery, days []frigate.SummaryDay, loc *time.Location) []Recording {
	after := time.Unix(sub.After, 0)
	before := time.Unix(sub.Before, 0)

	recs := make([]Recording, 0, 24)
	for _, day := range days {
		date, err := time.ParseInLocation(time.DateOnly, day.Day, loc)
		if err != nil {
			continue
		}
		for _, h := range day.Hours {
			start := date.Add(time.Duration(h.Hour) * time.Hour)
			end := start.Add(time.Hour)
			if start.Before(after) || end.After(before) {
				continue
			}
			recs = append(recs, Recording{
				CameraID:  sub.CameraID,
				StartTime: start,
				EndTime:   end,
				Events:    h.Events,
			})
		}
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].StartTime.After(recs[j].StartTime)
	})
	if sub.Limit > 0 && len(recs) > sub.Limit {
		recs = recs[:sub.Limit]
	}
	return recs
}

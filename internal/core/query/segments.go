package query

import (
	"context"
	"sync"

	"github.com/gowvp/hawk/pkg/ranges"
	"golang.org/x/sync/errgroup"
)

// RecordingSegments federates a segment query: one sub-query per
// camera, answered by the segment cache whenever the window was fetched
// in full before. Completing fresh fetches opportunistically schedules
// the throttled cache reconciliation. Returns nil when no sub-query
// could be issued or the bounds are malformed.
func (c Core) RecordingSegments(ctx context.Context, in *SegmentsInput, opts ...QueryOption) ([]Entry, error) {
	if in.StartMs <= 0 || in.EndMs <= 0 {
		return nil, nil
	}
	o := evalOptions(opts)
	cams := c.resolveCameras(ctx, in.CameraIDs)
	if len(cams) == 0 {
		return nil, nil
	}

	subs := make([]SegmentSubQuery, 0, len(cams))
	for _, cam := range cams {
		subs = append(subs, SegmentSubQuery{
			Instance: cam.Instance,
			CameraID: cam.ID,
			Camera:   cam.FrigateName,
			After:    epochSeconds(in.StartMs),
			Before:   epochSeconds(in.EndMs),
		})
	}

	var mu sync.Mutex
	entries := make([]Entry, 0, len(subs))
	fetched := false
	g, ctx := errgroup.WithContext(ctx)
	for _, sub := range subs {
		g.Go(func() error {
			res, fresh, err := c.segmentBranch(ctx, sub, o)
			if err != nil {
				return err
			}
			mu.Lock()
			entries = append(entries, Entry{Query: sub, Result: res})
			fetched = fetched || fresh
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if fetched {
		c.scheduleSegmentGC()
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries, nil
}

func (c Core) segmentBranch(ctx context.Context, sub SegmentSubQuery, o callOptions) (*Result, bool, error) {
	span := ranges.Span[int64]{Start: sub.After, End: sub.Before}
	if o.useCache {
		if segs, ok := c.segments.Get(sub.CameraID, span); ok {
			return &Result{
				Instance: sub.Instance,
				Kind:     KindSegments,
				Segments: segs,
				Cached:   true,
			}, false, nil
		}
	}

	segs, err := c.instances[sub.Instance].RecordingSegments(ctx, sub.Camera, sub.After, sub.Before)
	if err != nil {
		return nil, false, err
	}
	c.segments.Add(sub.CameraID, span, segs)
	return &Result{
		Instance: sub.Instance,
		Kind:     KindSegments,
		Segments: segs,
	}, true, nil
}

package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gowvp/hawk/internal/core/camera"
	"github.com/gowvp/hawk/pkg/frigate"
	"golang.org/x/sync/errgroup"
)

func (q EventSubQuery) eventsParams() frigate.EventsParams {
	return frigate.EventsParams{
		Cameras:     q.Cameras,
		Labels:      q.Labels,
		Zones:       q.Zones,
		SubLabels:   q.SubLabels,
		After:       q.After,
		Before:      q.Before,
		Limit:       q.Limit,
		HasClip:     q.HasClip,
		HasSnapshot: q.HasSnapshot,
		Favorites:   q.Favorite,
	}
}

// Events federates an event query across every instance owning one of
// the requested cameras: one sub-query per instance, cache-or-fetch per
// branch, all misses fetched concurrently. Returns nil when no
// sub-query could be issued.
func (c Core) Events(ctx context.Context, in *EventsInput, opts ...QueryOption) ([]Entry, error) {
	o := evalOptions(opts)
	groups := groupByInstance(c.resolveCameras(ctx, in.CameraIDs))
	if len(groups) == 0 {
		return nil, nil
	}

	subs := make([]EventSubQuery, 0, len(groups))
	for instanceID, cams := range groups {
		for _, part := range splitByFilters(cams, in.Labels, in.Zones) {
			subs = append(subs, EventSubQuery{
				Instance:    instanceID,
				Cameras:     frigateNames(part.cams),
				Labels:      part.labels,
				Zones:       part.zones,
				SubLabels:   in.SubLabels,
				After:       epochSeconds(in.StartMs),
				Before:      epochSeconds(in.EndMs),
				Limit:       in.Limit,
				HasClip:     in.HasClip,
				HasSnapshot: in.HasSnapshot,
				Favorite:    in.Favorite,
			})
		}
	}

	var mu sync.Mutex
	entries := make([]Entry, 0, len(subs))
	g, ctx := errgroup.WithContext(ctx)
	for _, sub := range subs {
		g.Go(func() error {
			res, err := c.eventBranch(ctx, sub, o)
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

// filterPart is one slice of an instance group whose cameras share the
// same effective label/zone filters.
type filterPart struct {
	cams   []*camera.Camera
	labels []string
	zones  []string
}

// splitByFilters resolves the effective filters per camera: explicit
// query filters win; otherwise the camera's stored defaults apply.
// Cameras with differing effective filters cannot share one backend
// call, so the instance group splits into one part per filter set.
func splitByFilters(cams []*camera.Camera, labels, zones []string) []filterPart {
	parts := make(map[string]*filterPart, 1)
	order := make([]string, 0, 1)
	for _, cam := range cams {
		l, z := labels, zones
		if len(l) == 0 {
			l = cam.Labels
		}
		if len(z) == 0 {
			z = cam.Zones
		}
		key := strings.Join(l, ",") + "|" + strings.Join(z, ",")
		part, ok := parts[key]
		if !ok {
			part = &filterPart{labels: l, zones: z}
			parts[key] = part
			order = append(order, key)
		}
		part.cams = append(part.cams, cam)
	}

	out := make([]filterPart, 0, len(order))
	for _, key := range order {
		out = append(out, *parts[key])
	}
	return out
}

func (c Core) eventBranch(ctx context.Context, sub EventSubQuery, o callOptions) (*Result, error) {
	key := sub.CacheKey()
	if o.useCache {
		if cached, ok := c.results.Get(key); ok {
			return cached.cachedCopy(), nil
		}
	}

	events, err := c.instances[sub.Instance].Events(ctx, sub.eventsParams())
	if err != nil {
		return nil, err
	}
	res := &Result{
		Instance:  sub.Instance,
		Kind:      KindEvents,
		Events:    events,
		ExpiresAt: time.Now().Add(c.eventTTL),
	}
	c.results.Set(key, res, c.eventTTL)
	return res, nil
}

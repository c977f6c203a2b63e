package query

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// MediaMetadata federates a metadata query, one sub-query per instance:
// the instance's known labels and sub labels plus the set of days any
// of the grouped cameras has recordings for. Returns nil when no
// sub-query could be issued.
func (c Core) MediaMetadata(ctx context.Context, in *MetadataInput, opts ...QueryOption) ([]Entry, error) {
	o := evalOptions(opts)
	cams := c.resolveCameras(ctx, in.CameraIDs)
	groups := groupByInstance(cams)
	if len(groups) == 0 {
		return nil, nil
	}

	tz := in.Timezone
	if tz == "" {
		tz = c.timezone
	}

	var mu sync.Mutex
	entries := make([]Entry, 0, len(groups))
	g, ctx := errgroup.WithContext(ctx)
	for instanceID, group := range groups {
		sub := MetadataSubQuery{
			Instance: instanceID,
			Cameras:  frigateNames(group),
			Timezone: tz,
		}
		g.Go(func() error {
			res, err := c.metadataBranch(ctx, sub, o)
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

func (c Core) metadataBranch(ctx context.Context, sub MetadataSubQuery, o callOptions) (*Result, error) {
	key := sub.CacheKey()
	if o.useCache {
		if cached, ok := c.results.Get(key); ok {
			return cached.cachedCopy(), nil
		}
	}

	inst := c.instances[sub.Instance]
	labels, err := inst.Labels(ctx)
	if err != nil {
		return nil, err
	}
	subLabels, err := inst.SubLabels(ctx)
	if err != nil {
		return nil, err
	}

	daySet := make(map[string]struct{})
	for _, cam := range sub.Cameras {
		days, err := inst.RecordingSummary(ctx, cam, sub.Timezone)
		if err != nil {
			return nil, err
		}
		for _, d := range days {
			daySet[d.Day] = struct{}{}
		}
	}
	recordingDays := make([]string, 0, len(daySet))
	for d := range daySet {
		recordingDays = append(recordingDays, d)
	}
	sort.Strings(recordingDays)

	res := &Result{
		Instance: sub.Instance,
		Kind:     KindMetadata,
		Metadata: &MediaMetadata{
			Labels:        labels,
			SubLabels:     subLabels,
			RecordingDays: recordingDays,
		},
		ExpiresAt: time.Now().Add(c.metadataTTL),
	}
	c.results.Set(key, res, c.metadataTTL)
	return res, nil
}

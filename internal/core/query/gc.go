package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/gowvp/hawk/pkg/frigate"
)

// HourKey identifies one camera-hour for cache reconciliation. An
// explicit composite key avoids the collision risk of concatenated
// strings when camera ids contain delimiters.
type HourKey struct {
	CameraID string
	Day      string // "2006-01-02" in the gateway timezone
	Hour     int    // 0-23
}

func hourKeyOf(cameraID string, seg frigate.Segment, loc *time.Location) HourKey {
	t := time.Unix(int64(seg.StartTime), 0).In(loc)
	return HourKey{CameraID: cameraID, Day: t.Format(time.DateOnly), Hour: t.Hour()}
}

// scheduleSegmentGC requests a reconciliation pass, throttled to at
// most one per cooldown. Skipping or delaying a pass only affects cache
// size, never correctness of future fetches.
func (c Core) scheduleSegmentGC() {
	c.gc.Do(func() {
		c.CollectSegmentGarbage(context.Background())
	})
}

// CollectSegmentGarbage drops every cached segment whose hour no longer
// appears in the authoritative recording summary of its camera.
// Coverage records stay untouched: a collected window remains marked as
// fetched, so known-empty ranges are not re-fetched.
func (c Core) CollectSegmentGarbage(ctx context.Context) {
	loc := c.location()
	evicted := 0
	for _, cameraID := range c.segments.CameraIDs() {
		cam, err := c.cameras.GetCamera(ctx, cameraID)
		if err != nil || cam == nil {
			continue
		}
		inst, ok := c.instances[cam.Instance]
		if !ok {
			continue
		}
		days, err := inst.RecordingSummary(ctx, cam.FrigateName, c.timezone)
		if err != nil {
			slog.WarnContext(ctx, "segment gc summary failed", "camera", cameraID, "err", err)
			continue
		}

		keep := make(map[HourKey]struct{}, len(days)*24)
		for _, day := range days {
			for _, h := range day.Hours {
				keep[HourKey{CameraID: cameraID, Day: day.Day, Hour: int(h.Hour)}] = struct{}{}
			}
		}
		c.segments.ExpireMatches(cameraID, func(seg frigate.Segment) bool {
			_, ok := keep[hourKeyOf(cameraID, seg, loc)]
			if !ok {
				evicted++
			}
			return !ok
		})
	}
	if evicted > 0 {
		slog.Info("segment gc completed", "segments_evicted", evicted)
	}
}

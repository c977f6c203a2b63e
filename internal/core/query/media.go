package query

import (
	"context"

	"github.com/gowvp/hawk/pkg/frigate"
)

// MediaType discriminates view-level media objects.
type MediaType string

const (
	MediaClip      MediaType = "clip"
	MediaSnapshot  MediaType = "snapshot"
	MediaRecording MediaType = "recording"
)

// Media is the view-level projection of an event or recording.
type Media struct {
	Type     MediaType `json:"type"`
	CameraID string    `json:"camera_id"`
	EventID  string    `json:"event_id,omitempty"`
	Label    string    `json:"label,omitempty"`
	SubLabel string    `json:"sub_label,omitempty"`
	StartMs  int64     `json:"start_ms"`
	EndMs    int64     `json:"end_ms,omitempty"`
	Events   int       `json:"events,omitempty"` // recording media only
	Retained bool      `json:"retained,omitempty"`
}

// EventsToMedia projects event results to media objects. Items that
// cannot satisfy the requested media type, or that match no configured
// camera, are dropped silently.
func (c Core) EventsToMedia(ctx context.Context, in *EventsInput, entries []Entry) []Media {
	out := make([]Media, 0, len(entries))
	for _, e := range entries {
		sub, ok := e.Query.(EventSubQuery)
		if !ok || !e.Result.IsEvents() {
			continue
		}
		resolve := c.cameraResolver(ctx, sub)
		for _, ev := range e.Result.Events {
			mediaType, ok := eventMediaType(in.HasClip, in.HasSnapshot, ev)
			if !ok {
				continue
			}
			cameraID, ok := resolve(ev.Camera)
			if !ok {
				continue
			}
			m := Media{
				Type:     mediaType,
				CameraID: cameraID,
				EventID:  ev.ID,
				Label:    ev.Label,
				SubLabel: ev.SubLabel,
				StartMs:  int64(ev.StartTime * 1000),
				Retained: ev.Retained,
			}
			if ev.EndTime != nil {
				m.EndMs = int64(*ev.EndTime * 1000)
			}
			out = append(out, m)
		}
	}
	return out
}

// eventMediaType resolves the concrete media type for one event. With
// no explicit request, clip wins over snapshot; an explicit request is
// honored only when the event actually offers that type.
func eventMediaType(wantClip, wantSnapshot bool, ev frigate.Event) (MediaType, bool) {
	switch {
	case !wantClip && !wantSnapshot:
		if ev.HasClip {
			return MediaClip, true
		}
		if ev.HasSnapshot {
			return MediaSnapshot, true
		}
	case wantClip && wantSnapshot:
		if ev.HasClip {
			return MediaClip, true
		}
		if ev.HasSnapshot {
			return MediaSnapshot, true
		}
	case wantClip:
		if ev.HasClip {
			return MediaClip, true
		}
	case wantSnapshot:
		if ev.HasSnapshot {
			return MediaSnapshot, true
		}
	}
	return "", false
}

// cameraResolver maps a branch result item back to a configured camera.
// A single-camera sub-query attributes every item directly; otherwise
// items are matched by (instance, frigate name) against every enabled
// camera the store knows. Items matching no configured camera drop out.
func (c Core) cameraResolver(ctx context.Context, sub EventSubQuery) func(frigateName string) (string, bool) {
	entries, err := c.cameras.CameraEntries(ctx)
	if err != nil {
		// 软失效：解析不到的条目静默丢弃
		entries = nil
	}

	if len(sub.Cameras) == 1 {
		for _, cam := range entries {
			if cam.Instance == sub.Instance && cam.FrigateName == sub.Cameras[0] {
				id := cam.ID
				return func(string) (string, bool) { return id, true }
			}
		}
	}

	byName := make(map[string]string)
	for _, cam := range entries {
		if cam.Instance == sub.Instance {
			byName[cam.FrigateName] = cam.ID
		}
	}
	return func(frigateName string) (string, bool) {
		id, ok := byName[frigateName]
		return id, ok
	}
}

// RecordingsToMedia projects recording results to media objects.
// Recording sub-queries always address exactly one camera, so every
// item is attributed directly.
func (c Core) RecordingsToMedia(entries []Entry) []Media {
	out := make([]Media, 0, len(entries))
	for _, e := range entries {
		if !e.Result.IsRecordings() {
			continue
		}
		for _, rec := range e.Result.Recordings {
			out = append(out, Media{
				Type:     MediaRecording,
				CameraID: rec.CameraID,
				StartMs:  rec.StartTime.UnixMilli(),
				EndMs:    rec.EndTime.UnixMilli(),
				Events:   rec.Events,
			})
		}
	}
	return out
}

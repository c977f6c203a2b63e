package frigate

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

const eventsPath = "/api/events"

// Event is one detection event as returned by /api/events.
type Event struct {
	ID          string   `json:"id"`
	Camera      string   `json:"camera"`
	Label       string   `json:"label"`
	SubLabel    string   `json:"sub_label"`
	Zones       []string `json:"zones"`
	StartTime   float64  `json:"start_time"`         // epoch seconds
	EndTime     *float64 `json:"end_time"`           // nil while in progress
	HasClip     bool     `json:"has_clip"`
	HasSnapshot bool     `json:"has_snapshot"`
	TopScore    float64  `json:"top_score"`
	Retained    bool     `json:"retain_indefinitely"`
}

// EventsParams are the native filters of the events endpoint. Zero
// values are omitted from the request.
type EventsParams struct {
	Cameras     []string // frigate camera names
	Labels      []string
	Zones       []string
	SubLabels   []string
	After       int64 // epoch seconds
	Before      int64
	Limit       int
	HasClip     bool
	HasSnapshot bool
	Favorites   bool
}

// Events searches detection events on this instance.
func (e *Engine) Events(ctx context.Context, p EventsParams) ([]Event, error) {
	params := url.Values{}
	if len(p.Cameras) > 0 {
		params.Set("cameras", strings.Join(p.Cameras, ","))
	}
	if len(p.Labels) > 0 {
		params.Set("labels", strings.Join(p.Labels, ","))
	}
	if len(p.Zones) > 0 {
		params.Set("zones", strings.Join(p.Zones, ","))
	}
	if len(p.SubLabels) > 0 {
		params.Set("sub_labels", strings.Join(p.SubLabels, ","))
	}
	if p.After > 0 {
		params.Set("after", strconv.FormatInt(p.After, 10))
	}
	if p.Before > 0 {
		params.Set("before", strconv.FormatInt(p.Before, 10))
	}
	if p.Limit > 0 {
		params.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.HasClip {
		params.Set("has_clip", "1")
	}
	if p.HasSnapshot {
		params.Set("has_snapshot", "1")
	}
	if p.Favorites {
		params.Set("favorites", "1")
	}
	// Thumbnails bloat the payload and the gateway never serves them.
	params.Set("include_thumbnails", "0")

	var out []Event
	if err := e.get(ctx, eventsPath, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Labels returns the distinct object labels known to the instance.
func (e *Engine) Labels(ctx context.Context) ([]string, error) {
	var out []string
	if err := e.get(ctx, "/api/labels", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubLabels returns the distinct sub labels known to the instance.
func (e *Engine) SubLabels(ctx context.Context) ([]string, error) {
	var out []string
	if err := e.get(ctx, "/api/sub_labels", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

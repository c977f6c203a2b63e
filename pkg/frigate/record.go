package frigate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Segment is one recorded slice of a camera's timeline, as returned by
// /api/{camera}/recordings. Timestamps carry whole-second precision on
// the backend side.
type Segment struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"start_time"` // epoch seconds
	EndTime   float64 `json:"end_time"`
	Duration  float64 `json:"duration"` // seconds
}

// SummaryHour is one occupied hour of a day in the recording summary.
type SummaryHour struct {
	Hour     FlexInt `json:"hour"` // 0-23, hour of day in the requested timezone
	Events   int     `json:"events"`
	Duration int     `json:"duration"` // recorded seconds within the hour
}

// SummaryDay is one day of the recording summary.
type SummaryDay struct {
	Day    string        `json:"day"` // "2006-01-02" in the requested timezone
	Events int           `json:"events"`
	Hours  []SummaryHour `json:"hours"`
}

// FlexInt tolerates the summary's hour field arriving as either a JSON
// number or a quoted string, which varies across Frigate releases.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("flex int %q: %w", data, err)
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}

// RecordingSummary returns the day/hour recording occupancy for one
// camera. The summary is computed relative to tz, so the same camera
// yields different day boundaries for different callers.
func (e *Engine) RecordingSummary(ctx context.Context, camera, tz string) ([]SummaryDay, error) {
	params := url.Values{}
	if tz != "" {
		params.Set("timezone", tz)
	}
	var out []SummaryDay
	if err := e.get(ctx, "/api/"+url.PathEscape(camera)+"/recordings/summary", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordingSegments returns the recorded segments of one camera between
// after and before (epoch seconds).
func (e *Engine) RecordingSegments(ctx context.Context, camera string, after, before int64) ([]Segment, error) {
	params := url.Values{}
	params.Set("after", strconv.FormatInt(after, 10))
	params.Set("before", strconv.FormatInt(before, 10))

	var out []Segment
	if err := e.get(ctx, "/api/"+url.PathEscape(camera)+"/recordings", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VodURL builds the instance URL serving playable video for one
// camera's time window, suitable for m3u8 playlists.
func (e *Engine) VodURL(camera string, startSec, endSec int64) string {
	return fmt.Sprintf("%s/vod/%s/start/%d/end/%d/index.m3u8", e.BaseURL(), url.PathEscape(camera), startSec, endSec)
}

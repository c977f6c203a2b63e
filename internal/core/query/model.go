package query

import (
	"encoding/json"
	"time"

	"github.com/gowvp/hawk/pkg/frigate"
)

// Kind discriminates the query and result variants.
type Kind string

const (
	KindEvents     Kind = "events"
	KindRecordings Kind = "recordings"
	KindSegments   Kind = "recording-segments"
	KindMetadata   Kind = "media-metadata"
)

// SubQuery is one backend-native query produced by fanning a logical
// query out across instances or cameras. Sub-queries are value objects;
// CacheKey is their structural identity.
type SubQuery interface {
	Kind() Kind
	InstanceID() string
	CacheKey() string
}

// cacheKey builds a canonical serialization of a sub-query: the kind
// plus the struct's JSON encoding, whose field order is fixed by the
// type, so equal values always encode identically.
func cacheKey(kind Kind, q any) string {
	b, _ := json.Marshal(q)
	return string(kind) + ":" + string(b)
}

// EventSubQuery targets the events endpoint of one instance, possibly
// covering several cameras.
type EventSubQuery struct {
	Instance    string   `json:"instance"`
	Cameras     []string `json:"cameras"` // frigate names, sorted
	Labels      []string `json:"labels,omitempty"`
	Zones       []string `json:"zones,omitempty"`
	SubLabels   []string `json:"sub_labels,omitempty"`
	After       int64    `json:"after,omitempty"` // epoch seconds
	Before      int64    `json:"before,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	HasClip     bool     `json:"has_clip,omitempty"`
	HasSnapshot bool     `json:"has_snapshot,omitempty"`
	Favorite    bool     `json:"favorite,omitempty"`
}

func (q EventSubQuery) Kind() Kind         { return KindEvents }
func (q EventSubQuery) InstanceID() string { return q.Instance }
func (q EventSubQuery) CacheKey() string   { return cacheKey(KindEvents, q) }

// RecordingSubQuery targets the recording summary of one camera. The
// backend has no multi-camera recording query.
type RecordingSubQuery struct {
	Instance string `json:"instance"`
	CameraID string `json:"camera_id"` // hawk camera id
	Camera   string `json:"camera"`    // frigate name
	After    int64  `json:"after"`
	Before   int64  `json:"before"`
	Limit    int    `json:"limit,omitempty"`
	Timezone string `json:"timezone"` // summary day boundaries depend on it
}

func (q RecordingSubQuery) Kind() Kind         { return KindRecordings }
func (q RecordingSubQuery) InstanceID() string { return q.Instance }
func (q RecordingSubQuery) CacheKey() string   { return cacheKey(KindRecordings, q) }

// SegmentSubQuery targets the recorded segments of one camera.
type SegmentSubQuery struct {
	Instance string `json:"instance"`
	CameraID string `json:"camera_id"`
	Camera   string `json:"camera"`
	After    int64  `json:"after"`
	Before   int64  `json:"before"`
}

func (q SegmentSubQuery) Kind() Kind         { return KindSegments }
func (q SegmentSubQuery) InstanceID() string { return q.Instance }
func (q SegmentSubQuery) CacheKey() string   { return cacheKey(KindSegments, q) }

// MetadataSubQuery targets the media metadata of one instance.
type MetadataSubQuery struct {
	Instance string   `json:"instance"`
	Cameras  []string `json:"cameras"` // frigate names, sorted
	Timezone string   `json:"timezone"`
}

func (q MetadataSubQuery) Kind() Kind         { return KindMetadata }
func (q MetadataSubQuery) InstanceID() string { return q.Instance }
func (q MetadataSubQuery) CacheKey() string   { return cacheKey(KindMetadata, q) }

// Recording is one hour-aligned recorded hour of a camera, expanded
// from the backend's day/hour summary. Always exactly one hour long;
// the garbage collector and the limit emulation both rely on it.
type Recording struct {
	CameraID  string    `json:"camera_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Events    int       `json:"events"`
}

// MediaMetadata aggregates what an instance can be queried for.
type MediaMetadata struct {
	Labels        []string `json:"labels"`
	SubLabels     []string `json:"sub_labels"`
	RecordingDays []string `json:"recording_days"` // "2006-01-02", sorted
}

// Result is the outcome of one sub-query, tagged by kind. Exactly one
// payload field is set, matching Kind.
type Result struct {
	Instance   string            `json:"instance"`
	Kind       Kind              `json:"kind"`
	Events     []frigate.Event   `json:"events,omitempty"`
	Recordings []Recording       `json:"recordings,omitempty"`
	Segments   []frigate.Segment `json:"segments,omitempty"`
	Metadata   *MediaMetadata    `json:"metadata,omitempty"`
	ExpiresAt  time.Time         `json:"expires_at"`
	Cached     bool              `json:"cached"`
}

func (r *Result) IsEvents() bool     { return r.Kind == KindEvents }
func (r *Result) IsRecordings() bool { return r.Kind == KindRecordings }
func (r *Result) IsSegments() bool   { return r.Kind == KindSegments }
func (r *Result) IsMetadata() bool   { return r.Kind == KindMetadata }

// cachedCopy returns a shallow copy flagged as served from cache.
func (r *Result) cachedCopy() *Result {
	cp := *r
	cp.Cached = true
	return &cp
}

// Entry pairs a sub-query with its result. A federated operation
// returns a nil slice when no sub-queries were issued at all; a
// non-empty slice otherwise. Entries are unique by the sub-query's
// cache key, ordering not meaningful.
type Entry struct {
	Query  SubQuery `json:"query"`
	Result *Result  `json:"result"`
}

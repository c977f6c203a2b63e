// Package query implements the federation engine: logical queries
// spanning arbitrary cameras are split into backend-native sub-queries
// per Frigate instance or per camera, answered from the caches where
// possible, fetched concurrently otherwise, and merged back into a
// uniform result set.
package query

import (
	"context"
	"sort"
	"time"

	"github.com/gowvp/hawk/internal/conf"
	"github.com/gowvp/hawk/internal/core/camera"
	"github.com/gowvp/hawk/pkg/frigate"
	"github.com/gowvp/hawk/pkg/ranges"
)

// Instance is the transport contract of one Frigate deployment,
// implemented by *frigate.Engine.
type Instance interface {
	ID() string
	Events(ctx context.Context, p frigate.EventsParams) ([]frigate.Event, error)
	Labels(ctx context.Context) ([]string, error)
	SubLabels(ctx context.Context) ([]string, error)
	RecordingSummary(ctx context.Context, camera, tz string) ([]frigate.SummaryDay, error)
	RecordingSegments(ctx context.Context, camera string, after, before int64) ([]frigate.Segment, error)
	Retain(ctx context.Context, eventID string, retain bool) error
}

// CameraProvider resolves camera identity, implemented by camera.Core.
type CameraProvider interface {
	GetCamera(ctx context.Context, id string) (*camera.Camera, error)
	CameraEntries(ctx context.Context) ([]*camera.Camera, error)
}

// ResultCacher caches sub-query results by structural key with a
// per-entry lifetime. A miss is (nil, false), never an error.
type ResultCacher interface {
	Get(key string) (*Result, bool)
	Has(key string) bool
	Set(key string, r *Result, ttl time.Duration)
}

// SegmentStorer is the per-camera segment cache. Get answers only when
// the span was fetched in full before; covered-but-empty windows report
// ok=true with no segments.
type SegmentStorer interface {
	Get(cameraID string, span ranges.Span[int64]) ([]frigate.Segment, bool)
	Add(cameraID string, span ranges.Span[int64], segments []frigate.Segment)
	CameraIDs() []string
	ExpireMatches(cameraID string, match func(frigate.Segment) bool)
}

// Core business domain
type Core struct {
	cameras   CameraProvider
	instances map[string]Instance
	results   ResultCacher
	segments  SegmentStorer

	timezone     string
	eventTTL     time.Duration
	recordingTTL time.Duration
	metadataTTL  time.Duration

	gc *throttle
}

type Option func(*Core)

// WithInstances registers the reachable Frigate instances.
func WithInstances(list ...Instance) Option {
	return func(c *Core) {
		for _, inst := range list {
			c.instances[inst.ID()] = inst
		}
	}
}

// WithConfig applies cache lifetimes and the summary timezone.
func WithConfig(cfg *conf.Frigate) Option {
	return func(c *Core) {
		if cfg.Timezone != "" {
			c.timezone = cfg.Timezone
		}
		if v := cfg.Cache.EventTTL.Duration(); v > 0 {
			c.eventTTL = v
		}
		if v := cfg.Cache.RecordingTTL.Duration(); v > 0 {
			c.recordingTTL = v
		}
		if v := cfg.Cache.MetadataTTL.Duration(); v > 0 {
			c.metadataTTL = v
		}
		if v := cfg.Cache.SegmentGCInterval.Duration(); v > 0 {
			c.gc = newThrottle(v)
		}
	}
}

// NewCore create business domain
func NewCore(cameras CameraProvider, results ResultCacher, segments SegmentStorer, opts ...Option) Core {
	c := Core{
		cameras:      cameras,
		instances:    make(map[string]Instance),
		results:      results,
		segments:     segments,
		timezone:     time.Local.String(),
		eventTTL:     time.Minute,
		recordingTTL: time.Minute,
		metadataTTL:  10 * time.Minute,
		gc:           newThrottle(time.Hour),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// QueryOption tunes a single federated call.
type QueryOption func(*callOptions)

type callOptions struct {
	useCache bool
}

// WithoutCache forces fresh fetches for every branch of this call.
func WithoutCache() QueryOption {
	return func(o *callOptions) { o.useCache = false }
}

func evalOptions(opts []QueryOption) callOptions {
	o := callOptions{useCache: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// resolveCameras maps camera ids to configs, silently skipping ids that
// are unconfigured or whose instance is not registered. Soft misses are
// not failures.
func (c Core) resolveCameras(ctx context.Context, ids []string) []*camera.Camera {
	out := make([]*camera.Camera, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		cam, err := c.cameras.GetCamera(ctx, id)
		if err != nil || cam == nil {
			continue
		}
		if _, ok := c.instances[cam.Instance]; !ok {
			continue
		}
		out = append(out, cam)
	}
	return out
}

// groupByInstance partitions cameras so one sub-query can cover every
// camera an instance owns. Event and metadata queries group this way.
func groupByInstance(cams []*camera.Camera) map[string][]*camera.Camera {
	groups := make(map[string][]*camera.Camera)
	for _, cam := range cams {
		groups[cam.Instance] = append(groups[cam.Instance], cam)
	}
	return groups
}

func frigateNames(cams []*camera.Camera) []string {
	names := make([]string, 0, len(cams))
	for _, cam := range cams {
		names = append(names, cam.FrigateName)
	}
	sort.Strings(names)
	return names
}

func (c Core) location() *time.Location {
	loc, err := time.LoadLocation(c.timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

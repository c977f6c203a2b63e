// Package camcache overlays the camera store with an in-memory
// read-through cache; the query engine resolves camera identity on
// every federated call and must not hit the database each time.
package camcache

import (
	"context"

	"github.com/gowvp/hawk/internal/core/camera"
	"github.com/ixugo/goddd/pkg/conc"
	"github.com/ixugo/goddd/pkg/orm"
)

var _ camera.Storer = &Cache{}

type Cache struct {
	camera.Storer
	cameras *conc.Map[string, *camera.Camera]
}

func NewCache(store camera.Storer) *Cache {
	return &Cache{
		Storer:  store,
		cameras: conc.NewMap[string, *camera.Camera](),
	}
}

func (c *Cache) Camera() camera.CameraStorer {
	return &Cameras{cache: c}
}

var _ camera.CameraStorer = &Cameras{}

type Cameras struct {
	cache *Cache
}

func (c *Cameras) db() camera.CameraStorer {
	return c.cache.Storer.Camera()
}

// Get implements camera.CameraStorer. Lookups by primary key are served
// from memory when possible.
func (c *Cameras) Get(ctx context.Context, out *camera.Camera, opts ...orm.QueryOption) error {
	if out.ID != "" {
		if cached, ok := c.cache.cameras.Load(out.ID); ok {
			*out = *cached
			return nil
		}
	}
	if err := c.db().Get(ctx, out, opts...); err != nil {
		return err
	}
	cached := *out
	c.cache.cameras.Store(out.ID, &cached)
	return nil
}

// Add implements camera.CameraStorer.
func (c *Cameras) Add(ctx context.Context, cam *camera.Camera) error {
	if err := c.db().Add(ctx, cam); err != nil {
		return err
	}
	cached := *cam
	c.cache.cameras.Store(cam.ID, &cached)
	return nil
}

// Edit implements camera.CameraStorer.
func (c *Cameras) Edit(ctx context.Context, cam *camera.Camera, changeFn func(*camera.Camera), opts ...orm.QueryOption) error {
	if err := c.db().Edit(ctx, cam, changeFn, opts...); err != nil {
		return err
	}
	c.cache.cameras.Delete(cam.ID)
	return nil
}

// Del implements camera.CameraStorer.
func (c *Cameras) Del(ctx context.Context, cam *camera.Camera, opts ...orm.QueryOption) error {
	if err := c.db().Del(ctx, cam, opts...); err != nil {
		return err
	}
	c.cache.cameras.Delete(cam.ID)
	return nil
}

// Find implements camera.CameraStorer.
func (c *Cameras) Find(ctx context.Context, out *[]*camera.Camera, pager orm.Pager, opts ...orm.QueryOption) (int64, error) {
	return c.db().Find(ctx, out, pager, opts...)
}

// Count implements camera.CameraStorer.
func (c *Cameras) Count(ctx context.Context, opts ...orm.QueryOption) (int64, error) {
	return c.db().Count(ctx, opts...)
}

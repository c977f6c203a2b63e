package camera

import (
	"context"

	"github.com/ixugo/goddd/pkg/orm"
)

// CameraStorer Instantiation interface
type CameraStorer interface {
	Find(context.Context, *[]*Camera, orm.Pager, ...orm.QueryOption) (int64, error)
	Get(context.Context, *Camera, ...orm.QueryOption) error
	Add(context.Context, *Camera) error
	Edit(context.Context, *Camera, func(*Camera), ...orm.QueryOption) error
	Del(context.Context, *Camera, ...orm.QueryOption) error
	Count(context.Context, ...orm.QueryOption) (int64, error)
}

// Storer data persistence
type Storer interface {
	Camera() CameraStorer
}

// Core business domain
type Core struct {
	store Storer
}

// NewCore create business domain
func NewCore(store Storer) Core {
	return Core{store: store}
}

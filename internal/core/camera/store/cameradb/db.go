package cameradb

import (
	"context"

	"github.com/gowvp/hawk/internal/core/camera"
	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/gorm"
)

var _ camera.Storer = DB{}

type DB struct {
	db *gorm.DB
}

func NewDB(db *gorm.DB) DB {
	return DB{db: db}
}

// AutoMigrate 按需建表
func (d DB) AutoMigrate(ok bool) DB {
	if ok {
		_ = d.db.AutoMigrate(&camera.Camera{})
	}
	return d
}

func (d DB) Camera() camera.CameraStorer {
	return Cameras{db: d.db}
}

var _ camera.CameraStorer = Cameras{}

type Cameras struct {
	db *gorm.DB
}

func (c Cameras) apply(ctx context.Context, opts []orm.QueryOption) *gorm.DB {
	db := c.db.WithContext(ctx).Model(&camera.Camera{})
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

// Find implements camera.CameraStorer.
func (c Cameras) Find(ctx context.Context, out *[]*camera.Camera, pager orm.Pager, opts ...orm.QueryOption) (int64, error) {
	db := c.apply(ctx, opts)
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return 0, err
	}
	if err := db.Offset(pager.Offset()).Limit(pager.Limit()).Find(out).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Get implements camera.CameraStorer.
func (c Cameras) Get(ctx context.Context, out *camera.Camera, opts ...orm.QueryOption) error {
	return c.apply(ctx, opts).First(out).Error
}

// Add implements camera.CameraStorer.
func (c Cameras) Add(ctx context.Context, cam *camera.Camera) error {
	return c.db.WithContext(ctx).Create(cam).Error
}

// Edit implements camera.CameraStorer.
func (c Cameras) Edit(ctx context.Context, out *camera.Camera, changeFn func(*camera.Camera), opts ...orm.QueryOption) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		db := tx.Model(&camera.Camera{})
		for _, opt := range opts {
			db = opt(db)
		}
		if err := db.First(out).Error; err != nil {
			return err
		}
		changeFn(out)
		return tx.Save(out).Error
	})
}

// Del implements camera.CameraStorer.
func (c Cameras) Del(ctx context.Context, out *camera.Camera, opts ...orm.QueryOption) error {
	db := c.apply(ctx, opts)
	if err := db.First(out).Error; err != nil {
		return err
	}
	return c.db.WithContext(ctx).Delete(out).Error
}

// Count implements camera.CameraStorer.
func (c Cameras) Count(ctx context.Context, opts ...orm.QueryOption) (int64, error) {
	var total int64
	err := c.apply(ctx, opts).Count(&total).Error
	return total, err
}

package camera

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/jinzhu/copier"
)

// FindCameras 分页查询摄像头列表
func (c Core) FindCameras(ctx context.Context, in *FindCamerasInput) ([]*Camera, int64, error) {
	query := orm.NewQuery(2).OrderBy("created_at DESC")
	if in.Instance != "" {
		query.Where("instance = ?", in.Instance)
	}
	if in.Name != "" {
		query.Where("name LIKE ?", "%"+in.Name+"%")
	}

	items := make([]*Camera, 0, in.Limit())
	total, err := c.store.Camera().Find(ctx, &items, in, query.Encode()...)
	if err != nil {
		return nil, 0, reason.ErrDB.Withf(`Find in[%+v] err[%s]`, in, err.Error())
	}
	return items, total, nil
}

// GetCamera Query a single object
func (c Core) GetCamera(ctx context.Context, id string) (*Camera, error) {
	// 预填 ID，缓存层按主键命中
	out := Camera{ID: id}
	if err := c.store.Camera().Get(ctx, &out, orm.Where("id=?", id)); err != nil {
		if orm.IsErrRecordNotFound(err) {
			return nil, reason.ErrNotFound.Withf(`Get id[%v] err[%s]`, id, err.Error())
		}
		return nil, reason.ErrDB.Withf(`Get id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}

// CameraEntries 返回已启用的全部摄像头，供查询引擎解析相机身份
func (c Core) CameraEntries(ctx context.Context) ([]*Camera, error) {
	query := orm.NewQuery(1)
	query.Where("enabled = ?", true)

	items := make([]*Camera, 0, 32)
	// 使用默认分页器避免 nil pointer
	pager := &defaultPager{limit: 1000}
	if _, err := c.store.Camera().Find(ctx, &items, pager, query.Encode()...); err != nil {
		return nil, reason.ErrDB.Withf(`CameraEntries err[%s]`, err.Error())
	}
	return items, nil
}

// defaultPager 内部使用的分页器，避免传入 nil 导致空指针
type defaultPager struct {
	limit int
}

func (p *defaultPager) Offset() int { return 0 }
func (p *defaultPager) Limit() int  { return p.limit }

// AddCamera Insert into database
func (c Core) AddCamera(ctx context.Context, in *AddCameraInput) (*Camera, error) {
	var out Camera
	if err := copier.Copy(&out, in); err != nil {
		slog.ErrorContext(ctx, "Copy", "err", err)
	}
	out.ID = uuid.NewString()
	out.Enabled = in.Enabled == nil || *in.Enabled

	if err := c.store.Camera().Add(ctx, &out); err != nil {
		return nil, reason.ErrDB.Withf(`Add err[%s]`, err.Error())
	}
	return &out, nil
}

// EditCamera Update object information
func (c Core) EditCamera(ctx context.Context, in *EditCameraInput, id string) (*Camera, error) {
	var out Camera
	if err := c.store.Camera().Edit(ctx, &out, func(b *Camera) {
		if err := copier.Copy(b, in); err != nil {
			slog.ErrorContext(ctx, "Copy", "err", err)
		}
		if in.Enabled != nil {
			b.Enabled = *in.Enabled
		}
	}, orm.Where("id=?", id)); err != nil {
		return nil, reason.ErrDB.Withf(`Edit id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}

// DelCamera Delete object
func (c Core) DelCamera(ctx context.Context, id string) (*Camera, error) {
	var out Camera
	if err := c.store.Camera().Del(ctx, &out, orm.Where("id=?", id)); err != nil {
		return nil, reason.ErrDB.Withf(`Del id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}

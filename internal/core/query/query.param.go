package query

import (
	"github.com/ixugo/goddd/pkg/web"
)

// EventsInput 事件联合查询参数，CameraIDs 可跨多个 Frigate 实例
type EventsInput struct {
	web.DateFilter
	CameraIDs   []string `form:"camera_ids" json:"camera_ids"`
	Labels      []string `form:"labels" json:"labels"`
	Zones       []string `form:"zones" json:"zones"`
	SubLabels   []string `form:"sub_labels" json:"sub_labels"`
	Limit       int      `form:"limit" json:"limit"`
	HasClip     bool     `form:"has_clip" json:"has_clip"`
	HasSnapshot bool     `form:"has_snapshot" json:"has_snapshot"`
	Favorite    bool     `form:"favorite" json:"favorite"`
}

// RecordingsInput 录像联合查询参数
type RecordingsInput struct {
	web.DateFilter
	CameraIDs []string `form:"camera_ids" json:"camera_ids"`
	Limit     int      `form:"limit" json:"limit"`
	Timezone  string   `form:"timezone" json:"timezone"` // 摘要的日界时区，缺省取网关配置
}

// SegmentsInput 录像分片联合查询参数
type SegmentsInput struct {
	web.DateFilter
	CameraIDs []string `form:"camera_ids" json:"camera_ids"`
}

// MetadataInput 媒体元数据联合查询参数
type MetadataInput struct {
	CameraIDs []string `form:"camera_ids" json:"camera_ids"`
	Timezone  string   `form:"timezone" json:"timezone"`
}

// SeekInput 求某一时刻在媒体内的播放偏移
type SeekInput struct {
	CameraID string `form:"camera_id" json:"camera_id"`
	StartMs  int64  `form:"start_ms" json:"start_ms"`
	EndMs    int64  `form:"end_ms" json:"end_ms"`
	TargetMs int64  `form:"target_ms" json:"target_ms"`
}

// RetainInput 收藏/取消收藏事件
type RetainInput struct {
	CameraID string `json:"camera_id" binding:"required"`
	Retain   bool   `json:"retain"`
}

// epochSeconds converts the millisecond filter bounds to whole backend
// seconds; zero stays zero.
func epochSeconds(ms int64) int64 {
	return ms / 1000
}

package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gowvp/hawk/internal/core/camera"
	"github.com/gowvp/hawk/internal/core/query"
	"github.com/gowvp/hawk/pkg/frigate"
	"github.com/grafov/m3u8"
	"github.com/ixugo/goddd/pkg/web"
)

// QueryAPI 为 http 提供联合查询业务方法
type QueryAPI struct {
	queryCore  query.Core
	cameraCore camera.Core
	engines    map[string]*frigate.Engine
}

func NewQueryAPI(core query.Core, cameraCore camera.Core, engines map[string]*frigate.Engine) QueryAPI {
	return QueryAPI{queryCore: core, cameraCore: cameraCore, engines: engines}
}

func RegisterQuery(g gin.IRouter, api QueryAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/queries", handler...)
	group.GET("/events", web.WrapH(api.findEvents))
	group.GET("/events/media", web.WrapH(api.findEventMedia))
	group.GET("/recordings", web.WrapH(api.findRecordings))
	group.GET("/recordings/media", web.WrapH(api.findRecordingMedia))
	group.GET("/segments", web.WrapH(api.findSegments))
	group.GET("/metadata", web.WrapH(api.getMetadata))
	group.GET("/seek", web.WrapH(api.getSeekTime))

	g.POST("/events/:id/retain", append(handler, web.WrapH(api.retainEvent))...)

	// HLS 播放列表，分片取自联合查询，指向各实例的 vod 接口
	g.GET("/playlists/cameras/:id/index.m3u8", append(handler, api.cameraPlaylist)...)
}

// callOptions 刷新参数强制绕过缓存
func callOptions(c *gin.Context) []query.QueryOption {
	if c.Query("refresh") == "true" {
		return []query.QueryOption{query.WithoutCache()}
	}
	return nil
}

// findEvents 跨实例联合查询事件
func (a QueryAPI) findEvents(c *gin.Context, in *query.EventsInput) (any, error) {
	entries, err := a.queryCore.Events(c.Request.Context(), in, callOptions(c)...)
	return gin.H{"items": entries}, err
}

// findEventMedia 事件查询结果投影为媒体对象
func (a QueryAPI) findEventMedia(c *gin.Context, in *query.EventsInput) (any, error) {
	ctx := c.Request.Context()
	entries, err := a.queryCore.Events(ctx, in, callOptions(c)...)
	if err != nil {
		return nil, err
	}
	items := a.queryCore.EventsToMedia(ctx, in, entries)
	return gin.H{"items": items}, nil
}

// findRecordings 跨实例联合查询整点录像
func (a QueryAPI) findRecordings(c *gin.Context, in *query.RecordingsInput) (any, error) {
	entries, err := a.queryCore.Recordings(c.Request.Context(), in, callOptions(c)...)
	return gin.H{"items": entries}, err
}

func (a QueryAPI) findRecordingMedia(c *gin.Context, in *query.RecordingsInput) (any, error) {
	entries, err := a.queryCore.Recordings(c.Request.Context(), in, callOptions(c)...)
	if err != nil {
		return nil, err
	}
	return gin.H{"items": a.queryCore.RecordingsToMedia(entries)}, nil
}

// findSegments 跨实例联合查询录像分片
func (a QueryAPI) findSegments(c *gin.Context, in *query.SegmentsInput) (any, error) {
	entries, err := a.queryCore.RecordingSegments(c.Request.Context(), in, callOptions(c)...)
	return gin.H{"items": entries}, err
}

// getMetadata 跨实例联合查询媒体元数据
func (a QueryAPI) getMetadata(c *gin.Context, in *query.MetadataInput) (any, error) {
	entries, err := a.queryCore.MediaMetadata(c.Request.Context(), in, callOptions(c)...)
	return gin.H{"items": entries}, err
}

type seekOutput struct {
	OffsetMs int64 `json:"offset_ms"`
	Found    bool  `json:"found"`
}

// getSeekTime 求目标时刻相对录像内容的播放偏移
func (a QueryAPI) getSeekTime(c *gin.Context, in *query.SeekInput) (seekOutput, error) {
	offset, ok, err := a.queryCore.MediaSeekTime(c.Request.Context(), in, callOptions(c)...)
	if err != nil {
		return seekOutput{}, err
	}
	return seekOutput{OffsetMs: offset.Milliseconds(), Found: ok}, nil
}

// retainEvent 收藏或取消收藏事件，转发到相机所属实例
func (a QueryAPI) retainEvent(c *gin.Context, in *query.RetainInput) (any, error) {
	eventID := c.Param("id")
	if err := a.queryCore.Retain(c.Request.Context(), in.CameraID, eventID, in.Retain); err != nil {
		return nil, err
	}
	return gin.H{"event_id": eventID, "retain": in.Retain}, nil
}

// cameraPlaylist 生成 HLS m3u8 播放列表
// 根据摄像头 ID 和时间范围，把联合查询到的分片编排为 VOD 列表，
// 每个分片指向其所属 Frigate 实例的 vod 接口
// 路径: /playlists/cameras/:id/index.m3u8?start_ms=xxx&end_ms=xxx
func (a QueryAPI) cameraPlaylist(c *gin.Context) {
	cameraID := c.Param("id")
	startMs, _ := strconv.ParseInt(c.Query("start_ms"), 10, 64)
	endMs, _ := strconv.ParseInt(c.Query("end_ms"), 10, 64)
	if cameraID == "" || startMs <= 0 || endMs <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "camera id, start_ms and end_ms are required"})
		return
	}

	ctx := c.Request.Context()
	frigateName, eng, ok := a.resolveEngine(c, cameraID)
	if !ok {
		return
	}

	in := query.SegmentsInput{
		DateFilter: web.DateFilter{StartMs: startMs, EndMs: endMs},
		CameraIDs:  []string{cameraID},
	}
	entries, err := a.queryCore.RecordingSegments(ctx, &in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": err.Error()})
		return
	}

	segs := make([]frigate.Segment, 0, 32)
	for _, e := range entries {
		if e.Result.IsSegments() {
			segs = append(segs, e.Result.Segments...)
		}
	}
	if len(segs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"code": 1, "msg": "no recordings found in time range"})
		return
	}

	content := generatePlaylist(eng, frigateName, segs)
	c.Header("Content-Type", "application/vnd.apple.mpegurl")
	c.Header("Cache-Control", "no-cache")
	c.String(http.StatusOK, content)
}

// resolveEngine 由摄像头配置找到其所属实例的客户端，失败时已写入响应
func (a QueryAPI) resolveEngine(c *gin.Context, cameraID string) (string, *frigate.Engine, bool) {
	cam, err := a.cameraCore.GetCamera(c.Request.Context(), cameraID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 1, "msg": err.Error()})
		return "", nil, false
	}
	eng, ok := a.engines[cam.Instance]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"code": 1, "msg": "instance not registered: " + cam.Instance})
		return "", nil, false
	}
	return cam.FrigateName, eng, true
}

// generatePlaylist 把分片列表编排为 VOD 播放列表
// 各分片是独立的 vod 流，片间加 DISCONTINUITY 让播放器重置解码器
func generatePlaylist(eng *frigate.Engine, frigateName string, segs []frigate.Segment) string {
	pl, err := m3u8.NewMediaPlaylist(0, uint(len(segs)))
	if err != nil {
		return ""
	}
	pl.MediaType = m3u8.VOD

	sort.Slice(segs, func(i, j int) bool { return segs[i].StartTime < segs[j].StartTime })

	for i, seg := range segs {
		if i > 0 {
			pl.SetDiscontinuity()
		}
		uri := eng.VodURL(frigateName, int64(seg.StartTime), int64(seg.EndTime))
		_ = pl.Append(uri, seg.Duration, "")
	}

	pl.Close()
	return pl.String()
}

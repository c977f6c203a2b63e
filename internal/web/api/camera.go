package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gowvp/hawk/internal/core/camera"
	"github.com/ixugo/goddd/pkg/web"
)

// CameraAPI 为 http 提供摄像头管理业务方法
type CameraAPI struct {
	cameraCore camera.Core
}

func NewCameraAPI(core camera.Core) CameraAPI {
	return CameraAPI{cameraCore: core}
}

func RegisterCamera(g gin.IRouter, api CameraAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/cameras", handler...)
	group.GET("", web.WrapH(api.findCameras))
	group.GET("/:id", web.WrapH(api.getCamera))
	group.POST("", web.WrapH(api.addCamera))
	group.PUT("/:id", web.WrapH(api.editCamera))
	group.DELETE("/:id", web.WrapH(api.delCamera))
}

// findCameras 分页查询摄像头列表
func (a CameraAPI) findCameras(c *gin.Context, in *camera.FindCamerasInput) (any, error) {
	items, total, err := a.cameraCore.FindCameras(c.Request.Context(), in)
	return gin.H{"items": items, "total": total}, err
}

func (a CameraAPI) getCamera(c *gin.Context, _ *struct{}) (*camera.Camera, error) {
	return a.cameraCore.GetCamera(c.Request.Context(), c.Param("id"))
}

func (a CameraAPI) addCamera(c *gin.Context, in *camera.AddCameraInput) (*camera.Camera, error) {
	return a.cameraCore.AddCamera(c.Request.Context(), in)
}

func (a CameraAPI) editCamera(c *gin.Context, in *camera.EditCameraInput) (*camera.Camera, error) {
	return a.cameraCore.EditCamera(c.Request.Context(), in, c.Param("id"))
}

func (a CameraAPI) delCamera(c *gin.Context, _ *struct{}) (*camera.Camera, error) {
	return a.cameraCore.DelCamera(c.Request.Context(), c.Param("id"))
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/gowvp/hawk/internal/conf"
	"github.com/gowvp/hawk/internal/core/camera"
	"github.com/gowvp/hawk/internal/core/camera/store/camcache"
	"github.com/gowvp/hawk/internal/core/camera/store/cameradb"
	"github.com/gowvp/hawk/internal/core/query"
	"github.com/gowvp/hawk/internal/core/query/store/querycache"
	"github.com/gowvp/hawk/internal/core/query/store/segmentcache"
	"github.com/gowvp/hawk/pkg/frigate"
	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/gorm"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(Usecase), "*"),
	NewHTTPHandler,
	NewFrigateEngines,
	NewCameraStore, NewCameraCore, NewCameraAPI,
	NewQueryCore, NewQueryAPI,
)

type Usecase struct {
	Conf      *conf.Bootstrap
	DB        *gorm.DB
	Engines   map[string]*frigate.Engine
	CameraAPI CameraAPI
	QueryAPI  QueryAPI
}

// NewHTTPHandler 生成Gin框架路由内容
func NewHTTPHandler(uc *Usecase) http.Handler {
	cfg := uc.Conf.Server
	if cfg.HTTP.JwtSecret == "" {
		uc.Conf.Server.HTTP.JwtSecret = orm.GenerateRandomString(32)
	}
	if !uc.Conf.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	g := gin.New()
	g.NoRoute(func(c *gin.Context) {
		c.JSON(404, "来到了无人的荒漠")
	})
	setupRouter(g, uc) // 设置路由处理函数
	return g
}

// NewFrigateEngines 为配置的每个 Frigate 实例创建客户端
func NewFrigateEngines(bc *conf.Bootstrap) map[string]*frigate.Engine {
	engines := make(map[string]*frigate.Engine, len(bc.Frigate.Instances))
	for _, ins := range bc.Frigate.Instances {
		engines[ins.ID] = frigate.NewEngine(frigate.Config{ID: ins.ID, URL: ins.URL})
	}
	return engines
}

// NewCameraStore 摄像头存储层，内存缓存套在数据库之上
func NewCameraStore(db *gorm.DB) camera.Storer {
	return camcache.NewCache(cameradb.NewDB(db).AutoMigrate(orm.GetEnabledAutoMigrate()))
}

func NewCameraCore(store camera.Storer) camera.Core {
	return camera.NewCore(store)
}

// NewQueryCore 联合查询引擎，注入实例客户端与各级缓存
func NewQueryCore(bc *conf.Bootstrap, cameraCore camera.Core, engines map[string]*frigate.Engine) query.Core {
	instances := make([]query.Instance, 0, len(engines))
	for _, eng := range engines {
		instances = append(instances, eng)
	}
	return query.NewCore(cameraCore, querycache.NewCache(), segmentcache.NewCache(),
		query.WithInstances(instances...),
		query.WithConfig(&bc.Frigate),
	)
}

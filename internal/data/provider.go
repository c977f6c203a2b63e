// Package data opens the relational store backing the camera
// configuration. The driver follows the DSN prefix; the zero-config
// default is a single sqlite file next to the binary.
package data

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/google/wire"
	"github.com/gowvp/hawk/internal/conf"
	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/system"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(SetupDB)

// SetupDB 初始化数据存储
func SetupDB(c *conf.Bootstrap) (*gorm.DB, error) {
	cfg := c.Data.Database
	dial, err := dialectorFor(cfg.Dsn)
	if err != nil {
		return nil, err
	}
	if dial.Name() == "sqlite" {
		// sqlite 单文件，写并发收敛到单连接
		cfg.MaxIdleConns = 1
		cfg.MaxOpenConns = 1
	}

	db, err := orm.New(dial, orm.Config{
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime.Duration(),
		SlowThreshold:   cfg.SlowThreshold.Duration(),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	slog.Info("database ready", "driver", dial.Name())
	return db, nil
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	switch {
	case dsn == "":
		return nil, fmt.Errorf("database dsn is empty")
	case strings.HasPrefix(dsn, "postgres"):
		return postgres.New(postgres.Config{DriverName: "pgx", DSN: dsn}), nil
	case strings.HasPrefix(dsn, "mysql"):
		return mysql.Open(dsn), nil
	default:
		return sqlite.Open(filepath.Join(system.Getwd(), dsn)), nil
	}
}

package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gowvp/hawk/internal/app"
	"github.com/gowvp/hawk/internal/conf"
	"github.com/ixugo/goddd/pkg/system"
)

// buildVersion 由 ldflags 注入
var buildVersion = "dev"

func main() {
	var configPath string
	flag.StringVar(&configPath, "c", filepath.Join(system.Getwd(), "configs", "config.toml"), "config file path")
	flag.Parse()

	bc, err := conf.SetupConfig(configPath)
	if err != nil {
		slog.Error("load config", "path", configPath, "err", err)
		os.Exit(1)
	}
	bc.BuildVersion = buildVersion

	level := slog.LevelInfo
	if bc.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := app.Run(bc); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

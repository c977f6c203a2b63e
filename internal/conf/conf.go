// Package conf holds the bootstrap configuration, loaded from TOML.
package conf

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that reads "30s" / "1h" style TOML values.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Duration() time.Duration { return time.Duration(d) }

type Bootstrap struct {
	Debug        bool    `toml:"debug"`
	BuildVersion string  `toml:"-"`
	Server       Server  `toml:"server"`
	Data         Data    `toml:"data"`
	Frigate      Frigate `toml:"frigate"`
}

type Server struct {
	HTTP HTTP `toml:"http"`
}

type HTTP struct {
	Port      int    `toml:"port"`
	JwtSecret string `toml:"jwt_secret"`
}

type Data struct {
	Database Database `toml:"database"`
}

type Database struct {
	Dsn             string   `toml:"dsn"`
	MaxIdleConns    int      `toml:"max_idle_conns"`
	MaxOpenConns    int      `toml:"max_open_conns"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime"`
	SlowThreshold   Duration `toml:"slow_threshold"`
}

// Frigate configures the upstream instances and the query caches.
type Frigate struct {
	// Timezone used for recording summaries when the query does not
	// carry one. Defaults to the host timezone.
	Timezone  string     `toml:"timezone"`
	Instances []Instance `toml:"instances"`
	Cache     Cache      `toml:"cache"`
}

// Instance is one Frigate deployment reachable by the gateway.
type Instance struct {
	ID  string `toml:"id"`
	URL string `toml:"url"`
}

type Cache struct {
	EventTTL          Duration `toml:"event_ttl"`
	RecordingTTL      Duration `toml:"recording_ttl"`
	MetadataTTL       Duration `toml:"metadata_ttl"`
	SegmentGCInterval Duration `toml:"segment_gc_interval"`
}

// SetupConfig reads the TOML file at path and applies defaults.
func SetupConfig(path string) (*Bootstrap, error) {
	var bc Bootstrap
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &bc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	bc.setDefaults()
	return &bc, nil
}

func (bc *Bootstrap) setDefaults() {
	if bc.Server.HTTP.Port == 0 {
		bc.Server.HTTP.Port = 8081
	}
	if bc.Data.Database.Dsn == "" {
		bc.Data.Database.Dsn = "hawk.db"
	}
	if bc.Data.Database.MaxIdleConns == 0 {
		bc.Data.Database.MaxIdleConns = 10
	}
	if bc.Data.Database.MaxOpenConns == 0 {
		bc.Data.Database.MaxOpenConns = 50
	}
	if bc.Frigate.Timezone == "" {
		bc.Frigate.Timezone = time.Local.String()
	}
	c := &bc.Frigate.Cache
	if c.EventTTL == 0 {
		c.EventTTL = Duration(time.Minute)
	}
	if c.RecordingTTL == 0 {
		c.RecordingTTL = Duration(time.Minute)
	}
	if c.MetadataTTL == 0 {
		c.MetadataTTL = Duration(10 * time.Minute)
	}
	if c.SegmentGCInterval == 0 {
		c.SegmentGCInterval = Duration(time.Hour)
	}
}

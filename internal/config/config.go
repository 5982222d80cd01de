// internal/config/config.go
package config

import (
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"app"`

	Catalog struct {
		File           string `yaml:"file"`             // loaded on startup when set
		MaxUploadBytes int64  `yaml:"max_upload_bytes"` // POST /catalog body limit
		WatchSeconds   int    `yaml:"watch_seconds"`    // 0 disables reloading File
	} `yaml:"catalog"`

	HTTP struct {
		RatePerSec float64 `yaml:"rate_per_sec"`
		Burst      int     `yaml:"burst"`
		AuthUser   string  `yaml:"auth_user"` // password lives in the OS keychain
	} `yaml:"http"`

	Log struct {
		Level string `yaml:"level"` // debug|info|warn|error
	} `yaml:"log"`

	Export struct {
		Sheet string `yaml:"sheet"`
	} `yaml:"export"`
}

func Default() Config {
	var cfg Config
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 38471
	cfg.Catalog.MaxUploadBytes = 8 << 20
	cfg.HTTP.RatePerSec = 20
	cfg.HTTP.Burst = 40
	cfg.Log.Level = "info"
	cfg.Export.Sheet = "Jobs"
	return cfg
}

// Load reads path over Default, so missing keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package config holds the host-application settings. Engine constants
// (tile size, chunk side, activation margin, render distance) are fixed in
// code and deliberately absent here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	WorldName string `yaml:"world_name" json:"world_name"`
	SaveDir   string `yaml:"save_dir" json:"save_dir"`
	Seed      int64  `yaml:"seed" json:"seed"`
	TickRate  int    `yaml:"tick_rate" json:"tick_rate"`
	LogLevel  string `yaml:"log_level" json:"log_level"`

	Viewport ViewportConfig `yaml:"viewport" json:"viewport"`
	Observer ObserverConfig `yaml:"observer" json:"observer"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

type ObserverConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
}

func Default() Config {
	return Config{
		WorldName: "sandbox",
		SaveDir:   "saves/sandbox",
		Seed:      1,
		TickRate:  60,
		LogLevel:  "info",
		Viewport:  ViewportConfig{Width: 800, Height: 600},
		Observer:  ObserverConfig{Enabled: false, Addr: "127.0.0.1:8391"},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

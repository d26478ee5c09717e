package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces all faultgate environment variables, e.g.
// FAULTGATE_COLLECTOR_ENDPOINT maps to collector.endpoint.
const envPrefix = "FAULTGATE_"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Collector CollectorConfig `koanf:"collector"`
	Log       LogConfig       `koanf:"log"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

// CollectorConfig points diagnostic reporting at an external collector.
// A blank endpoint disables reporting entirely.
type CollectorConfig struct {
	Endpoint string `koanf:"endpoint"`
	Timeout  string `koanf:"timeout"` // Duration string like "5s"
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// Load builds configuration from an optional YAML file overlaid with
// environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			// A missing file is fine, env vars carry the config then
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("collector.timeout") {
		k.Set("collector.timeout", "5s")
	}
	if !k.Exists("log.level") {
		k.Set("log.level", "info")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ReportTimeout parses the collector timeout, falling back to 5s when the
// value is missing or malformed.
func (c *Config) ReportTimeout() time.Duration {
	d, err := time.ParseDuration(c.Collector.Timeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

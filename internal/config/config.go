package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"respkv/internal/observability"
)

const (
	DefaultAddr       = "127.0.0.1:6379"
	DefaultBufferSize = 4096
	DefaultShards     = 1
	DefaultLogLevel   = "info"
)

// Config 服务端运行参数
type Config struct {
	Addr        string `toml:"addr" yaml:"addr"`
	BufferSize  int    `toml:"buffer_size" yaml:"buffer_size"` // 单次读取的最大字节数，即单帧上限
	Shards      int    `toml:"shards" yaml:"shards"`
	MetricsAddr string `toml:"metrics_addr" yaml:"metrics_addr"` // 为空时不启动 /metrics
	LogLevel    string `toml:"log_level" yaml:"log_level"`
}

func Default() Config {
	return Config{
		Addr:       DefaultAddr,
		BufferSize: DefaultBufferSize,
		Shards:     DefaultShards,
		LogLevel:   DefaultLogLevel,
	}
}

// Load 按扩展名解析 .toml / .yaml / .yml，未出现的字段保持默认值
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("config load failed (%s): unsupported extension %q", path, ext)
	}

	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.MetricsAddr = strings.TrimSpace(cfg.MetricsAddr)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	var errs []error
	if cfg.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if cfg.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("buffer_size must be positive, got %d", cfg.BufferSize))
	}
	if cfg.Shards <= 0 {
		errs = append(errs, fmt.Errorf("shards must be positive, got %d", cfg.Shards))
	}
	if cfg.MetricsAddr != "" && cfg.MetricsAddr == cfg.Addr {
		errs = append(errs, errors.New("metrics_addr must differ from addr"))
	}
	if _, err := observability.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

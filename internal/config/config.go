package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix 环境变量前缀，层级用 __ 分隔，如 SEATDXF__LOG__LEVEL
const EnvPrefix = "SEATDXF__"

type LogConfig struct {
	Level string `koanf:"level"` // debug|info|warn|error
	JSON  bool   `koanf:"json"`
}

type Config struct {
	Block   string    `koanf:"block"`   // 座位块名称
	Seat    int       `koanf:"seat"`    // 打印第几个座位，从 1 开始
	CSV     bool      `koanf:"csv"`     // 是否输出 CSV
	SVG     string    `koanf:"svg"`     // SVG 输出路径，空表示不输出
	PDF     string    `koanf:"pdf"`     // PDF 输出路径，空表示不输出
	Workers int       `koanf:"workers"` // 并行计算的协程数，0 表示顺序计算
	Log     LogConfig `koanf:"log"`
}

func defaults() map[string]any {
	return map[string]any{
		"block":     "TWOBYFOUR",
		"seat":      12,
		"csv":       true,
		"log.level": "info",
	}
}

// Load 依次合并默认值、YAML 文件（可不存在）、环境变量
func Load(path string) (Config, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err = k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Block) == "" {
		return errors.New("config: block must not be empty")
	}
	if c.Seat < 0 {
		return fmt.Errorf("config: seat %d must not be negative", c.Seat)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers %d must not be negative", c.Workers)
	}

	return nil
}

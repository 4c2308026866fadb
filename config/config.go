// Package config 从 TOML 文件加载服务配置，文件不存在时使用默认值。
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"boxLayout/errors"
	"boxLayout/layout"
	"boxLayout/models"
)

type Config struct {
	Addr          string   `toml:"addr"`
	SubmitURL     string   `toml:"submit_url"`
	SubmitTimeout Duration `toml:"submit_timeout"`
	StaticDir     string   `toml:"static_dir"`
	ImportColumn  string   `toml:"import_column"`
	// 用户输入按 1:Scale 缩放，毫米输入时为 5
	Scale     int              `toml:"scale"`
	Container models.Container `toml:"container"`
	Box       models.Size      `toml:"box"`
	Layout    layout.Options   `toml:"layout"`
}

// Duration 支持 "10s" 这种写法
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() Config {
	return Config{
		Addr:          ":8080",
		SubmitTimeout: Duration{10 * time.Second},
		ImportColumn:  "size",
		Scale:         1,
		Container:     models.Container{Width: 500, Height: 500},
		Box:           models.Size{Width: 50, Height: 50},
		Layout:        layout.DefaultOptions(),
	}
}

// Load path 为空或文件不存在时返回默认配置，文件中的字段覆盖默认值
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "解析配置文件 %s 失败", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !c.Container.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "容器尺寸必须在 1 到 %d 之间: %dx%d", models.MaxDimension, c.Container.Width, c.Container.Height)
	}
	if !c.Box.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "箱子尺寸必须在 1 到 %d 之间: %dx%d", models.MaxDimension, c.Box.Width, c.Box.Height)
	}
	if c.Scale < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "scale 必须 >= 1: %d", c.Scale)
	}
	return nil
}

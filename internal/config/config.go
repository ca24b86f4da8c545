package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zacy-Sokach/PromptReplay/internal/replay"
)

const (
	defaultAutoClose    = 5 * time.Second
	defaultCopiedWindow = 2 * time.Second
	defaultLogLevel     = "info"
)

type Config struct {
	Timing       replay.Timing `yaml:"timing"`
	SmoothScroll *bool         `yaml:"smooth_scroll,omitempty"`
	AutoClose    time.Duration `yaml:"auto_close"`
	CopiedWindow time.Duration `yaml:"copied_window"`
	CatalogFile  string        `yaml:"catalog_file,omitempty"`
	PoolsFile    string        `yaml:"pools_file,omitempty"`
	LogFile      string        `yaml:"log_file,omitempty"`
	LogLevel     string        `yaml:"log_level"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Smooth 是否启用平滑滚动，未设置时启用
func (c *Config) Smooth() bool {
	return c.SmoothScroll == nil || *c.SmoothScroll
}

func (c *Config) applyDefaults() {
	c.Timing = c.Timing.WithDefaults()
	if c.AutoClose <= 0 {
		c.AutoClose = defaultAutoClose
	}
	if c.CopiedWindow <= 0 {
		c.CopiedWindow = defaultCopiedWindow
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

// LoadConfig 读取默认位置的配置文件
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom 读取指定的配置文件，文件不存在时返回默认配置
func LoadConfigFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	config.applyDefaults()
	config.CatalogFile = resolvePath(configPath, config.CatalogFile)
	config.PoolsFile = resolvePath(configPath, config.PoolsFile)
	config.LogFile = resolvePath(configPath, config.LogFile)

	return &config, nil
}

// 相对路径相对于配置文件所在目录
func resolvePath(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

func SaveConfig(config *Config) error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(configPath, config)
}

func SaveConfigTo(configPath string, config *Config) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName        = "promptreplay"
	configFileName = "config.yaml"
	logFileName    = "promptreplay.log"
)

// configHomes 按顺序检查的环境变量；nested 为 true 时在其下再建 promptreplay 子目录
var configHomes = []struct {
	env    string
	nested bool
}{
	{"PROMPTREPLAY_CONFIG_HOME", false},
	{"APPDATA", true},
	{"XDG_CONFIG_HOME", true},
}

// GetConfigDir 获取跨平台的配置目录
// Windows: %APPDATA%/promptreplay
// Linux/macOS: ~/.config/promptreplay
func GetConfigDir() (string, error) {
	for _, h := range configHomes {
		dir := os.Getenv(h.env)
		if dir == "" {
			continue
		}
		if h.nested {
			dir = filepath.Join(dir, appName)
		}
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// Paths 一个配置目录下的配置文件和日志文件
type Paths struct {
	Dir    string
	Config string
	Log    string
}

// PathsFor 以 configPath 所在目录为准，日志与配置文件放在一起
func PathsFor(configPath string) Paths {
	dir := filepath.Dir(configPath)
	return Paths{
		Dir:    dir,
		Config: configPath,
		Log:    filepath.Join(dir, logFileName),
	}
}

// DefaultPaths 默认配置目录下的文件位置
func DefaultPaths() (Paths, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("获取配置目录失败: %w", err)
	}
	return PathsFor(filepath.Join(dir, configFileName)), nil
}

func getConfigPath() (string, error) {
	p, err := DefaultPaths()
	if err != nil {
		return "", err
	}
	return p.Config, nil
}

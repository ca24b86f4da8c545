package cli

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/Zacy-Sokach/PromptReplay/internal/catalog"
	"github.com/Zacy-Sokach/PromptReplay/internal/config"
	"github.com/Zacy-Sokach/PromptReplay/internal/headless"
	"github.com/Zacy-Sokach/PromptReplay/internal/logging"
	"github.com/Zacy-Sokach/PromptReplay/internal/thinking"
	"github.com/Zacy-Sokach/PromptReplay/internal/tui"
)

// app 各个子命令共享的配置、日志和目录
type app struct {
	cfg     *config.Config
	log     logr.Logger
	catalog *catalog.Catalog
	pools   *thinking.Catalog
	close   func()
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	if opts.configPath != "" {
		return config.LoadConfigFrom(opts.configPath)
	}
	return config.LoadConfig()
}

// paths 指定了 --config 时日志跟随配置文件所在目录
func (o *rootOptions) paths() (config.Paths, error) {
	if o.configPath != "" {
		return config.PathsFor(o.configPath), nil
	}
	return config.DefaultPaths()
}

func loadApp(opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logFile := cfg.LogFile
	if logFile == "" {
		paths, err := opts.paths()
		if err != nil {
			return nil, err
		}
		logFile = paths.Log
	}
	log, closeLog, err := logging.New(logging.Options{File: logFile, Level: cfg.LogLevel, Verbose: opts.verbose})
	if err != nil {
		return nil, err
	}

	catalogPath := cfg.CatalogFile
	if opts.catalogPath != "" {
		catalogPath = opts.catalogPath
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		closeLog()
		return nil, err
	}

	var pools *thinking.Catalog
	if cfg.PoolsFile != "" {
		if pools, err = thinking.LoadCatalog(cfg.PoolsFile); err != nil {
			closeLog()
			return nil, err
		}
	}

	log.V(1).Info("configuration loaded", "catalog", catalogPath, "pools", cfg.PoolsFile, "smooth", cfg.Smooth())
	return &app{cfg: cfg, log: log, catalog: cat, pools: pools, close: closeLog}, nil
}

func (a *app) firstEntry() (catalog.Entry, bool) {
	entries := a.catalog.Entries()
	if len(entries) == 0 {
		return catalog.Entry{}, false
	}
	return entries[0], true
}

func (a *app) headlessOptions() headless.Options {
	return headless.Options{
		Pools:  a.pools,
		Timing: a.cfg.Timing,
		Logger: a.log.WithName("headless"),
	}
}

func (a *app) tuiOptions() tui.Options {
	return tui.Options{
		Catalog:      a.catalog,
		Pools:        a.pools,
		Timing:       a.cfg.Timing,
		Smooth:       a.cfg.Smooth(),
		AutoClose:    a.cfg.AutoClose,
		CopiedWindow: a.cfg.CopiedWindow,
		Logger:       a.log.WithName("tui"),
	}
}

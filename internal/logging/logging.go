// Package logging 创建写入日志文件的 logr.Logger。
// 终端界面占用了整个屏幕，所以日志不能写到 stderr。
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置
type Options struct {
	// File 日志文件路径，为空时丢弃日志
	File string
	// Level debug、info、warn 或 error
	Level string
	// Verbose 强制使用 debug 级别
	Verbose bool
}

// New 返回 logger 和用于刷新、关闭日志文件的函数
func New(opts Options) (logr.Logger, func(), error) {
	if opts.File == "" {
		return logr.Discard(), func() {}, nil
	}

	level, err := parseLevel(opts.Level)
	if err != nil {
		return logr.Discard(), func() {}, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("创建日志目录失败: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("打开日志文件失败: %w", err)
	}

	zl := newZap(zapcore.AddSync(f), level)
	closeFn := func() {
		_ = zl.Sync()
		_ = f.Close()
	}
	return zapr.NewLogger(zl), closeFn, nil
}

func newZap(w zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, zap.NewAtomicLevelAt(level))
	return zap.New(core).Named("promptreplay")
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("无效的日志级别 %q: %w", s, err)
	}
	return level, nil
}

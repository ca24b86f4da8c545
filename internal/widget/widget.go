// Package widget 是对话回放的宿主外壳：打开/关闭、复制、离开视野后自动关闭。
//
// Widget 与 replay.Controller 运行在同一个逻辑线程上，它本身不加锁。
package widget

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/go-logr/logr"

	"github.com/Zacy-Sokach/PromptReplay/internal/replay"
	"github.com/Zacy-Sokach/PromptReplay/internal/sched"
)

const (
	// DefaultCopiedWindow 复制成功提示保持的时间
	DefaultCopiedWindow = 2 * time.Second
	// DefaultAutoClose 离开视野多久后自动关闭
	DefaultAutoClose = 5 * time.Second
)

// Clipboard 写入剪贴板
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard 系统剪贴板
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Option 配置 Widget
type Option func(*Widget)

func WithClipboard(c Clipboard) Option {
	return func(w *Widget) {
		if c != nil {
			w.clip = c
		}
	}
}

// WithCopiedWindow 设置复制提示时长，非正数使用默认值
func WithCopiedWindow(d time.Duration) Option {
	return func(w *Widget) {
		if d > 0 {
			w.copiedWindow = d
		}
	}
}

// WithAutoClose 设置自动关闭延迟，非正数使用默认值
func WithAutoClose(d time.Duration) Option {
	return func(w *Widget) {
		if d > 0 {
			w.autoClose = d
		}
	}
}

func WithLogger(log logr.Logger) Option {
	return func(w *Widget) {
		w.log = log
	}
}

// WithDispatch 设置剪贴板写入的执行方式，默认在调用方线程同步执行。
// 系统剪贴板可能调用外部程序，界面宿主应当把写入放到自己的线程之外。
func WithDispatch(fn func(job func())) Option {
	return func(w *Widget) {
		if fn != nil {
			w.dispatch = fn
		}
	}
}

// WithOnChange 在 Widget 自身的状态（打开、复制提示）变化后调用
func WithOnChange(fn func()) Option {
	return func(w *Widget) {
		w.onChange = fn
	}
}

// Widget 包装一个 Controller
type Widget struct {
	sched sched.Scheduler
	ctrl  *replay.Controller
	clip  Clipboard
	log   logr.Logger

	dispatch func(job func())

	copiedWindow time.Duration
	autoClose    time.Duration
	onChange     func()

	open        bool
	visible     bool
	copied      bool
	copiedTimer sched.Timer
	closeTimer  sched.Timer
}

// New 创建 Widget，初始为关闭且可见
func New(s sched.Scheduler, ctrl *replay.Controller, opts ...Option) *Widget {
	w := &Widget{
		sched:        s,
		ctrl:         ctrl,
		clip:         SystemClipboard{},
		log:          logr.Discard(),
		dispatch:     func(job func()) { job() },
		copiedWindow: DefaultCopiedWindow,
		autoClose:    DefaultAutoClose,
		visible:      true,
		copiedTimer:  sched.StoppedTimer{},
		closeTimer:   sched.StoppedTimer{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Controller 返回被包装的控制器
func (w *Widget) Controller() *replay.Controller {
	return w.ctrl
}

// Open 打开 Widget 并开始新的回放，之前的回放被取代
func (w *Widget) Open(req replay.Request) uint64 {
	w.clearCopied()
	w.open = true
	gen := w.ctrl.Start(req)
	if !w.visible {
		w.armAutoClose()
	}
	w.changed()
	return gen
}

// Close 停止回放并关闭
func (w *Widget) Close() {
	w.closeTimer.Stop()
	w.closeTimer = sched.StoppedTimer{}
	w.clearCopied()
	w.ctrl.Stop()
	if w.open {
		w.open = false
		w.log.V(1).Info("widget closed")
	}
	w.changed()
}

// IsOpen 是否打开
func (w *Widget) IsOpen() bool {
	return w.open
}

// CanCopy 回答流式输出结束后才提供复制按钮
func (w *Widget) CanCopy() bool {
	s := w.ctrl.State()
	return w.open && s.Phase == replay.PhaseDone && s.RevealedResponse != ""
}

// Copy 把已显示的回答（还没有回答时用提示）写入剪贴板。
// 写入通过 dispatch 执行，失败只记录调试日志；
// 复制提示总会显示并由调度器计时，再次复制会重新计时。
func (w *Widget) Copy() bool {
	s := w.ctrl.State()
	text := s.RevealedResponse
	if text == "" {
		text = s.RevealedPrompt
	}
	if text == "" {
		return false
	}

	clip, log := w.clip, w.log
	w.dispatch(func() {
		if err := clip.WriteAll(text); err != nil {
			log.V(1).Info("clipboard write failed", "error", err.Error())
		}
	})

	w.copiedTimer.Stop()
	w.copied = true
	w.copiedTimer = w.sched.AfterFunc(w.copiedWindow, func() {
		w.copied = false
		w.copiedTimer = sched.StoppedTimer{}
		w.changed()
	})
	w.changed()
	return true
}

// Copied 复制提示是否仍在显示
func (w *Widget) Copied() bool {
	return w.copied
}

// SetVisible 报告 Widget 所在区域是否在视野内。
// 离开视野时（重新）开始自动关闭计时，回到视野时取消。
func (w *Widget) SetVisible(visible bool) {
	w.visible = visible
	if visible {
		if w.closeTimer.Stop() {
			w.log.V(1).Info("auto close cancelled")
		}
		w.closeTimer = sched.StoppedTimer{}
		return
	}
	if w.open {
		w.armAutoClose()
	}
}

// Visible 最近一次报告的可见性
func (w *Widget) Visible() bool {
	return w.visible
}

func (w *Widget) armAutoClose() {
	w.closeTimer.Stop()
	w.closeTimer = w.sched.AfterFunc(w.autoClose, func() {
		w.closeTimer = sched.StoppedTimer{}
		w.log.V(1).Info("auto closing widget out of view", "after", w.autoClose.String())
		w.Close()
	})
}

func (w *Widget) clearCopied() {
	w.copiedTimer.Stop()
	w.copiedTimer = sched.StoppedTimer{}
	w.copied = false
}

func (w *Widget) changed() {
	if w.onChange != nil {
		w.onChange()
	}
}

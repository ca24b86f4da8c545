// Package scroll 让可滚动区域始终停靠在底部。
package scroll

import (
	"time"

	"github.com/Zacy-Sokach/PromptReplay/internal/sched"
)

// DefaultFrameDelay 平滑滚动每一帧的间隔
const DefaultFrameDelay = 16 * time.Millisecond

// Container 可滚动区域
type Container interface {
	Offset() int
	MaxOffset() int
	SetOffset(offset int)
}

// Option 配置 Synchronizer
type Option func(*Synchronizer)

// WithSmooth 开启或关闭平滑滚动
func WithSmooth(smooth bool) Option {
	return func(s *Synchronizer) {
		s.smooth = smooth
	}
}

// WithFrameDelay 设置平滑滚动的帧间隔
func WithFrameDelay(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.frame = d
		}
	}
}

// Synchronizer 把容器滚动到最大偏移。
// 平滑模式下每帧移动剩余距离的一半，新的 Pin 会取代尚未结束的动画。
type Synchronizer struct {
	sched  sched.Scheduler
	smooth bool
	frame  time.Duration
	token  uint64
	pins   int
}

// New 创建滚动同步器，默认开启平滑滚动
func New(s sched.Scheduler, opts ...Option) *Synchronizer {
	sy := &Synchronizer{
		sched:  s,
		smooth: true,
		frame:  DefaultFrameDelay,
	}
	for _, opt := range opts {
		opt(sy)
	}
	return sy
}

// Pin 把容器滚动到底部
func (s *Synchronizer) Pin(c Container) {
	s.pins++
	if !s.smooth || s.sched == nil {
		c.SetOffset(c.MaxOffset())
		return
	}

	s.token++
	token := s.token

	var frame func()
	frame = func() {
		if token != s.token {
			return
		}
		target, cur := c.MaxOffset(), c.Offset()
		if cur >= target {
			c.SetOffset(target)
			return
		}
		next := cur + (target-cur+1)/2
		c.SetOffset(next)
		if next < target {
			s.sched.AfterFunc(s.frame, frame)
		}
	}
	frame()
}

// Pins 已请求的滚动次数
func (s *Synchronizer) Pins() int {
	return s.pins
}

// For 绑定一个容器，返回可以直接交给控制器的 Target
func (s *Synchronizer) For(c Container) *Target {
	return &Target{sync: s, container: c}
}

// Target 绑定了容器的滚动同步器
type Target struct {
	sync      *Synchronizer
	container Container
}

// Pin 滚动绑定的容器到底部
func (t *Target) Pin() {
	t.sync.Pin(t.container)
}

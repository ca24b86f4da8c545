// Package typewriter 以逐字符的方式揭示文本。
package typewriter

import (
	"math/rand/v2"
	"time"

	"github.com/Zacy-Sokach/PromptReplay/internal/sched"
)

// Pacing 每个字符之后的延迟范围，Min == Max 时为固定延迟
type Pacing struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

// Fixed 固定延迟
func Fixed(d time.Duration) Pacing {
	return Pacing{Min: d, Max: d}
}

// Jitter 在 [min, max] 内均匀抖动的延迟
func Jitter(min, max time.Duration) Pacing {
	return Pacing{Min: min, Max: max}
}

// Delay 为下一个字符独立抽取一次延迟
func (p Pacing) Delay(rng *rand.Rand) time.Duration {
	if p.Max <= p.Min || rng == nil {
		return p.Min
	}
	return p.Min + time.Duration(rng.Int64N(int64(p.Max-p.Min)+1))
}

// Reveal 目标字符串逐渐增长的前缀序列，按 rune 计数
type Reveal struct {
	runes []rune
	pos   int
}

// NewReveal 创建从空前缀开始的揭示序列
func NewReveal(text string) *Reveal {
	return &Reveal{runes: []rune(text)}
}

// Next 前进一个字符并返回新前缀，已经完整揭示时返回 false
func (r *Reveal) Next() (string, bool) {
	if r.pos >= len(r.runes) {
		return string(r.runes), false
	}
	r.pos++
	return string(r.runes[:r.pos]), true
}

// Pos 已揭示的字符数
func (r *Reveal) Pos() int { return r.pos }

// Task 通过调度器驱动一次揭示。
// 每一步执行前都会检查 Alive，返回 false 时静默放弃，不再触发任何回调。
type Task struct {
	Text   string
	Pacing Pacing
	// TickEvery 每揭示多少个字符触发一次 OnTick，0 表示不触发
	TickEvery int
	Rand      *rand.Rand

	Alive    func() bool
	OnPrefix func(prefix string)
	OnTick   func()
	OnDone   func()
}

// Run 立即揭示第一个字符，之后每个字符按 Pacing 延迟调度；
// 最后一个字符的延迟结束后调用 OnDone。空文本立即完成。
func (t *Task) Run(s sched.Scheduler) {
	reveal := NewReveal(t.Text)

	var step func()
	step = func() {
		if t.Alive != nil && !t.Alive() {
			return
		}

		prefix, ok := reveal.Next()
		if !ok {
			if t.OnDone != nil {
				t.OnDone()
			}
			return
		}

		if t.OnPrefix != nil {
			t.OnPrefix(prefix)
		}
		if t.TickEvery > 0 && reveal.Pos()%t.TickEvery == 0 && t.OnTick != nil {
			t.OnTick()
		}
		s.AfterFunc(t.Pacing.Delay(t.Rand), step)
	}
	step()
}

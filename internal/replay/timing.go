package replay

import (
	"time"

	"github.com/Zacy-Sokach/PromptReplay/internal/typewriter"
)

// Timing 回放节奏
type Timing struct {
	Prompt    typewriter.Pacing `yaml:"prompt"`
	Response  typewriter.Pacing `yaml:"response"`
	TickEvery int               `yaml:"tick_every"`

	Settle          time.Duration `yaml:"settle"`
	RestartDebounce time.Duration `yaml:"restart_debounce"`

	ThinkingMin    int           `yaml:"thinking_min"`
	ThinkingMax    int           `yaml:"thinking_max"`
	ThinkingLayout time.Duration `yaml:"thinking_layout"`
	ThinkingGap    time.Duration `yaml:"thinking_gap"`

	FinalScroll   time.Duration `yaml:"final_scroll"`
	CompleteDelay time.Duration `yaml:"complete_delay"`
}

// DefaultTiming 默认节奏
func DefaultTiming() Timing {
	return Timing{
		Prompt:          typewriter.Fixed(40 * time.Millisecond),
		Response:        typewriter.Jitter(15*time.Millisecond, 30*time.Millisecond),
		TickEvery:       10,
		Settle:          500 * time.Millisecond,
		RestartDebounce: 100 * time.Millisecond,
		ThinkingMin:     3,
		ThinkingMax:     4,
		ThinkingLayout:  200 * time.Millisecond,
		ThinkingGap:     1200 * time.Millisecond,
		FinalScroll:     200 * time.Millisecond,
		CompleteDelay:   300 * time.Millisecond,
	}
}

// WithDefaults 用默认值补全未设置的字段
func (t Timing) WithDefaults() Timing {
	d := DefaultTiming()
	if t.Prompt.Min <= 0 && t.Prompt.Max <= 0 {
		t.Prompt = d.Prompt
	}
	if t.Response.Min <= 0 && t.Response.Max <= 0 {
		t.Response = d.Response
	}
	if t.Prompt.Max < t.Prompt.Min {
		t.Prompt.Max = t.Prompt.Min
	}
	if t.Response.Max < t.Response.Min {
		t.Response.Max = t.Response.Min
	}
	if t.TickEvery <= 0 {
		t.TickEvery = d.TickEvery
	}
	if t.Settle <= 0 {
		t.Settle = d.Settle
	}
	if t.RestartDebounce <= 0 {
		t.RestartDebounce = d.RestartDebounce
	}
	if t.ThinkingMin <= 0 {
		t.ThinkingMin = d.ThinkingMin
	}
	if t.ThinkingMax < t.ThinkingMin {
		t.ThinkingMax = max(t.ThinkingMin, d.ThinkingMax)
	}
	if t.ThinkingLayout <= 0 {
		t.ThinkingLayout = d.ThinkingLayout
	}
	if t.ThinkingGap <= 0 {
		t.ThinkingGap = d.ThinkingGap
	}
	if t.FinalScroll <= 0 {
		t.FinalScroll = d.FinalScroll
	}
	if t.CompleteDelay <= 0 {
		t.CompleteDelay = d.CompleteDelay
	}
	return t
}

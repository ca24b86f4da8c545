package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zacy-Sokach/PromptReplay/internal/sched"
)

// timerMsg 定时器到期，回调在 Update 中执行
type timerMsg struct {
	timer *teaTimer
}

type teaTimer struct {
	fn      func()
	stopped bool
	fired   bool
}

func (t *teaTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Scheduler 把 AfterFunc 转换为 tea.Tick 命令，使回调都运行在 Bubble Tea 的 Update 里。
// 登记的命令会在每次 Update 结束时通过 Drain 交给 Bubble Tea。
type Scheduler struct {
	pending []tea.Cmd
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) sched.Timer {
	t := &teaTimer{fn: fn}
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{timer: t}
	}))
	return t
}

// Go 把 fn 作为命令交给 Bubble Tea，在 Update 之外执行。
// fn 不能修改模型状态。
func (s *Scheduler) Go(fn func()) {
	s.pending = append(s.pending, func() tea.Msg {
		fn()
		return nil
	})
}

// Drain 取出尚未交给 Bubble Tea 的命令
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Pending 尚未交给 Bubble Tea 的命令数量
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

func (s *Scheduler) fire(msg timerMsg) {
	t := msg.timer
	if t == nil || t.stopped || t.fired {
		return
	}
	t.fired = true
	t.fn()
}

// Package sched 提供单逻辑线程的定时调度抽象。
//
// 所有回调都在同一个逻辑线程上串行执行：Loop 使用一个专用 goroutine，
// Manual 在调用 Advance 的 goroutine 上执行（用于测试），
// 终端界面则通过 tea.Tick 把回调送回 Bubble Tea 的 Update。
package sched

import "time"

// Timer 一次性定时回调的句柄
type Timer interface {
	// Stop 取消尚未触发的回调，返回 true 表示本次调用阻止了触发
	Stop() bool
}

// Scheduler 延迟执行回调
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// StoppedTimer 已经失效的定时器，Stop 总是返回 false
type StoppedTimer struct{}

func (StoppedTimer) Stop() bool { return false }

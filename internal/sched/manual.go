package sched

import "time"

// Manual 虚拟时钟调度器，时间只在调用 Advance 时前进。
// 不是并发安全的，调用方必须在同一个 goroutine 上使用。
type Manual struct {
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	owner *Manual
	due   time.Duration
	seq   uint64
	fn    func()
}

// NewManual 创建虚拟时钟，起点为 0
func NewManual() *Manual {
	return &Manual{}
}

// Now 返回虚拟时钟自创建以来经过的时间
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending 返回尚未触发的回调数量
func (m *Manual) Pending() int {
	return len(m.pending)
}

// AfterFunc 登记一个在虚拟时间 now+d 触发的回调
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{owner: m, due: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Advance 把虚拟时间推进 d，按触发时间顺序执行到期的回调（同一时刻按登记顺序）。
// 回调中新登记且在窗口内到期的回调也会被执行。
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next < 0 {
			break
		}
		t := m.pending[next]
		m.pending = append(m.pending[:next], m.pending[next+1:]...)
		m.now = t.due
		t.fn()
	}
	m.now = target
}

// RunUntilIdle 不断跳到下一个到期回调直到没有待执行回调，
// 或虚拟时间超过 limit。返回本次推进的时间。
func (m *Manual) RunUntilIdle(limit time.Duration) time.Duration {
	start := m.now
	for len(m.pending) > 0 {
		next := m.nextDue(-1)
		t := m.pending[next]
		if t.due-start > limit {
			break
		}
		m.Advance(t.due - m.now)
	}
	return m.now - start
}

// nextDue 返回最早到期回调的下标，target >= 0 时只考虑 due <= target 的回调
func (m *Manual) nextDue(target time.Duration) int {
	best := -1
	for i, t := range m.pending {
		if target >= 0 && t.due > target {
			continue
		}
		if best < 0 || t.due < m.pending[best].due ||
			(t.due == m.pending[best].due && t.seq < m.pending[best].seq) {
			best = i
		}
	}
	return best
}

func (t *manualTimer) Stop() bool {
	m := t.owner
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return true
		}
	}
	return false
}

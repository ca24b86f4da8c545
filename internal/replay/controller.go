// Package replay 编排一次完整的对话回放：输入提示、思考、流式输出回答。
//
// Controller 不是并发安全的，所有方法和它调度的回调都必须运行在同一个逻辑线程上
// （参见 sched 包）。每个被调度的回调都会捕获调度时的代数，
// 触发时若代数已经变化则不做任何修改，这是唯一的取消机制。
package replay

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/Zacy-Sokach/PromptReplay/internal/sched"
	"github.com/Zacy-Sokach/PromptReplay/internal/thinking"
	"github.com/Zacy-Sokach/PromptReplay/internal/typewriter"
)

// Pinner 把显示区域滚动到底部
type Pinner interface {
	Pin()
}

// Option 配置 Controller
type Option func(*Controller)

// WithTiming 设置回放节奏，未设置的字段使用默认值
func WithTiming(t Timing) Option {
	return func(c *Controller) {
		c.timing = t.WithDefaults()
	}
}

// WithCatalog 设置思考消息池
func WithCatalog(catalog *thinking.Catalog) Option {
	return func(c *Controller) {
		if catalog != nil {
			c.catalog = catalog
		}
	}
}

// WithRand 设置随机源，测试中用于固定结果
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithLogger 设置日志
func WithLogger(log logr.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithPinner 设置滚动同步
func WithPinner(p Pinner) Option {
	return func(c *Controller) {
		c.pinner = p
	}
}

// WithObserver 每次状态变化后调用 fn
func WithObserver(fn func(State)) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

// Controller 对话回放控制器，独占状态和代数计数
type Controller struct {
	sched    sched.Scheduler
	catalog  *thinking.Catalog
	timing   Timing
	rng      *rand.Rand
	log      logr.Logger
	pinner   Pinner
	observer func(State)

	gen   uint64
	state State
	req   Request
}

// New 创建控制器
func New(s sched.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		sched:  s,
		timing: DefaultTiming(),
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.catalog == nil {
		c.catalog = thinking.DefaultCatalog()
	}
	return c
}

// Start 开始新的回放并返回其代数。
// 之前代数中所有待触发的回调都会失效；如果之前不是空闲状态，
// 提示的输入会在短暂的重启防抖之后才开始。
func (c *Controller) Start(req Request) uint64 {
	prev := c.state.Phase

	c.gen++
	gen := c.gen
	c.req = req
	c.state = State{Phase: PhaseTypingPrompt, Generation: gen}

	log := c.log.WithValues("request", uuid.NewString(), "generation", gen)
	if prev != PhaseIdle {
		log.V(1).Info("superseding conversation", "previousPhase", prev.String())
	}
	log.Info("conversation started", "topic", req.Topic, "promptLen", len(req.Prompt), "responseLen", len(req.Response))
	c.notify()

	begin := func() {
		if c.alive(gen) {
			c.typePrompt(gen)
		}
	}
	if prev == PhaseIdle {
		begin()
	} else {
		c.sched.AfterFunc(c.timing.RestartDebounce, begin)
	}
	return gen
}

// Stop 使当前代数失效并回到空闲状态
func (c *Controller) Stop() {
	if c.state.Phase == PhaseIdle {
		return
	}
	c.gen++
	c.state = State{Phase: PhaseIdle, Generation: c.gen}
	c.log.V(1).Info("conversation stopped", "generation", c.gen)
	c.notify()
}

// State 返回当前状态的快照
func (c *Controller) State() State {
	s := c.state
	s.Thinking = slices.Clone(s.Thinking)
	return s
}

func (c *Controller) alive(gen uint64) bool {
	return c.gen == gen
}

func (c *Controller) aliveFn(gen uint64) func() bool {
	return func() bool { return c.alive(gen) }
}

func (c *Controller) notify() {
	if c.observer != nil {
		c.observer(c.State())
	}
}

func (c *Controller) pin() {
	if c.pinner != nil {
		c.pinner.Pin()
	}
}

func (c *Controller) typePrompt(gen uint64) {
	task := &typewriter.Task{
		Text:      c.req.Prompt,
		Pacing:    c.timing.Prompt,
		TickEvery: c.timing.TickEvery,
		Rand:      c.rng,
		Alive:     c.aliveFn(gen),
		OnPrefix: func(prefix string) {
			c.state.RevealedPrompt = prefix
			c.notify()
		},
		OnTick: c.pin,
		OnDone: func() { c.settle(gen, c.think) },
	}
	task.Run(c.sched)
}

// settle 在两个阶段之间插入固定停顿
func (c *Controller) settle(gen uint64, next func(uint64)) {
	c.state.Settling = true
	c.notify()

	c.sched.AfterFunc(c.timing.Settle, func() {
		if !c.alive(gen) {
			return
		}
		c.state.Settling = false
		next(gen)
	})
}

func (c *Controller) think(gen uint64) {
	c.state.Phase = PhaseThinking
	c.state.Thinking = nil
	c.notify()

	pool := c.catalog.PoolFor(c.req.Topic)
	count := thinking.Count(c.rng, c.timing.ThinkingMin, c.timing.ThinkingMax)

	var show func(i int)
	show = func(i int) {
		if !c.alive(gen) {
			return
		}
		if i >= count {
			c.settle(gen, c.stream)
			return
		}

		if msg := thinking.Pick(c.rng, pool, c.state.Thinking); msg != "" {
			// 追加到新切片，已经发出的快照不受影响
			next := make([]string, len(c.state.Thinking), len(c.state.Thinking)+1)
			copy(next, c.state.Thinking)
			c.state.Thinking = append(next, msg)
			c.notify()
		}

		c.sched.AfterFunc(c.timing.ThinkingLayout, func() {
			if !c.alive(gen) {
				return
			}
			c.pin()
			c.sched.AfterFunc(c.timing.ThinkingGap, func() { show(i + 1) })
		})
	}
	show(0)
}

func (c *Controller) stream(gen uint64) {
	c.state.Phase = PhaseStreamingResponse
	c.state.RevealedResponse = ""
	c.notify()

	task := &typewriter.Task{
		Text:      c.req.Response,
		Pacing:    c.timing.Response,
		TickEvery: c.timing.TickEvery,
		Rand:      c.rng,
		Alive:     c.aliveFn(gen),
		OnPrefix: func(prefix string) {
			c.state.RevealedResponse = prefix
			c.notify()
		},
		OnTick: c.pin,
		OnDone: func() { c.finish(gen) },
	}
	task.Run(c.sched)
}

func (c *Controller) finish(gen uint64) {
	c.state.Phase = PhaseDone
	c.notify()
	c.log.V(1).Info("conversation finished", "generation", gen, "thinking", len(c.state.Thinking))

	c.sched.AfterFunc(c.timing.FinalScroll, func() {
		if c.alive(gen) {
			c.pin()
		}
	})

	if onComplete := c.req.OnComplete; onComplete != nil {
		c.sched.AfterFunc(c.timing.CompleteDelay, func() {
			if c.alive(gen) {
				onComplete()
			}
		})
	}
}

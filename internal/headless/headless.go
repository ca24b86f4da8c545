// Package headless 在没有终端界面的环境中回放对话，把过程以纯文本写出。
package headless

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/go-logr/logr"

	"github.com/Zacy-Sokach/PromptReplay/internal/markdown"
	"github.com/Zacy-Sokach/PromptReplay/internal/replay"
	"github.com/Zacy-Sokach/PromptReplay/internal/sched"
	"github.com/Zacy-Sokach/PromptReplay/internal/thinking"
)

// Options 回放选项，零值可用
type Options struct {
	Pools  *thinking.Catalog
	Timing replay.Timing
	Logger logr.Logger
	Rand   *rand.Rand
}

// Play 在 sched.Loop 上回放一次对话，直到完成或 ctx 被取消
func Play(ctx context.Context, w io.Writer, req replay.Request, opts Options) error {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := sched.NewLoop(0)
	p := &printer{w: w}
	ctrl := replay.New(loop,
		replay.WithTiming(opts.Timing),
		replay.WithCatalog(opts.Pools),
		replay.WithRand(opts.Rand),
		replay.WithLogger(log),
		replay.WithObserver(p.observe),
	)

	onComplete := req.OnComplete
	req.OnComplete = func() {
		if onComplete != nil {
			onComplete()
		}
		p.finished = true
		cancel()
	}
	loop.Post(func() { ctrl.Start(req) })

	err := loop.Run(ctx)
	if p.err != nil {
		return fmt.Errorf("写入输出失败: %w", p.err)
	}
	if p.finished {
		return nil
	}
	return err
}

// printer 只在循环线程上被调用
type printer struct {
	w        io.Writer
	err      error
	finished bool

	phase    replay.Phase
	prompt   int
	thinking int
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) observe(s replay.State) {
	if s.Phase != p.phase {
		p.enter(s)
	}

	switch s.Phase {
	case replay.PhaseTypingPrompt:
		if len(s.RevealedPrompt) > p.prompt {
			p.printf("%s", s.RevealedPrompt[p.prompt:])
			p.prompt = len(s.RevealedPrompt)
		}
	case replay.PhaseThinking:
		for _, msg := range s.Thinking[p.thinking:] {
			p.printf("  · %s\n", msg)
		}
		p.thinking = len(s.Thinking)
	}
}

func (p *printer) enter(s replay.State) {
	prev := p.phase
	p.phase = s.Phase

	switch s.Phase {
	case replay.PhaseTypingPrompt:
		if prev != replay.PhaseIdle {
			p.printf("\n\n")
		}
		p.prompt = 0
		p.thinking = 0
		p.printf("你: ")
	case replay.PhaseThinking:
		p.printf("\n\n思考中...\n")
	case replay.PhaseStreamingResponse:
		p.printf("\n回答中...\n")
	case replay.PhaseDone:
		if s.RevealedResponse != "" {
			p.printf("\nAI:\n%s\n", markdown.Terminal(s.RevealedResponse))
		}
	}
}

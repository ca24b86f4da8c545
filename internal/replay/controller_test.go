package replay

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zacy-Sokach/PromptReplay/internal/sched"
	"github.com/Zacy-Sokach/PromptReplay/internal/thinking"
)

type countingPinner struct{ n int }

func (p *countingPinner) Pin() { p.n++ }

type recorder struct {
	states []State
}

func (r *recorder) observe(s State) { r.states = append(r.states, s) }

func newTestController(t *testing.T, opts ...Option) (*Controller, *sched.Manual, *recorder) {
	t.Helper()
	clock := sched.NewManual()
	rec := &recorder{}
	base := []Option{
		WithRand(rand.New(rand.NewPCG(42, 7))),
		WithObserver(rec.observe),
	}
	return New(clock, append(base, opts...)...), clock, rec
}

func TestEndToEndSimpleRequest(t *testing.T) {
	c, clock, _ := newTestController(t)

	completed := 0
	c.Start(Request{Prompt: "Hi", Response: "Hello", OnComplete: func() { completed++ }})
	clock.RunUntilIdle(time.Minute)

	s := c.State()
	assert.Equal(t, PhaseDone, s.Phase)
	assert.Equal(t, "Hi", s.RevealedPrompt)
	assert.Equal(t, "Hello", s.RevealedResponse)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 0, clock.Pending())
}

func TestOnCompleteFiresShortlyAfterStreaming(t *testing.T) {
	clock := sched.NewManual()

	var doneAt, completeAt time.Duration
	c := New(clock,
		WithRand(rand.New(rand.NewPCG(1, 1))),
		WithObserver(func(s State) {
			if s.Phase == PhaseDone && doneAt == 0 {
				doneAt = clock.Now()
			}
		}),
	)
	c.Start(Request{Prompt: "p", Response: "r", OnComplete: func() { completeAt = clock.Now() }})
	clock.RunUntilIdle(time.Minute)

	require.NotZero(t, doneAt)
	require.NotZero(t, completeAt)
	assert.LessOrEqual(t, completeAt-doneAt, 300*time.Millisecond)
}

func TestPhaseOrderAndPrefixInvariants(t *testing.T) {
	c, clock, rec := newTestController(t)

	prompt := "Tell me about the conference website project"
	response := "### Conference\n\n**Features:**\n• Registration\n• Payments"
	c.Start(Request{Prompt: prompt, Response: response, Topic: "ICCCA 2026"})
	clock.RunUntilIdle(time.Minute)

	var phases []Phase
	lastPrompt, lastResponse, lastThinking := -1, -1, -1
	for _, s := range rec.states {
		if len(phases) == 0 || phases[len(phases)-1] != s.Phase {
			phases = append(phases, s.Phase)
			// 进入新阶段时对应的内容必须是空的
			switch s.Phase {
			case PhaseTypingPrompt:
				assert.Empty(t, s.RevealedPrompt)
				lastPrompt = 0
			case PhaseThinking:
				assert.Empty(t, s.Thinking)
				lastThinking = 0
			case PhaseStreamingResponse:
				assert.Empty(t, s.RevealedResponse)
				lastResponse = 0
			}
		}

		switch s.Phase {
		case PhaseTypingPrompt:
			require.GreaterOrEqual(t, len(s.RevealedPrompt), lastPrompt)
			lastPrompt = len(s.RevealedPrompt)
		case PhaseThinking:
			require.GreaterOrEqual(t, len(s.Thinking), lastThinking)
			lastThinking = len(s.Thinking)
			assert.Equal(t, prompt, s.RevealedPrompt)
		case PhaseStreamingResponse:
			require.GreaterOrEqual(t, len(s.RevealedResponse), lastResponse)
			lastResponse = len(s.RevealedResponse)
		}
	}

	assert.Equal(t, []Phase{PhaseTypingPrompt, PhaseThinking, PhaseStreamingResponse, PhaseDone}, phases)
	final := c.State()
	assert.Equal(t, prompt, final.RevealedPrompt)
	assert.Equal(t, response, final.RevealedResponse)
}

func TestThinkingShowsThreeOrFourDistinctMessages(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		c, clock, _ := newTestController(t, WithRand(rand.New(rand.NewPCG(seed, seed+1))))
		c.Start(Request{Prompt: "a", Response: "b", Topic: "Education"})
		clock.RunUntilIdle(time.Minute)

		msgs := c.State().Thinking
		require.GreaterOrEqual(t, len(msgs), 3)
		require.LessOrEqual(t, len(msgs), 4)

		seen := map[string]bool{}
		for _, m := range msgs {
			assert.False(t, seen[m], "seed %d repeated %q", seed, m)
			seen[m] = true
		}
	}
}

func TestThinkingToleratesTinyPool(t *testing.T) {
	catalog := &thinking.Catalog{Default: []string{"only"}}
	c, clock, _ := newTestController(t, WithCatalog(catalog))

	c.Start(Request{Prompt: "a", Response: "b"})
	clock.RunUntilIdle(time.Minute)

	s := c.State()
	assert.Equal(t, PhaseDone, s.Phase)
	require.GreaterOrEqual(t, len(s.Thinking), 3)
	for _, m := range s.Thinking {
		assert.Equal(t, "only", m)
	}
}

func TestEmptyResponseFinishesAfterThinking(t *testing.T) {
	c, clock, rec := newTestController(t)

	completed := 0
	c.Start(Request{Prompt: "Hi", OnComplete: func() { completed++ }})
	clock.RunUntilIdle(time.Minute)

	s := c.State()
	assert.Equal(t, PhaseDone, s.Phase)
	assert.Empty(t, s.RevealedResponse)
	assert.NotEmpty(t, s.Thinking)
	assert.Equal(t, 1, completed)

	sawStreaming := false
	for _, st := range rec.states {
		if st.Phase == PhaseStreamingResponse {
			sawStreaming = true
		}
	}
	assert.True(t, sawStreaming, "streaming phase should still be entered")
}

func TestSupersedeDuringThinking(t *testing.T) {
	c, clock, rec := newTestController(t)

	aCompleted, bCompleted := 0, 0
	c.Start(Request{Prompt: "alpha question", Response: "alpha answer", OnComplete: func() { aCompleted++ }})

	// 推进到思考阶段内部
	for c.State().Phase != PhaseThinking {
		clock.Advance(10 * time.Millisecond)
	}
	clock.Advance(300 * time.Millisecond)
	require.Equal(t, PhaseThinking, c.State().Phase)

	genB := c.Start(Request{Prompt: "beta question", Response: "beta answer", OnComplete: func() { bCompleted++ }})
	mark := len(rec.states)

	s := c.State()
	assert.Equal(t, PhaseTypingPrompt, s.Phase)
	assert.Empty(t, s.RevealedPrompt)
	assert.Empty(t, s.Thinking)

	clock.RunUntilIdle(time.Minute)

	for _, st := range rec.states[mark:] {
		require.Equal(t, genB, st.Generation, "state mutation from a stale generation")
		assert.NotContains(t, st.RevealedPrompt, "alpha")
		assert.NotContains(t, st.RevealedResponse, "alpha")
	}

	final := c.State()
	assert.Equal(t, PhaseDone, final.Phase)
	assert.Equal(t, "beta question", final.RevealedPrompt)
	assert.Equal(t, "beta answer", final.RevealedResponse)
	assert.Equal(t, 0, aCompleted)
	assert.Equal(t, 1, bCompleted)
}

func TestSupersedeDebouncesPromptReveal(t *testing.T) {
	c, clock, _ := newTestController(t)

	c.Start(Request{Prompt: "first", Response: "x"})
	clock.Advance(100 * time.Millisecond)

	c.Start(Request{Prompt: "second", Response: "y"})
	clock.Advance(99 * time.Millisecond)
	assert.Empty(t, c.State().RevealedPrompt, "reveal began before the restart debounce")

	clock.Advance(time.Millisecond)
	assert.Equal(t, "s", c.State().RevealedPrompt)
}

func TestStartFromIdleRevealsImmediately(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Start(Request{Prompt: "go", Response: "x"})
	assert.Equal(t, "g", c.State().RevealedPrompt)
}

func TestSupersedeAfterDoneSkipsStaleComplete(t *testing.T) {
	c, clock, _ := newTestController(t)

	aCompleted := 0
	c.Start(Request{Prompt: "a", Response: "b", OnComplete: func() { aCompleted++ }})
	for c.State().Phase != PhaseDone {
		clock.Advance(5 * time.Millisecond)
	}

	// OnComplete 还在 300ms 的延迟中
	c.Start(Request{Prompt: "c", Response: "d"})
	clock.RunUntilIdle(time.Minute)
	assert.Equal(t, 0, aCompleted)
}

func TestStopInvalidatesPendingWork(t *testing.T) {
	c, clock, rec := newTestController(t)

	c.Start(Request{Prompt: "some prompt", Response: "some response"})
	clock.Advance(120 * time.Millisecond)

	c.Stop()
	mark := len(rec.states)
	clock.RunUntilIdle(time.Minute)

	assert.Equal(t, PhaseIdle, c.State().Phase)
	assert.Len(t, rec.states, mark, "stopped controller kept mutating state")
}

func TestRevealTicksDriveScroll(t *testing.T) {
	pinner := &countingPinner{}
	c, clock, _ := newTestController(t, WithPinner(pinner), WithTiming(Timing{ThinkingMin: 3, ThinkingMax: 3}))

	// 20 个字符的提示 → 2 次；3 条思考消息 → 3 次；
	// 30 个字符的回答 → 3 次；结束后 → 1 次
	c.Start(Request{
		Prompt:   "abcdefghijklmnopqrst",
		Response: "abcdefghijklmnopqrstuvwxyz0123",
	})
	clock.RunUntilIdle(time.Minute)

	assert.Equal(t, 9, pinner.n)
}

func TestStateSnapshotIsImmutable(t *testing.T) {
	c, clock, _ := newTestController(t)
	c.Start(Request{Prompt: "a", Response: "b"})
	for len(c.State().Thinking) == 0 {
		clock.Advance(10 * time.Millisecond)
	}

	snap := c.State()
	snap.Thinking[0] = "mutated"
	assert.NotEqual(t, "mutated", c.State().Thinking[0])
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "streaming_response", PhaseStreamingResponse.String())
	assert.True(t, PhaseThinking.Active())
	assert.False(t, PhaseDone.Active())
}

func TestTimingWithDefaults(t *testing.T) {
	got := Timing{TickEvery: 5, ThinkingMin: 6}.WithDefaults()
	want := DefaultTiming()

	assert.Equal(t, 5, got.TickEvery)
	assert.Equal(t, 6, got.ThinkingMin)
	assert.Equal(t, 6, got.ThinkingMax)
	assert.Equal(t, want.Prompt, got.Prompt)
	assert.Equal(t, want.Response, got.Response)
	assert.Equal(t, want.Settle, got.Settle)
}

func TestDefaultPhasePacing(t *testing.T) {
	clock := sched.NewManual()

	var promptAt, messageAt []time.Duration
	var thinkingAt, streamingAt time.Duration
	lastPrompt, lastThinking := "", 0
	prev := PhaseIdle
	c := New(clock,
		WithRand(rand.New(rand.NewPCG(3, 5))),
		WithObserver(func(s State) {
			if s.RevealedPrompt != lastPrompt {
				lastPrompt = s.RevealedPrompt
				promptAt = append(promptAt, clock.Now())
			}
			if len(s.Thinking) > lastThinking {
				lastThinking = len(s.Thinking)
				messageAt = append(messageAt, clock.Now())
			}
			if s.Phase != prev {
				switch s.Phase {
				case PhaseThinking:
					thinkingAt = clock.Now()
				case PhaseStreamingResponse:
					streamingAt = clock.Now()
				}
				prev = s.Phase
			}
		}),
	)
	c.Start(Request{Prompt: "abc", Response: "ok"})
	clock.RunUntilIdle(time.Minute)

	// 提示固定 40ms 一个字符，最后一个字符之后再等 40ms 与 500ms 的停顿
	assert.Equal(t, []time.Duration{0, 40 * time.Millisecond, 80 * time.Millisecond}, promptAt)
	assert.Equal(t, 620*time.Millisecond, thinkingAt)

	require.GreaterOrEqual(t, len(messageAt), 3)
	require.LessOrEqual(t, len(messageAt), 4)
	assert.Equal(t, thinkingAt, messageAt[0])
	for i := 1; i < len(messageAt); i++ {
		assert.Equal(t, 1400*time.Millisecond, messageAt[i]-messageAt[i-1], "gap before message %d", i)
	}

	last := messageAt[len(messageAt)-1]
	assert.Equal(t, last+1400*time.Millisecond+500*time.Millisecond, streamingAt)
	assert.Equal(t, PhaseDone, c.State().Phase)
}

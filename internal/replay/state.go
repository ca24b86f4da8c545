package replay

// Phase 对话回放状态机的阶段
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTypingPrompt
	PhaseThinking
	PhaseStreamingResponse
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTypingPrompt:
		return "typing_prompt"
	case PhaseThinking:
		return "thinking"
	case PhaseStreamingResponse:
		return "streaming_response"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Active 是否处于正在播放的阶段
func (p Phase) Active() bool {
	return p == PhaseTypingPrompt || p == PhaseThinking || p == PhaseStreamingResponse
}

// Request 一次回放请求，被接受后不再修改
type Request struct {
	Prompt   string
	Response string
	Topic    string
	// OnComplete 每个被接受的请求最多触发一次，且只在其代数仍为当前代数时触发
	OnComplete func()
}

// State 控制器状态的只读快照
type State struct {
	Phase            Phase
	RevealedPrompt   string
	Thinking         []string
	RevealedResponse string
	Generation       uint64
	// Settling 阶段之间的停顿期间为 true，界面据此隐藏输入光标
	Settling bool
}

// Typing 当前是否有文本正在逐字揭示
func (s State) Typing() bool {
	return !s.Settling && (s.Phase == PhaseTypingPrompt || s.Phase == PhaseStreamingResponse)
}

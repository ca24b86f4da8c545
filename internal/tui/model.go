package tui

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/Zacy-Sokach/PromptReplay/internal/catalog"
	"github.com/Zacy-Sokach/PromptReplay/internal/replay"
	"github.com/Zacy-Sokach/PromptReplay/internal/scroll"
	"github.com/Zacy-Sokach/PromptReplay/internal/thinking"
	"github.com/Zacy-Sokach/PromptReplay/internal/widget"
)

// Version 由 main 包设置，显示在标题栏
var Version string

// Options 创建 Model 所需的依赖，零值字段使用默认值
type Options struct {
	Catalog      *catalog.Catalog
	Pools        *thinking.Catalog
	Timing       replay.Timing
	Smooth       bool
	AutoClose    time.Duration
	CopiedWindow time.Duration
	Clipboard    widget.Clipboard
	Rand         *rand.Rand
	Logger       logr.Logger
}

type Model struct {
	catalog *catalog.Catalog
	sched   *Scheduler
	ctrl    *replay.Controller
	widget  *widget.Widget
	log     logr.Logger

	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap

	section int
	chip    int
	owner   int    // 对话所属的区域，-1 表示没有打开的对话
	active  string // 正在回放的关键字
	focused bool
	state   replay.State

	width  int
	height int
	ready  bool
}

// New 创建终端界面模型。Model 必须以指针形式交给 tea.NewProgram。
func New(opts Options) *Model {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	m := &Model{
		catalog:  cat,
		sched:    NewScheduler(),
		log:      log,
		viewport: viewport.New(80, 20),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Points), spinner.WithStyle(dotStyle)),
		help:     help.New(),
		keys:     defaultKeyMap(),
		owner:    -1,
		focused:  true,
	}

	sy := scroll.New(m.sched, scroll.WithSmooth(opts.Smooth))
	m.ctrl = replay.New(m.sched,
		replay.WithTiming(opts.Timing),
		replay.WithCatalog(opts.Pools),
		replay.WithRand(opts.Rand),
		replay.WithLogger(log.WithName("replay")),
		// 观察者先刷新 viewport 内容，随后的滚动才能拿到新的高度
		replay.WithObserver(m.onState),
		replay.WithPinner(sy.For(scroll.ViewportContainer{VP: &m.viewport})),
	)
	m.widget = widget.New(m.sched, m.ctrl,
		widget.WithClipboard(opts.Clipboard),
		widget.WithDispatch(m.sched.Go),
		widget.WithAutoClose(opts.AutoClose),
		widget.WithCopiedWindow(opts.CopiedWindow),
		widget.WithLogger(log.WithName("widget")),
		widget.WithOnChange(m.refresh),
	)
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case timerMsg:
		m.sched.fire(msg)

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			cmds = append(cmds, cmd)
			break
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.FocusMsg:
		m.focused = true
		m.syncVisibility()

	case tea.BlurMsg:
		m.focused = false
		m.syncVisibility()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.state.Phase == replay.PhaseThinking {
			m.refresh()
		}
	}

	cmds = append(cmds, m.sched.Drain())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.widget.Close()
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
	case key.Matches(msg, m.keys.Prev):
		m.moveChip(-1)
	case key.Matches(msg, m.keys.Next):
		m.moveChip(1)
	case key.Matches(msg, m.keys.NextSection):
		m.moveSection(1)
	case key.Matches(msg, m.keys.PrevSection):
		m.moveSection(-1)
	case key.Matches(msg, m.keys.Play):
		m.play()
	case key.Matches(msg, m.keys.Copy):
		if m.widget.CanCopy() {
			m.widget.Copy()
		}
	case key.Matches(msg, m.keys.Close):
		if m.widget.IsOpen() {
			m.widget.Close()
		}
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) currentSection() (catalog.Section, bool) {
	if m.section < 0 || m.section >= len(m.catalog.Sections) {
		return catalog.Section{}, false
	}
	return m.catalog.Sections[m.section], true
}

func (m *Model) moveChip(delta int) {
	s, ok := m.currentSection()
	if !ok || len(s.Entries) == 0 {
		return
	}
	n := len(s.Entries)
	m.chip = (m.chip + delta + n) % n
}

func (m *Model) moveSection(delta int) {
	n := len(m.catalog.Sections)
	if n == 0 {
		return
	}
	m.section = (m.section + delta + n) % n
	m.chip = 0
	m.syncVisibility()
	m.refresh()
}

// play 以光标所在的关键字开始新的对话，正在进行的对话被取代
func (m *Model) play() {
	s, ok := m.currentSection()
	if !ok || m.chip >= len(s.Entries) {
		return
	}
	entry := s.Entries[m.chip]

	m.owner = m.section
	m.active = entry.Keyword
	m.widget.SetVisible(m.focused)

	keyword := entry.Keyword
	m.widget.Open(entry.Request(func() {
		m.log.V(1).Info("conversation complete", "keyword", keyword)
	}))
}

// syncVisibility 终端失去焦点或切换到其他区域都算离开视野
func (m *Model) syncVisibility() {
	if !m.widget.IsOpen() {
		return
	}
	m.widget.SetVisible(m.focused && m.section == m.owner)
}

func (m *Model) onState(s replay.State) {
	m.state = s
	m.refresh()
}

func (m *Model) refresh() {
	if !m.widget.IsOpen() {
		m.owner = -1
		m.active = ""
	}
	m.viewport.SetContent(m.conversationView())
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.help.Width = width

	m.viewport.Width = width
	m.viewport.Height = max(3, height-chromeHeight(m))
	m.ready = true
	m.refresh()
}

package dashboard

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/result"
)

// sampleMsg is sent into the running program on every completed sample.
type sampleMsg struct {
	success bool
}

type tickMsg time.Time

// Model renders a live total/success/fail counter with a spring-eased
// progress bar settling toward the running success rate, mirroring the
// teacher's animSpring pulsing-indicator idiom
// (pkg/tui/init.go's harmonica.NewSpring(harmonica.FPS(30), ...) pattern).
type Model struct {
	total, success, fail int

	spring   harmonica.Spring
	pos, vel float64
	target   float64

	done bool
}

func NewModel() Model {
	return Model{spring: harmonica.NewSpring(harmonica.FPS(30), 6.0, 1.0)}
}

func (m Model) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sampleMsg:
		m.total++
		if msg.success {
			m.success++
		} else {
			m.fail++
		}
		m.target = float64(m.success) / float64(m.total)
		return m, nil
	case tickMsg:
		m.pos, m.vel = m.spring.Update(m.pos, m.vel, m.target)
		return m, tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	const width = 30
	filled := int(m.pos * width)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := okStyle.Render(repeat("#", filled)) + dimStyle.Render(repeat(".", width-filled))
	return fmt.Sprintf("%s [%s] %s  total=%d %s=%d %s=%d\n",
		titleStyle.Render("surge"), bar,
		dimStyle.Render(fmt.Sprintf("%3.0f%%", m.target*100)),
		m.total, okStyle.Render("ok"), m.success, failStyle.Render("fail"), m.fail)
}

func repeat(s string, n int) string {
	out := make([]byte, 0, n*len(s))
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// Listener adapts SampleOccurred notifications into messages sent to a
// running bubbletea Program, so the engine's worker goroutines never touch
// the TUI's own model state directly.
type Listener struct {
	program *tea.Program
}

// NewListener creates (without starting) a bubbletea program rendering
// Model and returns a
// SampleListener that feeds it, plus the Program itself so the caller can
// run it (p.Run()) and quit it (p.Quit()) around the engine's Start call.
func NewListener() (*Listener, *tea.Program) {
	p := tea.NewProgram(NewModel())
	return &Listener{program: p}, p
}

func (l *Listener) SampleStarted(core.Sampler)       {}
func (l *Listener) SampleEnded(*result.SampleResult) {}

func (l *Listener) SampleOccurred(res *result.SampleResult) {
	l.program.Send(sampleMsg{success: res.Success})
}

// Package tui runs a widget display inside a bubbletea program: terminal
// input becomes display events and the display's windows are drawn with
// lipgloss, the popup layers composited over the host.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jask/termface/theme"
	"github.com/jask/termface/widget"
)

// minTick floors the delay of a scheduled tick so a burst of due timers
// does not spin the program.
const minTick = 10 * time.Millisecond

// tickMsg advances the display clock by the delay the tick was armed with.
type tickMsg struct{ delay time.Duration }

// Options configures a Model.
type Options struct {
	// Theme is the palette used for windows that do not name their own.
	Theme string
	// Status, when set, is shown on the bottom row.
	Status func() string
	Logger *log.Logger
}

// Model is the bubbletea model hosting a display and its main window.
type Model struct {
	display *widget.Display
	host    *widget.Window
	keys    *KeyRegistry
	palette theme.Palette
	status  func() string
	logger  *log.Logger
	ticking bool

	width, height int
}

// New wraps d with host as the full-screen main window.
func New(d *widget.Display, host *widget.Window, opts Options) *Model {
	m := &Model{
		display: d,
		host:    host,
		keys:    NewKeyRegistry(),
		palette: theme.Dark,
		status:  opts.Status,
		logger:  opts.Logger,
	}
	if m.logger == nil {
		m.logger = log.Default().WithPrefix("tui")
	}
	if opts.Theme != "" {
		p, err := theme.Lookup(opts.Theme)
		if err != nil {
			m.logger.Warn("unknown theme, using dark", "theme", opts.Theme)
		} else {
			m.palette = p
		}
	}
	m.width, m.height = d.Size()
	return m
}

// schedule arms a tick for the display's earliest timer so deferred focus
// requests fire in real time. At most one tick is in flight and an idle
// display arms none.
func (m *Model) schedule() tea.Cmd {
	if m.ticking {
		return nil
	}
	delay, ok := m.display.NextTimer()
	if !ok {
		return nil
	}
	delay = max(delay, minTick)
	m.ticking = true
	return tea.Tick(delay, func(time.Time) tea.Msg { return tickMsg{delay: delay} })
}

func (m *Model) Init() tea.Cmd {
	return m.schedule()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tickMsg:
		m.ticking = false
		m.display.Advance(msg.delay)
		return m, m.schedule()
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		if cmd := m.key(msg); cmd != nil {
			return m, cmd
		}
	}
	m.display.RunIdle()
	return m, m.schedule()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.display.SetSize(width, height)
	m.host.SetGeometry(widget.Rect{W: width, H: height})
}

func (m *Model) mouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.display.Wheel(msg.X, msg.Y, 1)
		case tea.MouseButtonWheelDown:
			m.display.Wheel(msg.X, msg.Y, -1)
		case tea.MouseButtonLeft:
			m.display.Press(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		m.display.Release(msg.X, msg.Y)
	case tea.MouseActionMotion:
		m.display.SetPointer(msg.X, msg.Y)
	}
}

// scope is the picker scope while focus is in a popup, otherwise form.
func (m *Model) scope() string {
	if n := m.display.Focused(); n != nil && n.Window() != m.host {
		return scopePicker
	}
	return scopeForm
}

func (m *Model) key(msg tea.KeyMsg) tea.Cmd {
	scope := m.scope()
	if b := m.keys.Lookup(msg.String(), scope); b != nil {
		switch b.Action {
		case actionQuit:
			if msg.String() == "ctrl+c" || m.display.Focused() == nil || !editable(m.display.Focused()) {
				return tea.Quit
			}
		case actionTheme:
			m.toggleTheme()
			return nil
		case actionNextField:
			m.cycleFocus(1)
			return nil
		case actionPrevField:
			m.cycleFocus(-1)
			return nil
		}
	}
	m.display.Key(msg)
	return nil
}

func editable(n *widget.Node) bool {
	ed, ok := n.Editor()
	return ok && !ed.Readonly()
}

func (m *Model) toggleTheme() {
	next := theme.Light
	if m.palette.Name == theme.Light.Name {
		next = theme.Dark
	}
	m.palette = next
	m.logger.Debug("theme switched", "theme", next.Name)
}

// cycleFocus moves focus through the host's focusable nodes in tree order.
func (m *Model) cycleFocus(step int) {
	var nodes []*widget.Node
	m.host.Root().Walk(func(n *widget.Node) bool {
		if n.Focusable() {
			nodes = append(nodes, n)
		}
		return true
	})
	if len(nodes) == 0 {
		return
	}
	cur := m.display.Focused()
	next := 0
	if step < 0 {
		next = len(nodes) - 1
	}
	for i, n := range nodes {
		if n == cur {
			next = (i + step + len(nodes)) % len(nodes)
			break
		}
	}
	if err := m.display.FocusSet(nodes[next]); err != nil {
		m.logger.Debug("cycle focus", "err", err)
	}
}

// Palette is the application palette currently in use.
func (m *Model) Palette() theme.Palette { return m.palette }

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"github.com/jask/keypad/internal/calc"
	"github.com/jask/keypad/internal/display"
	"github.com/jask/keypad/internal/keymap"
	"github.com/jask/keypad/internal/session"
)

// measureMsg asks the model to compare the rendered display text with the
// space it has, once per state-changing input.
type measureMsg struct{}

func measure() tea.Msg { return measureMsg{} }

// Options configures a Model. Zero values pick defaults; a nil Zones
// disables mouse input.
type Options struct {
	Keys         *keymap.Registry
	Formatter    *display.Formatter
	Zones        *zone.Manager
	Theme        Theme
	DisplayWidth int
	Log          *zap.Logger
}

// Model is the bubbletea model for the keypad. It owns the session for the
// lifetime of the program.
type Model struct {
	session      *session.Session
	keys         *keymap.Registry
	formatter    *display.Formatter
	zones        *zone.Manager
	zonePrefix   string
	theme        Theme
	help         help.Model
	rows         [][]button
	displayWidth int
	width        int
	height       int
	pressed      string
	showHelp     bool
	log          *zap.Logger
}

func New(s *session.Session, opts Options) *Model {
	if opts.Keys == nil {
		opts.Keys = keymap.NewRegistry()
	}
	if opts.Formatter == nil {
		opts.Formatter = display.NewForLocale("en")
	}
	if opts.Theme.Name == "" {
		opts.Theme = mochaTheme()
	}
	if opts.DisplayWidth <= 0 {
		opts.DisplayWidth = keypadWidth() - 4
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	h := help.New()
	h.Styles.ShortKey = opts.Theme.HelpKey
	h.Styles.ShortDesc = opts.Theme.HelpDesc
	h.Styles.FullKey = opts.Theme.HelpKey
	h.Styles.FullDesc = opts.Theme.HelpDesc

	m := &Model{
		session:      s,
		keys:         opts.Keys,
		formatter:    opts.Formatter,
		zones:        opts.Zones,
		theme:        opts.Theme,
		help:         h,
		rows:         keypadRows(),
		displayWidth: opts.DisplayWidth,
		log:          opts.Log,
	}
	if m.zones != nil {
		m.zonePrefix = m.zones.NewPrefix()
	}
	return m
}

// State is the current keypad state.
func (m *Model) State() calc.State {
	return m.session.State()
}

func (m *Model) Init() tea.Cmd {
	return measure
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case measureMsg:
		m.applyScale()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name := msg.String()
	switch {
	case m.keys.Is(name, keymap.ActionQuit):
		return m, tea.Quit
	case m.keys.Is(name, keymap.ActionHelp):
		m.showHelp = !m.showHelp
		return m, nil
	}
	a, ok := m.keys.Decode(name, m.session.State())
	if !ok {
		return m, nil
	}
	m.pressed = m.buttonFor(a)
	return m, m.dispatch(a)
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for _, row := range m.rows {
		for _, b := range row {
			z := m.zones.Get(m.zonePrefix + b.id)
			if z == nil || !z.InBounds(msg) {
				continue
			}
			m.pressed = b.id
			return m, m.dispatch(b.press(m.session.State()))
		}
	}
	return m, nil
}

// dispatch applies a and schedules the post-render scale measurement.
func (m *Model) dispatch(a calc.Action) tea.Cmd {
	m.session.Dispatch(a)
	return measure
}

// applyScale is the layout effect: it only dispatches when the scale the
// display needs differs from the current one, so it cannot loop.
func (m *Model) applyScale() {
	s := m.session.State()
	content := lipgloss.Width(m.formatter.Format(s.DisplayText))
	next, ok := display.NextScale(s.DisplayScale, m.displayWidth, content)
	if !ok {
		return
	}
	m.log.Debug("display scale", zap.Float64("from", s.DisplayScale), zap.Float64("to", next), zap.Int("content", content))
	m.session.Dispatch(calc.SetDisplayScale(next))
}

func (m *Model) buttonFor(a calc.Action) string {
	s := m.session.State()
	for _, row := range m.rows {
		for _, b := range row {
			if b.press(s) == a {
				return b.id
			}
		}
	}
	return ""
}

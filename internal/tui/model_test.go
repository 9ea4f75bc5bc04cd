package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/jask/keypad/internal/calc"
	"github.com/jask/keypad/internal/session"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys and runs the follow-up commands they return, the way the
// bubbletea runtime would.
func press(m *Model, keys ...string) {
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		for cmd != nil {
			msg := cmd()
			if _, quit := msg.(tea.QuitMsg); quit {
				return
			}
			_, cmd = m.Update(msg)
		}
	}
}

func newTestModel(opts Options) *Model {
	if opts.Theme.Name == "" {
		opts.Theme = plainTheme()
	}
	return New(session.New(nil), opts)
}

func TestKeyboardChain(t *testing.T) {
	m := newTestModel(Options{})
	press(m, "6", "+", "4", "enter")

	if got := m.State().DisplayText; got != "10" {
		t.Fatalf("display = %q, want 10", got)
	}
	if !strings.Contains(m.View(), "10") {
		t.Fatalf("view does not show result:\n%s", m.View())
	}
}

func TestPendingOperationShown(t *testing.T) {
	m := newTestModel(Options{})
	press(m, "1", "2", "0", "0", "*")

	view := m.View()
	if !strings.Contains(view, "1,200 ×") {
		t.Fatalf("expected pending line in view:\n%s", view)
	}
	press(m, "2", "=")
	if strings.Contains(m.View(), "2,400 ×") {
		t.Fatalf("equals should not show a pending operator:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "2,400") {
		t.Fatalf("expected grouped result:\n%s", m.View())
	}
}

func TestClearKeyLabelAndPolicy(t *testing.T) {
	m := newTestModel(Options{})
	if !strings.Contains(m.View(), "AC") {
		t.Fatalf("expected AC on empty display:\n%s", m.View())
	}

	press(m, "8", "-", "5")
	if strings.Contains(m.View(), "AC") {
		t.Fatalf("expected C once digits are entered:\n%s", m.View())
	}

	press(m, "c")
	if s := m.State(); s.DisplayText != "0" || !s.HasValue {
		t.Fatalf("first clear should keep the pending operand, got %+v", s)
	}
	press(m, "esc")
	if s := m.State(); s != calc.Initial() {
		t.Fatalf("second clear should reset, got %+v", s)
	}
}

func TestBackspaceAndSign(t *testing.T) {
	m := newTestModel(Options{})
	press(m, "4", "2", "backspace", "n")
	if got := m.State().DisplayText; got != "-4" {
		t.Fatalf("display = %q, want -4", got)
	}
	if m.pressed != "key-sign" {
		t.Fatalf("pressed = %q, want key-sign", m.pressed)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(Options{})
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	m := newTestModel(Options{})
	_, cmd := m.Update(keyMsg("z"))
	if cmd != nil {
		t.Fatal("unbound key should not schedule work")
	}
	if m.State() != calc.Initial() {
		t.Fatalf("state changed: %+v", m.State())
	}
}

func TestDisplayScaleFollowsContent(t *testing.T) {
	m := newTestModel(Options{DisplayWidth: 4})

	press(m, "1", "2", "3", "4", "5", "6")
	s := m.State()
	if want := 4.0 / 7.0; s.DisplayScale != want {
		t.Fatalf("scale = %v, want %v (content 123,456)", s.DisplayScale, want)
	}
	if !strings.Contains(m.View(), "…456") {
		t.Fatalf("expected clipped display:\n%s", m.View())
	}

	// measuring again without new input does not dispatch
	before := m.session.Dispatched()
	m.Update(measureMsg{})
	if m.session.Dispatched() != before {
		t.Fatal("unchanged layout should not dispatch a scale update")
	}

	press(m, "backspace", "backspace", "backspace")
	if got := m.State().DisplayScale; got != 1 {
		t.Fatalf("scale = %v, want 1 once the text fits", got)
	}
}

func TestMeasureDispatchesAtMostOnce(t *testing.T) {
	m := newTestModel(Options{DisplayWidth: 4})
	_, cmd := m.Update(keyMsg("1"))
	for _, k := range []string{"2", "3", "4", "5", "6", "7", "8"} {
		m.Update(keyMsg(k))
	}
	before := m.session.Dispatched()
	_, follow := m.Update(cmd())
	if follow != nil {
		t.Fatal("scale update must not schedule another measurement")
	}
	if got := m.session.Dispatched() - before; got != 1 {
		t.Fatalf("dispatched %d scale updates, want 1", got)
	}
}

func TestMouseClickPressesButton(t *testing.T) {
	zones := zone.New()
	t.Cleanup(zones.Close)

	m := newTestModel(Options{Zones: zones})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	_ = m.View()

	var z *zone.ZoneInfo
	require.Eventually(t, func() bool {
		z = zones.Get(m.zonePrefix + "key-7")
		return z != nil && !z.IsZero()
	}, time.Second, 10*time.Millisecond)

	click := tea.MouseMsg{X: z.StartX, Y: z.StartY, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	_, cmd := m.Update(click)
	require.NotNil(t, cmd)
	require.Equal(t, "7", m.State().DisplayText)
	require.Equal(t, "key-7", m.pressed)

	wheel := tea.MouseMsg{X: z.StartX, Y: z.StartY, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}
	m.Update(wheel)
	require.Equal(t, "7", m.State().DisplayText)

	outside := tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	m.Update(outside)
	require.Equal(t, "7", m.State().DisplayText)
}

func TestMouseIgnoredWithoutZones(t *testing.T) {
	m := newTestModel(Options{})
	_, cmd := m.Update(tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if cmd != nil || m.State() != calc.Initial() {
		t.Fatal("mouse input should be ignored when zones are disabled")
	}
}

func TestStatusExplainsNonFiniteDisplay(t *testing.T) {
	m := newTestModel(Options{})
	press(m, "4", "/")
	if strings.Contains(m.View(), "infinite") {
		t.Fatalf("no status expected before the division:\n%s", m.View())
	}
	press(m, "0", "=")
	if !strings.Contains(m.View(), "result is infinite") {
		t.Fatalf("expected infinite status:\n%s", m.View())
	}
	press(m, "0", "/", "0", "=")
	if !strings.Contains(m.View(), "undefined result") {
		t.Fatalf("expected undefined status:\n%s", m.View())
	}
	press(m, "c")
	if strings.Contains(m.View(), "result") {
		t.Fatalf("clearing should drop the status:\n%s", m.View())
	}
	if !strings.Contains(m.View(), strings.Repeat("─", keypadWidth())) {
		t.Fatalf("expected separator above the footer:\n%s", m.View())
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(Options{})
	if strings.Contains(m.View(), "digit") {
		t.Fatalf("short help should not list digits:\n%s", m.View())
	}
	press(m, "?")
	if !strings.Contains(m.View(), "digit") {
		t.Fatalf("full help should list digits:\n%s", m.View())
	}
	press(m, "?")
	if strings.Contains(m.View(), "digit") {
		t.Fatal("second ? should close full help")
	}
}

func TestActiveOperatorHighlight(t *testing.T) {
	m := newTestModel(Options{})
	press(m, "5", "+")

	s := m.State()
	for _, row := range m.rows {
		for _, b := range row {
			active := m.buttonStyle(b, s).GetReverse()
			if want := b.id == "key-add"; active != want {
				t.Fatalf("%s active = %v, want %v", b.id, active, want)
			}
		}
	}

	press(m, "3")
	if m.buttonStyle(m.rows[3][3], m.State()).GetReverse() {
		t.Fatal("highlight should clear once the next operand starts")
	}
}

func TestScaleText(t *testing.T) {
	tests := []struct {
		text  string
		scale float64
		want  string
	}{
		{"123", 1, "123"},
		{"123,456", 4.0 / 7.0, "…456"},
		{"123,456", 0.5, "…456"},
		{"123,456", 0.8, "…3,456"},
		{"123,456", 0.99, "123,456"},
		{"1,000,000", 0.1, "…"},
		{"", 0.5, ""},
	}
	for _, tt := range tests {
		if got := scaleText(tt.text, tt.scale); got != tt.want {
			t.Fatalf("scaleText(%q, %v) = %q, want %q", tt.text, tt.scale, got, tt.want)
		}
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("plain").Name != "plain" {
		t.Fatal("expected plain theme")
	}
	if ThemeByName("Mono").Name != "plain" {
		t.Fatal("expected mono to alias plain")
	}
	if ThemeByName("unknown").Name != "mocha" {
		t.Fatal("expected mocha fallback")
	}
}

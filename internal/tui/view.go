package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/keypad/internal/calc"
)

const appName = "keypad"

var operatorSymbols = map[calc.Operator]string{
	calc.OpAdd:      "+",
	calc.OpSubtract: "-",
	calc.OpMultiply: "×",
	calc.OpDivide:   "÷",
}

func (m *Model) View() string {
	s := m.session.State()

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(appName),
		m.renderDisplay(s),
		m.renderStatus(s),
		m.renderKeypad(s),
		m.theme.Separator.Render(strings.Repeat("─", keypadWidth())),
		m.renderFooter(),
	)
	if m.width > 0 && m.height > 0 {
		body = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	if m.zones != nil {
		return m.zones.Scan(body)
	}
	return body
}

func (m *Model) renderDisplay(s calc.State) string {
	pending := ""
	if sym, ok := operatorSymbols[s.PendingOperator]; ok && s.HasValue {
		pending = m.formatter.Format(strconv.FormatFloat(s.Value, 'f', -1, 64)) + " " + sym
	}
	pending = scaleText(pending, float64(m.displayWidth)/float64(max(lipgloss.Width(pending), 1)))

	text := scaleText(m.formatter.Format(s.DisplayText), s.DisplayScale)

	lines := []string{
		m.theme.Pending.Render(alignRight(pending, m.displayWidth)),
		alignRight(text, m.displayWidth),
	}
	return m.theme.Display.Render(strings.Join(lines, "\n"))
}

// renderStatus explains a non-finite display; it is blank otherwise so the
// keypad does not move.
func (m *Model) renderStatus(s calc.State) string {
	v := s.Input()
	switch {
	case math.IsNaN(v):
		return m.theme.Status.Render("undefined result")
	case math.IsInf(v, 0):
		return m.theme.Status.Render("result is infinite")
	}
	return ""
}

func (m *Model) renderKeypad(s calc.State) string {
	rows := make([]string, 0, len(m.rows))
	for _, row := range m.rows {
		cells := make([]string, 0, len(row)*2)
		for i, b := range row {
			if i > 0 {
				cells = append(cells, strings.Repeat(" ", buttonGap))
			}
			cell := m.buttonStyle(b, s).Width(b.width()).Render(b.caption(s))
			cells = append(cells, m.mark(b.id, cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) buttonStyle(b button, s calc.State) lipgloss.Style {
	if op, ok := operatorOf(b); ok && op != calc.OpEquals && s.OperandIsFresh && s.PendingOperator == op {
		return m.theme.Active
	}
	if b.id == m.pressed {
		return m.theme.Pressed
	}
	switch b.kind {
	case kindFunction:
		return m.theme.Function
	case kindOperator:
		return m.theme.Operator
	default:
		return m.theme.Digit
	}
}

func (m *Model) renderFooter() string {
	bindings := m.keys.HelpBindings()
	if !m.showHelp {
		return m.help.ShortHelpView(shortHelp(bindings))
	}
	var groups [][]key.Binding
	for len(bindings) > 0 {
		n := min(4, len(bindings))
		groups = append(groups, bindings[:n])
		bindings = bindings[n:]
	}
	return m.help.FullHelpView(groups)
}

// shortHelp keeps the bindings worth a footer slot.
func shortHelp(bindings []key.Binding) []key.Binding {
	out := make([]key.Binding, 0, 4)
	for _, b := range bindings {
		switch b.Help().Desc {
		case "clear", "±", "help", "quit":
			out = append(out, b)
		}
	}
	return out
}

func (m *Model) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(m.zonePrefix+id, s)
}

// scaleText applies a display scale in a terminal: glyphs cannot shrink, so
// the text keeps ceil(width*scale) cells and the most significant cells are
// replaced by an ellipsis.
func scaleText(text string, scale float64) string {
	w := lipgloss.Width(text)
	if w == 0 || scale >= 1 {
		return text
	}
	keep := int(math.Ceil(float64(w)*scale - 1e-9))
	if keep >= w {
		return text
	}
	if keep <= 1 {
		return "…"
	}
	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > keep {
		runes = runes[1:]
	}
	return "…" + string(runes)
}

func alignRight(text string, width int) string {
	pad := width - lipgloss.Width(text)
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// Package keymap decodes logical key names into keypad actions.
package keymap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/keypad/internal/calc"
)

type Action string

const (
	ActionDigit     Action = "digit"
	ActionAdd       Action = "add"
	ActionSubtract  Action = "subtract"
	ActionMultiply  Action = "multiply"
	ActionDivide    Action = "divide"
	ActionEquals    Action = "equals"
	ActionDot       Action = "dot"
	ActionPercent   Action = "percent"
	ActionSign      Action = "sign"
	ActionBackspace Action = "backspace"
	ActionClear     Action = "clear"
	ActionHelp      Action = "help"
	ActionQuit      Action = "quit"
)

var operators = map[Action]calc.Operator{
	ActionAdd:      calc.OpAdd,
	ActionSubtract: calc.OpSubtract,
	ActionMultiply: calc.OpMultiply,
	ActionDivide:   calc.OpDivide,
	ActionEquals:   calc.OpEquals,
}

type Binding struct {
	Action Action
	Keys   []string
	Help   string
}

// Registry maps key names to bindings. A key belongs to at most one binding.
type Registry struct {
	bindings []*Binding
	index    map[string]*Binding
}

func NewRegistry() *Registry {
	r := &Registry{index: make(map[string]*Binding)}

	reg := func(action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help})
	}

	reg(ActionDigit, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, "digit")
	reg(ActionAdd, []string{"+"}, "add")
	reg(ActionSubtract, []string{"-"}, "subtract")
	reg(ActionMultiply, []string{"*", "x"}, "multiply")
	reg(ActionDivide, []string{"/"}, "divide")
	reg(ActionEquals, []string{"=", "enter"}, "equals")
	reg(ActionDot, []string{".", ","}, "decimal")
	reg(ActionPercent, []string{"%"}, "percent")
	reg(ActionSign, []string{"n", "_", "neg"}, "±")
	reg(ActionBackspace, []string{"backspace"}, "delete")
	reg(ActionClear, []string{"c", "esc", "delete", "clear"}, "clear")
	reg(ActionHelp, []string{"?"}, "help")
	reg(ActionQuit, []string{"q", "ctrl+c"}, "quit")

	return r
}

// Register adds b. Keys already bound to another binding are skipped.
func (r *Registry) Register(b Binding) {
	if r == nil {
		return
	}
	keys := normalizeKeyList(b.Keys)
	fresh := keys[:0:0]
	for _, k := range keys {
		if _, taken := r.index[k]; !taken {
			fresh = append(fresh, k)
		}
	}
	if len(fresh) == 0 {
		return
	}
	copyBinding := b
	copyBinding.Keys = fresh
	r.bindings = append(r.bindings, &copyBinding)
	for _, k := range copyBinding.Keys {
		r.index[k] = &copyBinding
	}
}

func (r *Registry) Bindings() []Binding {
	if r == nil {
		return nil
	}
	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, *b)
	}
	return out
}

// Overrides lists the current keys of every rebindable action, in the form
// ApplyOverrides and the [keys] config table take.
func (r *Registry) Overrides() map[string][]string {
	out := make(map[string][]string)
	for _, b := range r.Bindings() {
		if b.Action == ActionDigit {
			continue
		}
		out[string(b.Action)] = append([]string(nil), b.Keys...)
	}
	return out
}

func (r *Registry) Lookup(keyName string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	return r.index[normalizeKeyName(keyName)]
}

// Is reports whether keyName is bound to action.
func (r *Registry) Is(keyName string, action Action) bool {
	b := r.Lookup(keyName)
	return b != nil && b.Action == action
}

// HelpBindings returns help entries in registration order. Digits collapse
// to a single "0-9" entry.
func (r *Registry) HelpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		helpKey := b.Keys[0]
		if b.Action == ActionDigit {
			helpKey = "0-9"
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKey, b.Help)))
	}
	return out
}

// Decode turns a key press into a keypad action for state s. ok is false
// for unbound keys and for keys that are not keypad input (help, quit).
func (r *Registry) Decode(keyName string, s calc.State) (calc.Action, bool) {
	b := r.Lookup(keyName)
	if b == nil {
		return calc.Action{}, false
	}
	if op, isOp := operators[b.Action]; isOp {
		return calc.PerformOperator(op), true
	}
	switch b.Action {
	case ActionDigit:
		name := normalizeKeyName(keyName)
		if len(name) != 1 || name[0] < '0' || name[0] > '9' {
			return calc.Action{}, false
		}
		return calc.InputDigit(name[0]), true
	case ActionDot:
		return calc.InputDot(), true
	case ActionPercent:
		return calc.InputPercent(), true
	case ActionSign:
		return calc.ToggleSign(), true
	case ActionBackspace:
		return calc.ClearLast(), true
	case ActionClear:
		return ClearAction(s), true
	}
	return calc.Action{}, false
}

// ClearAction picks what the clear key does: a second press on an empty
// display clears everything, otherwise only the display is cleared.
func ClearAction(s calc.State) calc.Action {
	if s.DisplayText == "0" {
		return calc.ClearAll()
	}
	return calc.ClearDisplay()
}

// ClearLabel is the caption of the clear button for s.
func ClearLabel(s calc.State) string {
	if s.DisplayText == "0" {
		return "AC"
	}
	return "C"
}

// ApplyOverrides rebinds actions to the given keys. Digit keys are fixed.
func (r *Registry) ApplyOverrides(overrides map[string][]string) error {
	if r == nil || len(overrides) == 0 {
		return nil
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action := Action(strings.ToLower(strings.TrimSpace(name)))
		if action == ActionDigit {
			return fmt.Errorf("key override %q: digit keys cannot be rebound", name)
		}
		keys := normalizeKeyList(overrides[name])
		if len(keys) == 0 {
			return fmt.Errorf("key override %q: keys are required", name)
		}
		var target *Binding
		for _, b := range r.bindings {
			if b.Action == action {
				target = b
				break
			}
		}
		if target == nil {
			if near, ok := r.closestAction(string(action)); ok {
				return fmt.Errorf("key override %q: unknown action, did you mean %q?", name, near)
			}
			return fmt.Errorf("key override %q: unknown action", name)
		}
		target.Keys = keys
	}

	r.index = make(map[string]*Binding, len(r.index))
	for _, b := range r.bindings {
		for _, k := range b.Keys {
			if prev, ok := r.index[k]; ok {
				return fmt.Errorf("key override conflict: key %q used by both %q and %q", k, prev.Action, b.Action)
			}
			r.index[k] = b
		}
	}
	return nil
}

// closestAction finds the bound action within two edits of name.
func (r *Registry) closestAction(name string) (Action, bool) {
	best, bestDist := Action(""), 3
	for _, b := range r.bindings {
		if d := levenshtein.ComputeDistance(name, string(b.Action)); d < bestDist {
			best, bestDist = b.Action, d
		}
	}
	return best, best != ""
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "escape", "esc")
	return s
}

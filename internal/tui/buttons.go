package tui

import (
	"github.com/jask/keypad/internal/calc"
	"github.com/jask/keypad/internal/keymap"
)

type buttonKind int

const (
	kindDigit buttonKind = iota
	kindFunction
	kindOperator
)

const (
	buttonWidth = 6
	buttonGap   = 1
	columns     = 4
)

type button struct {
	id    string
	label string
	kind  buttonKind
	span  int
	press func(calc.State) calc.Action
}

func (b button) caption(s calc.State) string {
	if b.id == "key-clear" {
		return keymap.ClearLabel(s)
	}
	return b.label
}

func (b button) width() int {
	span := max(b.span, 1)
	return span*buttonWidth + (span-1)*buttonGap
}

func fixed(a calc.Action) func(calc.State) calc.Action {
	return func(calc.State) calc.Action { return a }
}

func digitButton(d byte) button {
	return button{id: "key-" + string(d), label: string(d), kind: kindDigit, press: fixed(calc.InputDigit(d))}
}

func operatorButton(id, label string, op calc.Operator) button {
	return button{id: id, label: label, kind: kindOperator, press: fixed(calc.PerformOperator(op))}
}

// keypadRows is the button grid, top to bottom.
func keypadRows() [][]button {
	return [][]button{
		{
			{id: "key-clear", label: "AC", kind: kindFunction, press: keymap.ClearAction},
			{id: "key-sign", label: "±", kind: kindFunction, press: fixed(calc.ToggleSign())},
			{id: "key-percent", label: "%", kind: kindFunction, press: fixed(calc.InputPercent())},
			operatorButton("key-divide", "÷", calc.OpDivide),
		},
		{digitButton('7'), digitButton('8'), digitButton('9'), operatorButton("key-multiply", "×", calc.OpMultiply)},
		{digitButton('4'), digitButton('5'), digitButton('6'), operatorButton("key-subtract", "-", calc.OpSubtract)},
		{digitButton('1'), digitButton('2'), digitButton('3'), operatorButton("key-add", "+", calc.OpAdd)},
		{
			{id: "key-0", label: "0", kind: kindDigit, span: 2, press: fixed(calc.InputDigit('0'))},
			{id: "key-dot", label: "●", kind: kindDigit, press: fixed(calc.InputDot())},
			operatorButton("key-equals", "=", calc.OpEquals),
		},
	}
}

func keypadWidth() int {
	return columns*buttonWidth + (columns-1)*buttonGap
}

// operatorOf reports the operator a button applies, if any.
func operatorOf(b button) (calc.Operator, bool) {
	if b.kind != kindOperator {
		return calc.OpNone, false
	}
	a := b.press(calc.Initial())
	return a.Operator, true
}

package calc

import (
	"math"
	"strings"
)

// Transition applies a to s and returns the next state. It has no side
// effects; s is never modified.
func Transition(s State, a Action) State {
	switch a.Kind {
	case KindClearAll:
		return Initial()
	case KindClearDisplay:
		s.DisplayText = "0"
		return s
	case KindClearLast:
		return clearLast(s)
	case KindToggleSign:
		s.DisplayText = formatNumber(s.Input() * -1)
		return s
	case KindInputPercent:
		return inputPercent(s)
	case KindInputDot:
		if strings.Contains(s.DisplayText, ".") {
			return s
		}
		s.DisplayText += "."
		s.OperandIsFresh = false
		return s
	case KindInputDigit:
		return inputDigit(s, a.Digit)
	case KindSetDisplayScale:
		return setDisplayScale(s, a.Scale)
	case KindPerformOperator:
		return performOperator(s, a.Operator)
	}
	return s
}

func clearLast(s State) State {
	if !finite(s.DisplayText) {
		s.DisplayText = "0"
		return s
	}
	text := s.DisplayText[:len(s.DisplayText)-1]
	if text == "" || text == "-" {
		text = "0"
	}
	s.DisplayText = text
	return s
}

func inputPercent(s State) State {
	current := s.Input()
	if current == 0 {
		return s
	}
	s.DisplayText = formatFixed(current/100, fractionDigits(s.DisplayText)+2)
	return s
}

func inputDigit(s State, d byte) State {
	if d < '0' || d > '9' {
		return s
	}
	switch {
	case s.OperandIsFresh:
		s.DisplayText = string(d)
		s.OperandIsFresh = false
	case s.DisplayText == "0" || !finite(s.DisplayText):
		s.DisplayText = string(d)
	default:
		s.DisplayText += string(d)
	}
	return s
}

func setDisplayScale(s State, scale float64) State {
	if math.IsNaN(scale) || scale <= 0 {
		return s
	}
	s.DisplayScale = min(scale, 1)
	return s
}

func performOperator(s State, op Operator) State {
	if !op.Valid() {
		return s
	}
	input := s.Input()
	switch {
	case !s.HasValue:
		s.Value = input
		s.HasValue = true
	case s.PendingOperator != OpNone:
		current := s.Value
		if math.IsNaN(current) {
			current = 0
		}
		s.Value = s.PendingOperator.Apply(current, input)
		s.DisplayText = formatNumber(s.Value)
	}
	s.OperandIsFresh = true
	s.PendingOperator = op
	return s
}

package calc

// Kind identifies an action.
type Kind string

const (
	KindClearAll        Kind = "clear_all"
	KindClearDisplay    Kind = "clear_display"
	KindClearLast       Kind = "clear_last"
	KindToggleSign      Kind = "toggle_sign"
	KindInputPercent    Kind = "input_percent"
	KindInputDot        Kind = "input_dot"
	KindInputDigit      Kind = "input_digit"
	KindSetDisplayScale Kind = "set_display_scale"
	KindPerformOperator Kind = "perform_operator"
)

// Action is one discrete user (or layout) event. Only the field matching
// Kind is meaningful.
type Action struct {
	Kind     Kind
	Digit    byte
	Operator Operator
	Scale    float64
}

func ClearAll() Action     { return Action{Kind: KindClearAll} }
func ClearDisplay() Action { return Action{Kind: KindClearDisplay} }
func ClearLast() Action    { return Action{Kind: KindClearLast} }
func ToggleSign() Action   { return Action{Kind: KindToggleSign} }
func InputPercent() Action { return Action{Kind: KindInputPercent} }
func InputDot() Action     { return Action{Kind: KindInputDot} }

// InputDigit builds a digit action. d is expected to be '0'..'9'; anything
// else makes the action a no-op.
func InputDigit(d byte) Action { return Action{Kind: KindInputDigit, Digit: d} }

func SetDisplayScale(scale float64) Action {
	return Action{Kind: KindSetDisplayScale, Scale: scale}
}

func PerformOperator(op Operator) Action {
	return Action{Kind: KindPerformOperator, Operator: op}
}

func (a Action) String() string {
	switch a.Kind {
	case KindInputDigit:
		return string(a.Kind) + "(" + string(a.Digit) + ")"
	case KindPerformOperator:
		return string(a.Kind) + "(" + string(a.Operator) + ")"
	case KindSetDisplayScale:
		return string(a.Kind) + "(" + formatNumber(a.Scale) + ")"
	}
	return string(a.Kind)
}

package calc

// Operator is a binary keypad operator. The zero value means no operator.
type Operator string

const (
	OpNone     Operator = ""
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
	OpEquals   Operator = "="
)

// Valid reports whether op is one of the five keypad operators.
func (op Operator) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpEquals:
		return true
	}
	return false
}

// Apply evaluates op on the running value a and the current input b.
// Division is unguarded and follows IEEE 754 (x/0 is ±Inf, 0/0 is NaN).
func (op Operator) Apply(a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		return a / b
	default:
		return b
	}
}

// State is the full keypad state. Transition returns a new State for every
// action; callers treat it as a value.
type State struct {
	Value           float64
	HasValue        bool
	DisplayText     string
	DisplayScale    float64
	PendingOperator Operator
	OperandIsFresh  bool
}

// Initial returns the state a keypad starts with and returns to on ClearAll.
func Initial() State {
	return State{DisplayText: "0", DisplayScale: 1}
}

// Input is the numeric value of the display text.
func (s State) Input() float64 {
	return parse(s.DisplayText)
}

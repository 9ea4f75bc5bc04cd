// Package session owns the keypad state for one running widget.
package session

import (
	"math"

	"go.uber.org/zap"

	"github.com/jask/keypad/internal/calc"
)

// Session holds the current state and is the only place it changes.
// It is owned by a single collaborator and is not safe for concurrent use.
type Session struct {
	state      calc.State
	log        *zap.Logger
	dispatched int
}

// New starts a session at the initial state. A nil logger disables logging.
func New(log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{state: calc.Initial(), log: log}
}

func (s *Session) State() calc.State {
	return s.state
}

// Dispatched counts the actions applied so far.
func (s *Session) Dispatched() int {
	return s.dispatched
}

// Dispatch applies a and returns the new state.
func (s *Session) Dispatch(a calc.Action) calc.State {
	prev := s.state
	s.state = calc.Transition(prev, a)
	s.dispatched++

	if ce := s.log.Check(zap.DebugLevel, "dispatch"); ce != nil {
		ce.Write(
			zap.Stringer("action", a),
			zap.String("display", s.state.DisplayText),
			zap.Bool("fresh", s.state.OperandIsFresh),
		)
	}
	if a.Kind == calc.KindPerformOperator && prev.HasValue && prev.PendingOperator != calc.OpNone && a.Operator.Valid() {
		fields := []zap.Field{
			zap.String("operator", string(prev.PendingOperator)),
			zap.Float64("left", prev.Value),
			zap.Float64("right", prev.Input()),
			zap.Float64("result", s.state.Value),
		}
		if math.IsInf(s.state.Value, 0) || math.IsNaN(s.state.Value) {
			s.log.Warn("non-finite result", fields...)
		} else {
			s.log.Info("evaluate", fields...)
		}
	}
	return s.state
}

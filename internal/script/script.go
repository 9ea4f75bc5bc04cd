// Package script drives a keypad session from text instead of a terminal.
//
// Each input line holds whitespace separated key names ("7", "+", "enter",
// "backspace", "clear", "neg"). A token that is not a key name is read one
// character at a time, so "12+4=" works too. After every non-empty line the
// formatted display is written to the output. Lines starting with '#' are
// ignored.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jask/keypad/internal/display"
	"github.com/jask/keypad/internal/keymap"
	"github.com/jask/keypad/internal/session"
)

var ErrUnknownKey = errors.New("unknown key")

type Runner struct {
	session   *session.Session
	keys      *keymap.Registry
	formatter *display.Formatter
	out       io.Writer
}

func New(s *session.Session, keys *keymap.Registry, f *display.Formatter, out io.Writer) *Runner {
	if keys == nil {
		keys = keymap.NewRegistry()
	}
	if f == nil {
		f = display.NewForLocale("en")
	}
	return &Runner{session: s, keys: keys, formatter: f, out: out}
}

// Run reads in until EOF, a quit key, or ctx is done.
func (r *Runner) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quit, err := r.runLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := fmt.Fprintln(r.out, r.formatter.Format(r.session.State().DisplayText)); err != nil {
			return fmt.Errorf("write display: %w", err)
		}
		if quit {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}

func (r *Runner) runLine(line string) (quit bool, err error) {
	for _, tok := range strings.Fields(line) {
		keys := []string{tok}
		if r.keys.Lookup(tok) == nil && len(tok) > 1 {
			keys = strings.Split(tok, "")
		}
		for _, k := range keys {
			switch {
			case r.keys.Is(k, keymap.ActionQuit):
				return true, nil
			case r.keys.Is(k, keymap.ActionHelp):
				continue
			}
			a, ok := r.keys.Decode(k, r.session.State())
			if !ok {
				return false, fmt.Errorf("%q: %w", k, ErrUnknownKey)
			}
			r.session.Dispatch(a)
		}
	}
	return false, nil
}

// Eval runs one line of keys against a fresh session and returns the
// formatted display. Nil keys or formatter pick the defaults.
func Eval(line string, keys *keymap.Registry, f *display.Formatter) (string, error) {
	s := session.New(nil)
	r := New(s, keys, f, io.Discard)
	if _, err := r.runLine(line); err != nil {
		return "", err
	}
	return r.formatter.Format(s.State().DisplayText), nil
}

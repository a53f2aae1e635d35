// Package typer implements the typing animation behind the homepage bios.
//
// An Engine is a pure state machine producing the visible text one step at a
// time. A Mounter runs one Engine per mount on its own timer goroutine and
// guarantees that unmounting stops exactly that engine.
package typer

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ErrNoStrings is returned when an engine is built without anything to type.
var ErrNoStrings = errors.New("typer: no strings to type")

// Options mirror the knobs of the browser-side typing library.
type Options struct {
	TypeSpeed  time.Duration // delay between typed tokens
	BackSpeed  time.Duration // delay between erased tokens
	BackDelay  time.Duration // pause before erasing a fully typed string
	StartDelay time.Duration // delay before the first token
	Loop       bool
}

// DefaultOptions are the homepage settings.
func DefaultOptions() Options {
	return Options{
		TypeSpeed: 40 * time.Millisecond,
		BackSpeed: 10 * time.Millisecond,
		BackDelay: time.Second,
		Loop:      true,
	}
}

// Frame is a snapshot of the visible text.
type Frame struct {
	Index int    `json:"index"` // index of the string being typed
	Text  string `json:"text"`
}

// Engine steps through the configured strings.
type Engine struct {
	id       uuid.UUID
	strings  [][]string
	opts     Options
	index    int
	pos      int
	deleting bool
	finished bool
}

// NewEngine tokenizes strs and returns an engine positioned before the first
// token of the first string. Empty strings are skipped.
func NewEngine(strs []string, opts Options) (*Engine, error) {
	toks := make([][]string, 0, len(strs))
	for _, s := range strs {
		if t := Tokenize(s); len(t) > 0 {
			toks = append(toks, t)
		}
	}
	if len(toks) == 0 {
		return nil, ErrNoStrings
	}
	return &Engine{id: uuid.New(), strings: toks, opts: opts}, nil
}

// ID identifies this engine instance.
func (e *Engine) ID() uuid.UUID { return e.id }

// Next advances one step and returns the resulting frame, the delay before
// the following step and whether the animation has finished. A finished
// engine keeps returning its last frame.
func (e *Engine) Next() (Frame, time.Duration, bool) {
	cur := e.strings[e.index]
	if e.finished {
		return e.frame(cur), 0, true
	}

	if !e.deleting {
		if e.pos < len(cur) {
			e.pos++
		}
		f := e.frame(cur)
		if e.pos < len(cur) {
			return f, e.opts.TypeSpeed, false
		}
		if !e.opts.Loop && e.index == len(e.strings)-1 {
			e.finished = true
			return f, 0, true
		}
		e.deleting = true
		return f, e.opts.BackDelay, false
	}

	e.pos--
	f := e.frame(cur)
	if e.pos > 0 {
		return f, e.opts.BackSpeed, false
	}
	e.deleting = false
	e.index = (e.index + 1) % len(e.strings)
	return f, e.opts.TypeSpeed, false
}

func (e *Engine) frame(toks []string) Frame {
	return Frame{Index: e.index, Text: strings.Join(toks[:e.pos], "")}
}

// Tokenize splits s into the units typed in one step: a whole markup tag, a
// whole character entity, or a single rune.
func Tokenize(s string) []string {
	var toks []string
	for i := 0; i < len(s); {
		switch s[i] {
		case '<':
			if end := strings.IndexByte(s[i:], '>'); end > 0 {
				toks = append(toks, s[i:i+end+1])
				i += end + 1
				continue
			}
		case '&':
			if end := strings.IndexByte(s[i:], ';'); end > 1 && !strings.ContainsAny(s[i+1:i+end], " <&") {
				toks = append(toks, s[i:i+end+1])
				i += end + 1
				continue
			}
		}
		_, n := utf8.DecodeRuneInString(s[i:])
		toks = append(toks, s[i:i+n])
		i += n
	}
	return toks
}

// internal/game/types.go
//
// Core type definitions for the word-grid engine.
// Defines:
//   - Letter: a single a–z cell value (or Empty).
//   - Mark:   per-letter result of a guess (exact/present/absent).
//   - State:  coarse game progression (playing/won/lost).
//   - Cursor, Result: values handed to the presentation layer.

package game

import (
	"errors"
	"fmt"
)

// Letter is a single grid cell value. The zero value is Empty.
type Letter byte

// Empty marks an unfilled cell.
const Empty Letter = 0

// ParseLetter converts an ASCII letter (either case) into a Letter.
func ParseLetter(r rune) (Letter, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return Letter(r), true
	case r >= 'A' && r <= 'Z':
		return Letter(r - 'A' + 'a'), true
	}
	return Empty, false
}

// Index maps a letter to 0..25, or -1 for Empty.
func (l Letter) Index() int {
	if l < 'a' || l > 'z' {
		return -1
	}
	return int(l - 'a')
}

// String renders the letter, using a space for Empty.
func (l Letter) String() string {
	if l == Empty {
		return " "
	}
	return string(rune(l))
}

// Mark represents the evaluation result for a single letter in a guess.
// Marks are ordered: a keyboard hint only ever moves to a higher Mark.
//   - Unknown: not evaluated yet.
//   - Absent:  no unconsumed occurrence left in the answer.
//   - Present: occurs in the answer at another position.
//   - Exact:   correct letter in the correct position.
type Mark uint8

const (
	MarkUnknown Mark = iota
	MarkAbsent
	MarkPresent
	MarkExact
)

var markNames = [...]string{"unknown", "absent", "present", "exact"}

func (m Mark) String() string {
	if int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("mark(%d)", m)
}

// MarshalText encodes marks as their names in JSON payloads.
func (m Mark) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText accepts the names produced by MarshalText.
func (m *Mark) UnmarshalText(b []byte) error {
	for i, n := range markNames {
		if n == string(b) {
			*m = Mark(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown mark %q", b)
}

// State is the coarse progression of a game. Won and Lost are terminal.
type State uint8

const (
	StatePlaying State = iota
	StateWon
	StateLost
)

var stateNames = [...]string{"playing", "won", "lost"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", s)
}

// Terminal reports whether no further input is accepted.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	for i, n := range stateNames {
		if n == string(b) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown state %q", b)
}

// Cursor points at the next writable cell.
type Cursor struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Result is what a successful submission hands back to the caller.
type Result struct {
	Row     int      `json:"row"`
	Letters []Letter `json:"-"`
	Word    string   `json:"word"`
	Marks   []Mark   `json:"marks"`
	State   State    `json:"state"`
}

// Dictionary is the word source a Grid validates against and draws answers from.
type Dictionary interface {
	RandomAnswer() string
	IsValidGuess(word string) bool
}

// Submission failures. Both leave the grid untouched.
var (
	ErrIncompleteRow = errors.New("row incomplete")
	ErrInvalidWord   = errors.New("not in word list")
)

// Package keyboard aggregates per-letter feedback for an on-screen keyboard.
//
// Hints subscribes to a game.Grid and remembers, for each letter, the best
// mark any submitted guess produced. Marks only ever upgrade
// (unknown → absent → present → exact). On top of that it keeps a
// transient "typed" overlay for the letters of the row being edited, and a
// lock flag while the row is full.
package keyboard

import (
	"github.com/robalobadob/wordgrid/internal/game"
)

// Hints is a game.Listener. A disabled Hints ignores every event.
type Hints struct {
	enabled bool
	best    [26]game.Mark
	typed   [26]bool
	locked  bool
	cols    int
}

var _ game.Listener = (*Hints)(nil)

// New returns an aggregator for rows of cols letters.
func New(enabled bool, cols int) *Hints {
	return &Hints{enabled: enabled, cols: cols}
}

// Enabled reports whether the aggregator reacts to events.
func (h *Hints) Enabled() bool { return h.enabled }

// Status is the best mark seen for l.
func (h *Hints) Status(l game.Letter) game.Mark {
	if i := l.Index(); i >= 0 {
		return h.best[i]
	}
	return game.MarkUnknown
}

// Typed reports whether l appears in the row being edited.
func (h *Hints) Typed(l game.Letter) bool {
	if i := l.Index(); i >= 0 {
		return h.typed[i]
	}
	return false
}

// Locked is true while the current row is full and awaiting submit or delete.
func (h *Hints) Locked() bool { return h.locked }

func (h *Hints) OnPreview(ev game.PreviewEvent) {
	if !h.enabled {
		return
	}
	h.typed = [26]bool{}
	for i := 0; i < len(ev.Word); i++ {
		l, ok := game.ParseLetter(rune(ev.Word[i]))
		if ok {
			h.typed[l.Index()] = true
		}
	}
	h.locked = ev.Column >= h.cols
}

func (h *Hints) OnResult(r game.Result) {
	if !h.enabled {
		return
	}
	for i, l := range r.Letters {
		if i >= len(r.Marks) {
			break
		}
		if j := l.Index(); j >= 0 && r.Marks[i] > h.best[j] {
			h.best[j] = r.Marks[i]
		}
	}
	h.typed = [26]bool{}
	h.locked = false
}

func (h *Hints) OnReset() {
	if !h.enabled {
		return
	}
	h.clear()
}

func (h *Hints) OnEnd(game.EndEvent) {}

func (h *Hints) clear() {
	h.best = [26]game.Mark{}
	h.typed = [26]bool{}
	h.locked = false
}

// Key is one letter's state, for rendering or JSON.
type Key struct {
	Letter string    `json:"letter"`
	Mark   game.Mark `json:"mark"`
	Typed  bool      `json:"typed,omitempty"`
}

// Keys lists all 26 letters in alphabetical order.
func (h *Hints) Keys() []Key {
	out := make([]Key, 26)
	for i := range out {
		out[i] = Key{Letter: string(rune('a' + i)), Mark: h.best[i], Typed: h.typed[i]}
	}
	return out
}

// Snapshot is the serializable form of Hints.
type Snapshot struct {
	Enabled bool        `json:"enabled"`
	Cols    int         `json:"cols"`
	Best    []game.Mark `json:"best"`
	Typed   string      `json:"typed"`
	Locked  bool        `json:"locked"`
}

func (h *Hints) Snapshot() Snapshot {
	s := Snapshot{Enabled: h.enabled, Cols: h.cols, Best: append([]game.Mark(nil), h.best[:]...), Locked: h.locked}
	for i, on := range h.typed {
		if on {
			s.Typed += string(rune('a' + i))
		}
	}
	return s
}

// Restore rebuilds Hints from s. Unknown letters are ignored.
func Restore(s Snapshot) *Hints {
	h := New(s.Enabled, s.Cols)
	copy(h.best[:], s.Best)
	for _, r := range s.Typed {
		if l, ok := game.ParseLetter(r); ok {
			h.typed[l.Index()] = true
		}
	}
	h.locked = s.Locked
	return h
}

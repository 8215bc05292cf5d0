// internal/game/engine.go
//
// Core game engine for a single word-grid session.
// Responsibilities:
//   - Own the R×C letter matrix, the typing cursor and the game state.
//   - Accept letter input/deletion on the current row.
//   - Validate and score submitted rows (two-pass algorithm in score.go).
//   - Track state transitions: playing → won/lost, and reset.
//   - Notify subscribed listeners synchronously (events.go).
//
// A Grid is not safe for concurrent use; callers that share one across
// goroutines serialize access themselves.
package game

import (
	"strings"
)

const (
	DefaultRows = 6
	DefaultCols = 5
)

// Grid is the state machine for one game.
type Grid struct {
	dict   Dictionary
	rows   int
	cols   int
	answer string

	cells [][]Letter
	marks [][]Mark // nil for rows that were never submitted
	row   int
	col   int
	state State
	last  Result

	subs    []subscription
	nextSub int
}

// Option configures a Grid at construction time.
type Option func(*Grid)

// WithSize overrides the attempt count and word length. Non-positive
// values keep the defaults.
func WithSize(rows, cols int) Option {
	return func(g *Grid) {
		if rows > 0 {
			g.rows = rows
		}
		if cols > 0 {
			g.cols = cols
		}
	}
}

// WithAnswer fixes the first answer instead of drawing one from the dictionary.
// Later resets draw from the dictionary as usual.
func WithAnswer(answer string) Option {
	return func(g *Grid) { g.answer = strings.ToLower(strings.TrimSpace(answer)) }
}

// WithListener subscribes l before the grid is handed out.
func WithListener(l Listener) Option {
	return func(g *Grid) { g.Subscribe(l) }
}

// New constructs a grid and draws its first answer from dict.
func New(dict Dictionary, opts ...Option) *Grid {
	g := &Grid{dict: dict, rows: DefaultRows, cols: DefaultCols}
	for _, opt := range opts {
		opt(g)
	}
	g.clear()
	if g.answer == "" {
		g.answer = strings.ToLower(dict.RandomAnswer())
	}
	return g
}

func (g *Grid) clear() {
	g.cells = make([][]Letter, g.rows)
	for i := range g.cells {
		g.cells[i] = make([]Letter, g.cols)
	}
	g.marks = make([][]Mark, g.rows)
	g.row, g.col = 0, 0
	g.state = StatePlaying
	g.last = Result{}
}

// InputLetter writes l at the cursor and advances it.
// Returns false (and changes nothing) when the game is over, the row is
// full, or l is not a letter.
func (g *Grid) InputLetter(l Letter) bool {
	if g.state != StatePlaying || g.col >= g.cols || l.Index() < 0 {
		return false
	}
	g.cells[g.row][g.col] = l
	g.col++
	g.emitPreview()
	return true
}

// DeleteLetter clears the cell left of the cursor.
// Returns false when the game is over or the row is already empty.
func (g *Grid) DeleteLetter() bool {
	if g.state != StatePlaying || g.col == 0 {
		return false
	}
	g.col--
	g.cells[g.row][g.col] = Empty
	g.emitPreview()
	return true
}

// SubmitGuess validates and scores the current row.
//
// Once the game is over it returns the previous result unchanged.
// ErrIncompleteRow and ErrInvalidWord leave the grid untouched so the
// caller can reject the row and let the player keep editing.
func (g *Grid) SubmitGuess() (Result, error) {
	if g.state != StatePlaying {
		return g.last.clone(), nil
	}
	if g.col != g.cols {
		return Result{}, ErrIncompleteRow
	}
	word := g.rowWord(g.row)
	if !g.dict.IsValidGuess(word) {
		return Result{}, ErrInvalidWord
	}

	marks := Score(g.answer, word)
	row := g.row
	g.marks[row] = marks

	if word == g.answer {
		g.state = StateWon
	} else {
		g.row++
		g.col = 0
		if g.row == g.rows {
			g.state = StateLost
		}
	}

	g.last = Result{
		Row:     row,
		Letters: append([]Letter(nil), g.cells[row]...),
		Word:    word,
		Marks:   append([]Mark(nil), marks...),
		State:   g.state,
	}
	g.emitResult(g.last)
	if g.state.Terminal() {
		g.emitEnd()
	}
	return g.last.clone(), nil
}

// Reset clears the grid and draws a new answer.
func (g *Grid) Reset() {
	g.clear()
	g.answer = strings.ToLower(g.dict.RandomAnswer())
	g.emitReset()
}

// SetDictionary swaps the dictionary used for guesses and for the answer
// drawn by the next Reset. The current answer is kept.
func (g *Grid) SetDictionary(d Dictionary) { g.dict = d }

// rowWord concatenates a row, using spaces for empty cells.
func (g *Grid) rowWord(r int) string {
	var b strings.Builder
	b.Grow(g.cols)
	for _, l := range g.cells[r] {
		b.WriteString(l.String())
	}
	return b.String()
}

func (r Result) clone() Result {
	r.Letters = append([]Letter(nil), r.Letters...)
	r.Marks = append([]Mark(nil), r.Marks...)
	return r
}

// Rows is the attempt count.
func (g *Grid) Rows() int { return g.rows }

// Cols is the word length.
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) Cursor() Cursor { return Cursor{Row: g.row, Column: g.col} }

func (g *Grid) State() State { return g.state }

// Answer returns the hidden word. Presentation code should only reveal it
// once State().Terminal() is true.
func (g *Grid) Answer() string { return g.answer }

// Cell returns the letter at (r, c), or Empty when out of range.
func (g *Grid) Cell(r, c int) Letter {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return Empty
	}
	return g.cells[r][c]
}

// Row returns a copy of row r.
func (g *Grid) Row(r int) []Letter {
	if r < 0 || r >= g.rows {
		return nil
	}
	return append([]Letter(nil), g.cells[r]...)
}

// Marks returns a copy of the marks for row r, or nil if r was never submitted.
func (g *Grid) Marks(r int) []Mark {
	if r < 0 || r >= g.rows || g.marks[r] == nil {
		return nil
	}
	return append([]Mark(nil), g.marks[r]...)
}

// Last returns the most recent successful submission.
func (g *Grid) Last() Result { return g.last.clone() }

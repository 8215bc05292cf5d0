package game

import (
	"errors"
	"fmt"
	"strings"
)

// Snapshot is the serializable form of a Grid. Listeners are not included.
type Snapshot struct {
	Answer string   `json:"answer"`
	Rows   int      `json:"rows"`
	Cols   int      `json:"cols"`
	Cells  []string `json:"cells"` // one string per row, spaces for empty
	Marks  [][]Mark `json:"marks"`
	Cursor Cursor   `json:"cursor"`
	State  State    `json:"state"`
	Last   *Result  `json:"last,omitempty"`
}

// Snapshot captures the grid's current state.
func (g *Grid) Snapshot() Snapshot {
	s := Snapshot{
		Answer: g.answer,
		Rows:   g.rows,
		Cols:   g.cols,
		Cells:  make([]string, g.rows),
		Marks:  make([][]Mark, g.rows),
		Cursor: g.Cursor(),
		State:  g.state,
	}
	for r := range g.rows {
		s.Cells[r] = g.rowWord(r)
		s.Marks[r] = g.Marks(r)
	}
	if g.last.Marks != nil {
		last := g.last.clone()
		s.Last = &last
	}
	return s
}

var errBadSnapshot = errors.New("game: inconsistent snapshot")

// Restore rebuilds a grid from s. Options run before the snapshot is
// applied, so only listener options are meaningful.
func Restore(s Snapshot, dict Dictionary, opts ...Option) (*Grid, error) {
	if s.Rows <= 0 || s.Cols <= 0 || len(s.Cells) != s.Rows || len(s.Answer) != s.Cols {
		return nil, errBadSnapshot
	}
	if s.Cursor.Row < 0 || s.Cursor.Row > s.Rows || s.Cursor.Column < 0 || s.Cursor.Column > s.Cols {
		return nil, fmt.Errorf("%w: cursor %+v", errBadSnapshot, s.Cursor)
	}
	if err := checkCursorState(s); err != nil {
		return nil, err
	}

	g := &Grid{dict: dict, rows: s.Rows, cols: s.Cols, answer: strings.ToLower(s.Answer)}
	for _, opt := range opts {
		opt(g)
	}
	g.clear()

	for r, line := range s.Cells {
		if len(line) != s.Cols {
			return nil, fmt.Errorf("%w: row %d", errBadSnapshot, r)
		}
		for c := range line {
			if line[c] == ' ' {
				continue
			}
			l, ok := ParseLetter(rune(line[c]))
			if !ok {
				return nil, fmt.Errorf("%w: cell %d,%d", errBadSnapshot, r, c)
			}
			g.cells[r][c] = l
		}
		if r < len(s.Marks) && s.Marks[r] != nil {
			if len(s.Marks[r]) != s.Cols {
				return nil, fmt.Errorf("%w: marks row %d", errBadSnapshot, r)
			}
			g.marks[r] = append([]Mark(nil), s.Marks[r]...)
		}
	}
	if err := checkFill(g.cells, s.Cursor); err != nil {
		return nil, err
	}
	g.row, g.col = s.Cursor.Row, s.Cursor.Column
	g.state = s.State
	if s.Last != nil {
		g.last = s.Last.clone()
		if g.last.Letters == nil {
			for i := range g.last.Word {
				l, _ := ParseLetter(rune(g.last.Word[i]))
				g.last.Letters = append(g.last.Letters, l)
			}
		}
	}
	return g, nil
}

// checkCursorState ties the cursor to the state:
// playing keeps the cursor on a grid row, won leaves it at the end of the
// winning row, lost leaves it one past the last row.
func checkCursorState(s Snapshot) error {
	ok := false
	switch s.State {
	case StatePlaying:
		ok = s.Cursor.Row < s.Rows
	case StateWon:
		ok = s.Cursor.Row < s.Rows && s.Cursor.Column == s.Cols
	case StateLost:
		ok = s.Cursor.Row == s.Rows && s.Cursor.Column == 0
	}
	if !ok {
		return fmt.Errorf("%w: state %v with cursor %+v", errBadSnapshot, s.State, s.Cursor)
	}
	return nil
}

// checkFill requires every cell before the cursor to hold a letter and
// every cell at or after it to be empty.
func checkFill(cells [][]Letter, cur Cursor) error {
	for r, row := range cells {
		for c, l := range row {
			before := r < cur.Row || (r == cur.Row && c < cur.Column)
			if before != (l != Empty) {
				return fmt.Errorf("%w: cell %d,%d does not match cursor %+v", errBadSnapshot, r, c, cur)
			}
		}
	}
	return nil
}

package game

// PreviewEvent is emitted after every accepted letter input or deletion.
// Word holds the current row with spaces for empty cells.
type PreviewEvent struct {
	Row    int    `json:"row"`
	Word   string `json:"word"`
	Column int    `json:"column"`
}

// EndEvent is emitted once when the game reaches Won or Lost.
type EndEvent struct {
	State  State  `json:"state"`
	Answer string `json:"answer"`
}

// Listener receives grid events synchronously, on the goroutine that
// called the mutating method. Implementations must not call back into
// the grid.
type Listener interface {
	OnPreview(PreviewEvent)
	OnResult(Result)
	OnReset()
	OnEnd(EndEvent)
}

// NopListener can be embedded to implement only part of Listener.
type NopListener struct{}

func (NopListener) OnPreview(PreviewEvent) {}
func (NopListener) OnResult(Result)        {}
func (NopListener) OnReset()               {}
func (NopListener) OnEnd(EndEvent)         {}

// ListenerFuncs adapts plain functions into a Listener; nil fields are skipped.
type ListenerFuncs struct {
	Preview func(PreviewEvent)
	Result  func(Result)
	Reset   func()
	End     func(EndEvent)
}

func (f ListenerFuncs) OnPreview(e PreviewEvent) {
	if f.Preview != nil {
		f.Preview(e)
	}
}

func (f ListenerFuncs) OnResult(r Result) {
	if f.Result != nil {
		f.Result(r)
	}
}

func (f ListenerFuncs) OnReset() {
	if f.Reset != nil {
		f.Reset()
	}
}

func (f ListenerFuncs) OnEnd(e EndEvent) {
	if f.End != nil {
		f.End(e)
	}
}

type subscription struct {
	id int
	l  Listener
}

// Subscribe registers l and returns a function that removes it again.
func (g *Grid) Subscribe(l Listener) (unsubscribe func()) {
	g.nextSub++
	id := g.nextSub
	g.subs = append(g.subs, subscription{id: id, l: l})
	return func() {
		for i, s := range g.subs {
			if s.id == id {
				g.subs = append(g.subs[:i:i], g.subs[i+1:]...)
				return
			}
		}
	}
}

func (g *Grid) emitPreview() {
	ev := PreviewEvent{Row: g.row, Word: g.rowWord(g.row), Column: g.col}
	for _, s := range g.subs {
		s.l.OnPreview(ev)
	}
}

// emitResult hands each listener its own copy of the slices.
func (g *Grid) emitResult(r Result) {
	for _, s := range g.subs {
		s.l.OnResult(r.clone())
	}
}

func (g *Grid) emitReset() {
	for _, s := range g.subs {
		s.l.OnReset()
	}
}

func (g *Grid) emitEnd() {
	ev := EndEvent{State: g.state, Answer: g.answer}
	for _, s := range g.subs {
		s.l.OnEnd(ev)
	}
}

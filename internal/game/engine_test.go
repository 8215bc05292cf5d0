package game

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// fakeDict serves answers in order and accepts a fixed guess set.
type fakeDict struct {
	answers []string
	next    int
	valid   map[string]bool
}

func newFakeDict(answers []string, extra ...string) *fakeDict {
	d := &fakeDict{answers: answers, valid: map[string]bool{}}
	for _, w := range append(append([]string{}, answers...), extra...) {
		d.valid[w] = true
	}
	return d
}

func (d *fakeDict) RandomAnswer() string {
	a := d.answers[d.next%len(d.answers)]
	d.next++
	return a
}

func (d *fakeDict) IsValidGuess(w string) bool { return d.valid[strings.ToLower(w)] }

// recorder captures events in order.
type recorder struct {
	events   []string
	previews []PreviewEvent
	results  []Result
	ends     []EndEvent
}

func (r *recorder) OnPreview(e PreviewEvent) {
	r.events = append(r.events, "preview")
	r.previews = append(r.previews, e)
}
func (r *recorder) OnResult(res Result) {
	r.events = append(r.events, "result")
	r.results = append(r.results, res)
}
func (r *recorder) OnReset() { r.events = append(r.events, "reset") }
func (r *recorder) OnEnd(e EndEvent) {
	r.events = append(r.events, "end")
	r.ends = append(r.ends, e)
}

func typeWord(t *testing.T, g *Grid, w string) {
	t.Helper()
	for _, r := range w {
		l, ok := ParseLetter(r)
		if !ok {
			t.Fatalf("bad letter %q", r)
		}
		g.InputLetter(l)
	}
}

func TestInputAndDelete(t *testing.T) {
	rec := &recorder{}
	g := New(newFakeDict([]string{"crane"}), WithListener(rec))

	typeWord(t, g, "cr")
	if got := g.Cursor(); got != (Cursor{Row: 0, Column: 2}) {
		t.Fatalf("cursor = %+v", got)
	}
	if !g.DeleteLetter() {
		t.Fatal("DeleteLetter returned false")
	}
	if g.Cell(0, 1) != Empty {
		t.Errorf("cell not cleared: %q", g.Cell(0, 1))
	}

	want := []PreviewEvent{
		{Row: 0, Word: "c    ", Column: 1},
		{Row: 0, Word: "cr   ", Column: 2},
		{Row: 0, Word: "c    ", Column: 1},
	}
	if !reflect.DeepEqual(rec.previews, want) {
		t.Errorf("previews = %+v, want %+v", rec.previews, want)
	}

	g.DeleteLetter()
	if g.DeleteLetter() {
		t.Error("DeleteLetter on empty row should be a no-op")
	}
	if len(rec.previews) != 4 {
		t.Errorf("no-op delete emitted an event")
	}
}

func TestInputStopsAtRowEnd(t *testing.T) {
	g := New(newFakeDict([]string{"crane"}))
	typeWord(t, g, "cranes")
	if got := g.Cursor().Column; got != 5 {
		t.Fatalf("column = %d, want 5", got)
	}
	if got := g.Row(0)[4].String(); got != "e" {
		t.Errorf("last cell = %q", got)
	}
}

func TestSubmitIncompleteRow(t *testing.T) {
	rec := &recorder{}
	g := New(newFakeDict([]string{"crane"}), WithListener(rec))
	typeWord(t, g, "cra")
	before := g.Snapshot()

	for range 2 {
		if _, err := g.SubmitGuess(); !errors.Is(err, ErrIncompleteRow) {
			t.Fatalf("err = %v, want ErrIncompleteRow", err)
		}
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("grid changed after incomplete submit")
	}
	if len(rec.results) != 0 {
		t.Error("incomplete submit emitted a result")
	}
}

func TestSubmitInvalidWord(t *testing.T) {
	g := New(newFakeDict([]string{"crane"}))
	typeWord(t, g, "zzzzz")
	if _, err := g.SubmitGuess(); !errors.Is(err, ErrInvalidWord) {
		t.Fatalf("err = %v, want ErrInvalidWord", err)
	}
	if got := g.Cursor(); got != (Cursor{Row: 0, Column: 5}) {
		t.Errorf("cursor moved to %+v", got)
	}
	if g.State() != StatePlaying {
		t.Errorf("state = %v", g.State())
	}
}

func TestSubmitWin(t *testing.T) {
	rec := &recorder{}
	g := New(newFakeDict([]string{"crane"}, "slate"), WithListener(rec))

	typeWord(t, g, "slate")
	res, err := g.SubmitGuess()
	if err != nil {
		t.Fatal(err)
	}
	if res.Row != 0 || res.State != StatePlaying || g.Cursor() != (Cursor{Row: 1}) {
		t.Fatalf("after miss: res=%+v cursor=%+v", res, g.Cursor())
	}

	typeWord(t, g, "CRANE")
	res, err = g.SubmitGuess()
	if err != nil {
		t.Fatal(err)
	}
	if res.State != StateWon || g.State() != StateWon {
		t.Fatalf("state = %v", res.State)
	}
	if !reflect.DeepEqual(res.Marks, []Mark{E, E, E, E, E}) {
		t.Errorf("marks = %v", res.Marks)
	}
	if res.Row != 1 || res.Word != "crane" {
		t.Errorf("res = %+v", res)
	}

	wantEvents := []string{"preview", "preview", "preview", "preview", "preview", "result",
		"preview", "preview", "preview", "preview", "preview", "result", "end"}
	if !reflect.DeepEqual(rec.events, wantEvents) {
		t.Errorf("events = %v", rec.events)
	}
	if rec.ends[0] != (EndEvent{State: StateWon, Answer: "crane"}) {
		t.Errorf("end = %+v", rec.ends[0])
	}

	// Terminal: input ignored, submit idempotent.
	if g.InputLetter('a') || g.DeleteLetter() {
		t.Error("input accepted after win")
	}
	again, err := g.SubmitGuess()
	if err != nil || !reflect.DeepEqual(again, res) {
		t.Errorf("repeat submit = %+v, %v", again, err)
	}
	if len(rec.results) != 2 {
		t.Error("repeat submit emitted a result")
	}
}

func TestSubmitLose(t *testing.T) {
	rec := &recorder{}
	g := New(newFakeDict([]string{"crane"}, "slate"), WithSize(3, 5), WithListener(rec))

	for i := range 3 {
		typeWord(t, g, "slate")
		res, err := g.SubmitGuess()
		if err != nil {
			t.Fatal(err)
		}
		if i < 2 && res.State != StatePlaying {
			t.Fatalf("row %d state = %v", i, res.State)
		}
	}
	if g.State() != StateLost {
		t.Fatalf("state = %v, want lost", g.State())
	}
	if g.Cursor() != (Cursor{Row: 3, Column: 0}) {
		t.Errorf("cursor = %+v", g.Cursor())
	}
	if g.InputLetter('c') {
		t.Error("input accepted after loss")
	}
	if len(rec.ends) != 1 || rec.ends[0].State != StateLost || rec.ends[0].Answer != "crane" {
		t.Errorf("ends = %+v", rec.ends)
	}
}

func TestReset(t *testing.T) {
	rec := &recorder{}
	d := newFakeDict([]string{"crane", "slate"})
	g := New(d, WithListener(rec))
	typeWord(t, g, "slate")
	if _, err := g.SubmitGuess(); err != nil {
		t.Fatal(err)
	}
	typeWord(t, g, "cr")

	g.Reset()
	if g.Answer() != "slate" {
		t.Errorf("answer = %q, want next draw", g.Answer())
	}
	if g.Cursor() != (Cursor{}) || g.State() != StatePlaying {
		t.Errorf("cursor=%+v state=%v", g.Cursor(), g.State())
	}
	for r := range g.Rows() {
		for c := range g.Cols() {
			if g.Cell(r, c) != Empty {
				t.Fatalf("cell %d,%d = %q", r, c, g.Cell(r, c))
			}
		}
		if g.Marks(r) != nil {
			t.Fatalf("row %d still has marks", r)
		}
	}
	if rec.events[len(rec.events)-1] != "reset" {
		t.Errorf("last event = %q", rec.events[len(rec.events)-1])
	}
}

func TestSetDictionaryAppliesOnReset(t *testing.T) {
	g := New(newFakeDict([]string{"crane"}))
	g.SetDictionary(newFakeDict([]string{"slate"}))
	if g.Answer() != "crane" {
		t.Fatalf("answer changed before reset: %q", g.Answer())
	}
	g.Reset()
	if g.Answer() != "slate" {
		t.Errorf("answer = %q, want draw from new dictionary", g.Answer())
	}
}

func TestResultListenersGetOwnCopy(t *testing.T) {
	var first, second Result
	g := New(newFakeDict([]string{"crane"}, "slate"),
		WithListener(ListenerFuncs{Result: func(r Result) {
			first = r
			r.Marks[0] = MarkExact
			r.Letters[0] = 'z'
		}}),
		WithListener(ListenerFuncs{Result: func(r Result) { second = r }}),
	)
	typeWord(t, g, "slate")
	res, err := g.SubmitGuess()
	if err != nil {
		t.Fatal(err)
	}
	if first.Marks[0] != MarkExact {
		t.Fatal("first listener did not see its own edit")
	}
	if second.Marks[0] != MarkAbsent || second.Letters[0] != 's' {
		t.Errorf("second listener saw %v %q", second.Marks, second.Letters)
	}
	if res.Marks[0] != MarkAbsent || g.Marks(0)[0] != MarkAbsent || g.Last().Letters[0] != 's' {
		t.Error("listener edit leaked into the grid")
	}
}

func TestWithAnswerAndUnsubscribe(t *testing.T) {
	rec := &recorder{}
	g := New(newFakeDict([]string{"crane"}, "slate"), WithAnswer("SLATE"))
	if g.Answer() != "slate" {
		t.Fatalf("answer = %q", g.Answer())
	}
	stop := g.Subscribe(rec)
	g.InputLetter('s')
	stop()
	g.InputLetter('l')
	if len(rec.previews) != 1 {
		t.Errorf("got %d previews after unsubscribe", len(rec.previews))
	}
}

func TestParseLetter(t *testing.T) {
	tests := []struct {
		in   rune
		want Letter
		ok   bool
	}{
		{'a', 'a', true},
		{'Z', 'z', true},
		{'1', Empty, false},
		{'é', Empty, false},
	}
	for _, tt := range tests {
		got, ok := ParseLetter(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLetter(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

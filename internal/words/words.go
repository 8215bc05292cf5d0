// internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Hold the answer pool and the valid-guess set for one word length.
//   - Supply RandomAnswer, IsValidGuess, IsAnswer and Stats.
//   - Draw answers through an injectable Source (crypto/rand by default).
//
// Word Lists:
//   - "answers": canonical solutions.
//   - "allowed": valid guesses (always includes answers).
//
// Constraints:
//   • Words must be exactly Cols alphabetic letters (a–z).
//   • Lists are normalized to lowercase; anything else is dropped.
//   • A Dictionary is immutable once built.

package words

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// ErrNoAnswers is returned when no usable answer survives normalization.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Source picks an index in [0, n).
type Source interface {
	Intn(n int) int
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(n int) int

func (f SourceFunc) Intn(n int) int { return f(n) }

// CryptoSource draws uniformly using crypto/rand.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}

// Dictionary holds the answer pool and the valid-guess set.
type Dictionary struct {
	cols       int
	answers    []string           // canonical answers
	answersSet map[string]struct{} // answers only
	allowedSet map[string]struct{} // answers ∪ guesses
	src        Source
}

// New builds a dictionary for words of length cols. Every answer is also a
// valid guess. A nil src means CryptoSource.
func New(answers, allowed []string, cols int, src Source) (*Dictionary, error) {
	if src == nil {
		src = CryptoSource{}
	}
	ans := normalize(answers, cols)
	if len(ans) == 0 {
		return nil, ErrNoAnswers
	}
	d := &Dictionary{
		cols:       cols,
		answers:    ans,
		answersSet: toSet(ans),
		allowedSet: toSet(ans),
		src:        src,
	}
	for _, w := range normalize(allowed, cols) {
		d.allowedSet[w] = struct{}{}
	}
	return d, nil
}

// WithSource returns a dictionary sharing d's word sets but drawing
// answers from src.
func (d *Dictionary) WithSource(src Source) *Dictionary {
	cp := *d
	cp.src = src
	return &cp
}

// RandomAnswer returns a uniformly drawn answer.
func (d *Dictionary) RandomAnswer() string {
	i := d.src.Intn(len(d.answers))
	if i < 0 || i >= len(d.answers) {
		i = 0
	}
	return d.answers[i]
}

// Answers returns a copy of the answer pool.
func (d *Dictionary) Answers() []string { return append([]string(nil), d.answers...) }

// Cols is the word length the dictionary was built for.
func (d *Dictionary) Cols() int { return d.cols }

// IsValidGuess reports whether w is a valid guess (answers ∪ guesses).
func (d *Dictionary) IsValidGuess(w string) bool {
	if len(w) != d.cols {
		return false
	}
	_, ok := d.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (d *Dictionary) IsAnswer(w string) bool {
	_, ok := d.answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (d *Dictionary) Stats() (answersCount int, allowedCount int) {
	return len(d.answers), len(d.allowedSet)
}

// normalize lowercases and trims, keeping valid cols-letter words once each.
func normalize(list []string, cols int) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.TrimSpace(strings.ToLower(w))
		if len(w) != cols || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// internal/store/memory.go
//
// Session persistence for in-progress games.
//
// Characteristics:
//   - Sessions are keyed by a random ID.
//   - The memory Store hands out the same *Session on every Get, so the
//     hints subscription made by NewSession stays attached across requests.
//   - Concurrency-safe via RWMutex; access to a Session's grid is
//     serialized by the caller.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/keyboard"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Session is one player's game plus its keyboard hints.
type Session struct {
	ID        string
	Grid      *game.Grid
	Hints     *keyboard.Hints
	Daily     bool
	CreatedAt time.Time
}

// NewSession wires hints to grid and stamps a fresh ID when id is empty.
func NewSession(id string, grid *game.Grid, hints *keyboard.Hints, daily bool) *Session {
	if id == "" {
		id = randomID()
	}
	grid.Subscribe(hints)
	return &Session{ID: id, Grid: grid, Hints: hints, Daily: daily, CreatedAt: time.Now().UTC()}
}

// Reset starts a new game in the session. A daily session turns into a
// random one, since the daily source would draw the same word again.
func (s *Session) Reset(dicts Dictionaries) {
	if s.Daily {
		s.Daily = false
		s.Grid.SetDictionary(dicts.For(false))
	}
	s.Grid.Reset()
}

// Dictionaries pairs the random-answer dictionary with the daily one.
type Dictionaries struct {
	Random game.Dictionary
	Daily  game.Dictionary
}

// For picks the dictionary a session draws its answers from.
func (d Dictionaries) For(daily bool) game.Dictionary {
	if daily && d.Daily != nil {
		return d.Daily
	}
	return d.Random
}

// Store defines the persistence interface for game sessions.
// Implementations may be backed by memory (this file) or Redis (redis.go).
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete drops a session. Unknown IDs are not an error.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

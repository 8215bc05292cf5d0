// internal/httpserver/server.go
//
// HTTP server wiring for the word-grid backend.
// Responsibilities:
//   - Router + middleware (CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words", POST /game/new.
//   - Token-gated game endpoints under /game/{id} (routes_game.go).
//   - Websocket event stream at /game/{id}/ws (ws.go).
//
// Notes:
//   - Every game gets a signed session token at creation; the token's gid
//     claim must match the {id} path parameter (tokens.go).
//   - Grids are single-threaded, so each request holds a per-game lock
//     while it loads, mutates and saves a session.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

// Options configures a Server.
type Options struct {
	Store           store.Store
	Words           *words.Dictionary
	Dicts           store.Dictionaries
	Rows, Cols      int
	HelpfulKeyboard bool
	TokenKey        []byte
	TokenTTL        time.Duration
	ClientOrigin    string
}

// Server bundles router, session store and dictionaries.
type Server struct {
	r        *chi.Mux
	opts     Options
	tokens   tokenIssuer
	locks    keyedMutex
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.Rows <= 0 {
		opts.Rows = game.DefaultRows
	}
	if opts.Cols <= 0 {
		opts.Cols = game.DefaultCols
	}
	s := &Server{
		r:      chi.NewRouter(),
		opts:   opts,
		tokens: tokenIssuer{key: opts.TokenKey, ttl: opts.TokenTTL},
		locks:  keyedMutex{locks: make(map[string]*refLock)},
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == s.opts.ClientOrigin
		},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wordgrid","endpoints":["/health","POST /game/new","/game/{id}/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			a, g := s.opts.Words.Stats()
			_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g, "cols": s.opts.Words.Cols()})
		})
		r.Post("/game/new", s.handleNewGame)
	})

	// Game endpoints, token required
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requireGameToken)

		// Websocket lives outside the request timeout.
		r.Get("/ws", s.handleWS)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(10 * time.Second))
			r.Use(jsonContentType)
			r.Get("/", s.handleGetGame)
			r.Delete("/", s.handleDeleteGame)
			r.Post("/letter", s.handleInputLetter)
			r.Delete("/letter", s.handleDeleteLetter)
			r.Post("/submit", s.handleSubmit)
			r.Post("/guess", s.handleGuess)
			r.Post("/reset", s.handleReset)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError sends {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ------------------------------ sessions -----------------------------------

// mutate loads session id under its lock, runs fn with l subscribed to the
// grid (l may be nil), and saves the session afterwards.
func (s *Server) mutate(ctx context.Context, id string, l game.Listener, fn func(*store.Session) error) (*store.Session, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.opts.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	stopLog := sess.Grid.Subscribe(eventLogger{gameID: id})
	defer stopLog()
	if l != nil {
		stop := sess.Grid.Subscribe(l)
		defer stop()
	}

	fnErr := fn(sess)
	if err := s.opts.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, fnErr
}

// storeError maps store failures to HTTP responses.
func storeError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	log.Error().Err(err).Str("gameId", id).Msg("session store")
	writeError(w, http.StatusInternalServerError, "store_failed")
}

// keyedMutex hands out one mutex per key and forgets it when unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	l := k.locks[key]
	if l == nil {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// eventLogger writes grid events to the global zerolog logger.
type eventLogger struct {
	gameID string
}

func (e eventLogger) OnPreview(ev game.PreviewEvent) {
	log.Debug().Str("gameId", e.gameID).Int("row", ev.Row).Int("column", ev.Column).Msg("row preview")
}

func (e eventLogger) OnResult(r game.Result) {
	log.Debug().Str("gameId", e.gameID).Int("row", r.Row).Str("word", r.Word).Stringer("state", r.State).Msg("guess scored")
}

func (e eventLogger) OnReset() {
	log.Info().Str("gameId", e.gameID).Msg("game reset")
}

func (e eventLogger) OnEnd(ev game.EndEvent) {
	log.Info().Str("gameId", e.gameID).Stringer("state", ev.State).Msg("game finished")
}

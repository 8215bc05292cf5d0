// internal/httpserver/routes_game.go
//
// HTTP routes for playing a game.
//   - POST   /game/new          → create a game (random or daily answer), returns a token
//   - GET    /game/{id}         → current grid, keyboard hints and state
//   - DELETE /game/{id}         → drop the session
//   - POST   /game/{id}/letter  → type one letter
//   - DELETE /game/{id}/letter  → delete the last letter
//   - POST   /game/{id}/submit  → submit the typed row
//   - POST   /game/{id}/guess   → type a whole word and submit it
//   - POST   /game/{id}/reset   → clear the grid and draw a new random answer
//
// Incomplete rows and unknown words answer 422 and leave the grid as it was.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/keyboard"
	"github.com/robalobadob/wordgrid/internal/store"
)

// ------------------------------ views --------------------------------------

type keyboardView struct {
	Keys   []keyboard.Key `json:"keys"`
	Locked bool           `json:"locked"`
}

// gameView is the full state a client needs to render a game.
type gameView struct {
	GameID   string        `json:"gameId"`
	Rows     int           `json:"rows"`
	Cols     int           `json:"cols"`
	Cells    []string      `json:"cells"`
	Marks    [][]game.Mark `json:"marks"`
	Cursor   game.Cursor   `json:"cursor"`
	State    game.State    `json:"state"`
	Daily    bool          `json:"daily"`
	Keyboard *keyboardView `json:"keyboard,omitempty"`
	Answer   string        `json:"answer,omitempty"` // only once the game is over
}

func newGameView(sess *store.Session) gameView {
	snap := sess.Grid.Snapshot()
	v := gameView{
		GameID: sess.ID,
		Rows:   snap.Rows,
		Cols:   snap.Cols,
		Cells:  snap.Cells,
		Marks:  snap.Marks,
		Cursor: snap.Cursor,
		State:  snap.State,
		Daily:  sess.Daily,
	}
	if sess.Hints.Enabled() {
		v.Keyboard = &keyboardView{Keys: sess.Hints.Keys(), Locked: sess.Hints.Locked()}
	}
	if snap.State.Terminal() {
		v.Answer = snap.Answer
	}
	return v
}

// ------------------------------ /game/new ----------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "random" (default) | "daily"
	Answer string `json:"answer"` // optional fixed answer (testing)
}

type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Mode      string    `json:"mode"`
	Date      string    `json:"date,omitempty"`
}

// handleNewGame creates a session and signs a token for it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}

	isDaily := false
	switch req.Mode {
	case "", "random":
		req.Mode = "random"
	case "daily":
		isDaily = true
	default:
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}

	dict := s.opts.Dicts.For(isDaily)
	opts := []game.Option{game.WithSize(s.opts.Rows, s.opts.Cols)}
	if req.Answer != "" {
		if isDaily || !dict.IsValidGuess(strings.TrimSpace(req.Answer)) {
			writeError(w, http.StatusBadRequest, "bad_answer")
			return
		}
		opts = append(opts, game.WithAnswer(req.Answer))
	}

	sess := store.NewSession("", game.New(dict, opts...), keyboard.New(s.opts.HelpfulKeyboard, s.opts.Cols), isDaily)
	if err := s.opts.Store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	tok, exp, err := s.tokens.sign(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}

	res := newGameRes{GameID: sess.ID, Token: tok, ExpiresAt: exp, Rows: s.opts.Rows, Cols: s.opts.Cols, Mode: req.Mode}
	if isDaily {
		res.Date = daily.DateKey(time.Now())
	}
	log.Info().Str("gameId", sess.ID).Str("mode", req.Mode).Msg("game created")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(res)
}

// ------------------------------ /game/{id} ---------------------------------

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	unlock := s.locks.Lock(id)
	sess, err := s.opts.Store.Get(r.Context(), id)
	var v gameView
	if err == nil {
		v = newGameView(sess)
	}
	unlock()
	if err != nil {
		storeError(w, id, err)
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	unlock := s.locks.Lock(id)
	err := s.opts.Store.Delete(r.Context(), id)
	unlock()
	if err != nil {
		storeError(w, id, err)
		return
	}
	log.Info().Str("gameId", id).Msg("game deleted")
	w.WriteHeader(http.StatusNoContent)
}

type letterReq struct {
	Letter string `json:"letter"`
}

// inputRes reports whether the input changed the grid, plus the new view.
type inputRes struct {
	Accepted bool     `json:"accepted"`
	Game     gameView `json:"game"`
}

func (s *Server) handleInputLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	l, ok := parseSingleLetter(req.Letter)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_letter")
		return
	}
	s.applyInput(w, r, func(g *game.Grid) bool { return g.InputLetter(l) })
}

func (s *Server) handleDeleteLetter(w http.ResponseWriter, r *http.Request) {
	s.applyInput(w, r, (*game.Grid).DeleteLetter)
}

func (s *Server) applyInput(w http.ResponseWriter, r *http.Request, fn func(*game.Grid) bool) {
	id := chi.URLParam(r, "id")
	var res inputRes
	_, err := s.mutate(r.Context(), id, nil, func(sess *store.Session) error {
		res.Accepted = fn(sess.Grid)
		res.Game = newGameView(sess)
		return nil
	})
	if err != nil {
		storeError(w, id, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// submitRes is returned by /submit and /guess.
type submitRes struct {
	Result game.Result `json:"result"`
	Game   gameView    `json:"game"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, nil)
}

type guessReq struct {
	Guess string `json:"guess"`
}

// handleGuess replaces the current row with the guess and submits it.
// A rejected guess is cleared again so the row is left empty.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess := strings.ToLower(strings.TrimSpace(req.Guess))
	letters := make([]game.Letter, 0, len(guess))
	for _, c := range guess {
		l, ok := game.ParseLetter(c)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_guess")
			return
		}
		letters = append(letters, l)
	}
	if len(letters) != s.opts.Cols {
		writeError(w, http.StatusBadRequest, "invalid_guess")
		return
	}

	s.submit(w, r, func(g *game.Grid) {
		for g.DeleteLetter() {
		}
		for _, l := range letters {
			g.InputLetter(l)
		}
	})
}

// submit optionally prepares the row, then submits it.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, prepare func(*game.Grid)) {
	id := chi.URLParam(r, "id")
	var res submitRes
	_, err := s.mutate(r.Context(), id, nil, func(sess *store.Session) error {
		if prepare != nil {
			prepare(sess.Grid)
		}
		result, err := sess.Grid.SubmitGuess()
		if err != nil {
			if prepare != nil {
				for sess.Grid.DeleteLetter() {
				}
			}
			return err
		}
		res = submitRes{Result: result, Game: newGameView(sess)}
		return nil
	})
	switch {
	case errors.Is(err, game.ErrIncompleteRow):
		writeError(w, http.StatusUnprocessableEntity, "incomplete_row")
	case errors.Is(err, game.ErrInvalidWord):
		writeError(w, http.StatusUnprocessableEntity, "not_in_word_list")
	case err != nil:
		storeError(w, id, err)
	default:
		_ = json.NewEncoder(w).Encode(res)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var v gameView
	_, err := s.mutate(r.Context(), id, nil, func(sess *store.Session) error {
		sess.Reset(s.opts.Dicts)
		v = newGameView(sess)
		return nil
	})
	if err != nil {
		storeError(w, id, err)
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// parseSingleLetter accepts exactly one ASCII letter.
func parseSingleLetter(s string) (game.Letter, bool) {
	if len(s) != 1 {
		return game.Empty, false
	}
	return game.ParseLetter(rune(s[0]))
}

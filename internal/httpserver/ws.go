// internal/httpserver/ws.go
//
// Websocket play at /game/{id}/ws.
//
// Client → server:  {"type":"letter","letter":"a"} | {"type":"delete"} |
//                   {"type":"submit"} | {"type":"reset"}
// Server → client:  "state" once on connect, then one message per grid event
//                   ("preview", "result", "reset", "end") or "error".

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/store"
)

const (
	wsReadLimit  = 1024
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
	wsWriteWait  = 10 * time.Second
)

type wsIn struct {
	Type   string `json:"type"`
	Letter string `json:"letter,omitempty"`
}

type wsOut struct {
	Type    string             `json:"type"`
	Preview *game.PreviewEvent `json:"preview,omitempty"`
	Result  *game.Result       `json:"result,omitempty"`
	End     *game.EndEvent     `json:"end,omitempty"`
	Game    *gameView          `json:"game,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// wsCollector buffers grid events raised while a message is applied.
type wsCollector struct {
	out []wsOut
}

func (c *wsCollector) OnPreview(ev game.PreviewEvent) {
	c.out = append(c.out, wsOut{Type: "preview", Preview: &ev})
}

func (c *wsCollector) OnResult(r game.Result) {
	c.out = append(c.out, wsOut{Type: "result", Result: &r})
}

func (c *wsCollector) OnReset() { c.out = append(c.out, wsOut{Type: "reset"}) }

func (c *wsCollector) OnEnd(ev game.EndEvent) {
	c.out = append(c.out, wsOut{Type: "end", End: &ev})
}

// wsConn serialises writes; gorilla allows one concurrent writer.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(msgs ...wsOut) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range msgs {
		_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := c.conn.WriteJSON(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// 404 before upgrading so plain HTTP clients see a useful status.
	unlock := s.locks.Lock(id)
	sess, err := s.opts.Store.Get(r.Context(), id)
	var initial gameView
	if err == nil {
		initial = newGameView(sess)
	}
	unlock()
	if err != nil {
		storeError(w, id, err)
		return
	}

	raw, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("ws upgrade")
		return
	}
	conn := &wsConn{conn: raw}
	defer raw.Close()

	raw.SetReadLimit(wsReadLimit)
	_ = raw.SetReadDeadline(time.Now().Add(wsPongWait))
	raw.SetPongHandler(func(string) error {
		return raw.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		t := time.NewTicker(wsPingPeriod)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := conn.ping(); err != nil {
					return
				}
			}
		}
	}()

	log.Info().Str("gameId", id).Msg("ws connected")
	defer log.Info().Str("gameId", id).Msg("ws closed")

	if err := conn.send(wsOut{Type: "state", Game: &initial}); err != nil {
		return
	}

	for {
		var in wsIn
		if err := raw.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("gameId", id).Msg("ws read")
			}
			return
		}
		out := s.applyWS(ctx, id, in)
		if err := conn.send(out...); err != nil {
			return
		}
	}
}

// applyWS runs one client message against the session and returns the
// events it produced, or a single error message.
func (s *Server) applyWS(ctx context.Context, id string, in wsIn) []wsOut {
	var apply func(*store.Session) error
	switch in.Type {
	case "letter":
		l, ok := parseSingleLetter(in.Letter)
		if !ok {
			return []wsOut{{Type: "error", Error: "bad_letter"}}
		}
		apply = func(sess *store.Session) error { sess.Grid.InputLetter(l); return nil }
	case "delete":
		apply = func(sess *store.Session) error { sess.Grid.DeleteLetter(); return nil }
	case "submit":
		apply = func(sess *store.Session) error { _, err := sess.Grid.SubmitGuess(); return err }
	case "reset":
		apply = func(sess *store.Session) error { sess.Reset(s.opts.Dicts); return nil }
	default:
		return []wsOut{{Type: "error", Error: "bad_type"}}
	}

	c := &wsCollector{}
	_, err := s.mutate(ctx, id, c, apply)
	switch {
	case errors.Is(err, game.ErrIncompleteRow):
		return []wsOut{{Type: "error", Error: "incomplete_row"}}
	case errors.Is(err, game.ErrInvalidWord):
		return []wsOut{{Type: "error", Error: "not_in_word_list"}}
	case errors.Is(err, store.ErrNotFound):
		return []wsOut{{Type: "error", Error: "not_found"}}
	case err != nil:
		log.Error().Err(err).Str("gameId", id).Msg("ws apply")
		return []wsOut{{Type: "error", Error: "store_failed"}}
	}
	return c.out
}


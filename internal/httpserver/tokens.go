package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer signs HS256 session tokens binding a client to one game.
type tokenIssuer struct {
	key []byte
	ttl time.Duration
}

var errTokenGame = errors.New("token does not match game")

// sign creates a token whose gid claim is gameID.
func (t tokenIssuer) sign(gameID string) (string, time.Time, error) {
	ttl := t.ttl
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	exp := now.Add(ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gameID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := tok.SignedString(t.key)
	return ss, exp, err
}

// verify checks signature and expiry and returns the gid claim.
func (t tokenIssuer) verify(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !tok.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	gid, _ := claims["gid"].(string)
	if gid == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return gid, nil
}

// requireGameToken enforces a valid token for the {id} in the path.
// Browsers cannot set headers on websocket upgrades, so ?token= is accepted too.
func (s *Server) requireGameToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerOrQuery(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		gid, err := s.tokens.verify(tokenStr)
		if err == nil && gid != chi.URLParam(r, "id") {
			err = errTokenGame
		}
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerOrQuery extracts a token from the Authorization header or ?token=.
func bearerOrQuery(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return r.URL.Query().Get("token")
}

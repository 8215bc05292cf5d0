// Package daily picks one answer per UTC day.
//
// The index is HMAC-SHA256(key, YYYY-MM-DD) reduced modulo the answer pool
// size, so every game created on the same day shares an answer without any
// stored state.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(key, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, key []byte, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, key)
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Source implements words.Source with the day's index.
type Source struct {
	Key []byte
	Now func() time.Time // nil means time.Now
}

func (s Source) Intn(n int) int {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return WordIndex(now(), s.Key, n)
}

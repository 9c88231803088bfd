// Package daily picks one deterministic answer per UTC day and keeps the
// solver's result for each day.
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

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % poolLen.
func WordIndex(date time.Time, salt string, poolLen int) int {
	if poolLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(poolLen))
}

// Answer returns the index and word of the day from pool.
func Answer(pool []string, date time.Time, salt string) (int, string) {
	if len(pool) == 0 {
		return 0, ""
	}
	i := WordIndex(date, salt, len(pool))
	return i, pool[i]
}

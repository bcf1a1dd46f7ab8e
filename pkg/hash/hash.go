package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortHash returns the first n characters of SHA256Hex(input).
// Used to correlate log lines without storing the raw value.
func ShortHash(input string, n int) string {
	full := SHA256Hex(input)
	if n > len(full) || n <= 0 {
		return full
	}
	return full[:n]
}

const queryIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewQueryID returns "q_" followed by 8 lowercase alphanumerics drawn from a
// random UUID.
func NewQueryID() string {
	u := uuid.New()
	var b strings.Builder
	b.Grow(10)
	b.WriteString("q_")
	for i := 0; i < 8; i++ {
		b.WriteByte(queryIDAlphabet[int(u[i])%len(queryIDAlphabet)])
	}
	return b.String()
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the full SHA-256 hex digest of data. Backends use it to turn
// arbitrary keys into filesystem- and redis-safe identifiers.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

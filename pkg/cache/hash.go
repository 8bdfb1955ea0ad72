package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ArtifactKey returns the cache key of source rendered as format.
func ArtifactKey(format string, source []byte) string {
	return "artifact:" + format + ":" + Hash(source)
}

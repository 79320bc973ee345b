package sanitize

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the SHA-256 digest of content as 64 lowercase hex
// characters. Any single-bit change in content changes the result, so
// the digest can serve as an integrity or allow-list token bound to
// exact byte content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

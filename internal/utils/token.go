package utils // package utils provides helper functions for hashing and random material

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA-256 hashing for session tokens
    "encoding/hex"  // hex encoding functions
)

// HashTokenRaw returns the SHA-256 hash of a raw token as a hex
// string. Only the hash is stored in the sessions table so a
// leaked database cannot be replayed against the API.
func HashTokenRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

// RandomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data. Used for OAuth state
// values.
func RandomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
)

// hashKey renders prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Hasher accumulates the inputs of a job into one digest. Each part is
// length-prefixed so that concatenations cannot collide.
type Hasher struct {
	h hash.Hash
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{h: sha256.New()}
}

// Add appends one input.
func (h *Hasher) Add(data []byte) {
	fmt.Fprintf(h.h, "%d:", len(data))
	h.h.Write(data)
}

// AddString appends one string input.
func (h *Hasher) AddString(s string) { h.Add([]byte(s)) }

// Sum returns the hex digest of everything added so far.
func (h *Hasher) Sum() string { return hex.EncodeToString(h.h.Sum(nil)) }

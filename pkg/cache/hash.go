package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds "<kind>:<sha256>" keys for bakes and artifacts. The parts
// are hashed as one JSON array, so a document hash and its bake options
// (size, overflow policy, format) always produce the same key.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. The pipeline hashes canonical
// layout documents and bake results with it, and the store records it as
// the document's content hash.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

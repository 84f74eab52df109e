package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Pipelines use it as the content
// address of an edge list.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digestKey returns "kind:<sha256>" over the JSON encoding of parts. Struct
// fields encode in declaration order, so equal options give equal keys.
func digestKey(kind string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// Key parts are plain structs of strings, ints and bools.
		panic("cache: unencodable key parts: " + err.Error())
	}
	return kind + ":" + Hash(data)
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a cache key from a class prefix ("schematic:v1",
// "artifact:v1") and the components that identify the entry. The components
// are hashed so keys have a fixed shape regardless of source length:
// prefix:hex(sha256(parts)). The full 256-bit digest is kept to rule out
// collisions between distinct circuits.
func hashKey(prefix string, parts ...string) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the 64-character hex SHA-256 digest of data. The pipeline
// uses it to fingerprint source notation and serialized schematics for
// cache keying.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

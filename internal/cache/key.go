package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Key derives a stable cache key from an operation prefix and its
// parameters. Maps marshal with sorted keys, so two parameter maps with
// equal pairs always digest to the same key regardless of insertion
// order. The digest is truncated to 16 hex characters.
func Key(prefix string, params map[string]interface{}) string {
	canonical, err := json.Marshal(params)
	if err != nil {
		// Parameters are always plain strings and numbers; a marshal
		// failure would mean a programming error upstream.
		canonical = []byte(prefix)
	}

	sum := sha256.Sum256(append([]byte(prefix+":"), canonical...))
	return hex.EncodeToString(sum[:])[:16]
}

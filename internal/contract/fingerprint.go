package contract

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the blake3 hash of the request's JSON encoding.
// Struct field order is fixed, so equal requests hash equally.
func Fingerprint(req SaveRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode save request: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(data); err != nil {
		return "", fmt.Errorf("hash save request: %w", err)
	}
	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}

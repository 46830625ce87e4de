// utils/random.go
package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateTrackingToken returns an unguessable URL-safe token. 24 bytes of
// entropy; the public tracking page is the only place these appear.
func GenerateTrackingToken() string {
	key := make([]byte, 24)
	if _, err := rand.Read(key); err != nil {
		panic("failed to read random source")
	}
	return base64.RawURLEncoding.EncodeToString(key)
}

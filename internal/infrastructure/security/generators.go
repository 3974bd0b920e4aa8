// Package security provides secure random generation utilities
package security

import (
	"github.com/oklog/ulid/v2"
)

// GenerateULID generates a new ULID string. ULIDs sort lexically by creation
// time, which keeps footprint entry IDs monotonic-ish within a session.
func GenerateULID() string {
	return ulid.Make().String()
}

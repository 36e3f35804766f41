package util

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewULID returns a new lexicographically sortable unique identifier.
func NewULID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

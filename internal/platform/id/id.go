// Package id generates opaque identifiers for games.
package id

import (
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a 26-character lowercase base32 encoding of a random UUIDv4.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return encode(u), nil
}

// NewIDFromReader is NewID drawing entropy from r, so seeded simulations can
// reproduce their game ids.
func NewIDFromReader(r io.Reader) (string, error) {
	u, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return encode(u), nil
}

func encode(u uuid.UUID) string {
	return strings.ToLower(encoding.EncodeToString(u[:]))
}

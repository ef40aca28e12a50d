// Package idgen generates event identifiers backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// EventPrefix is prepended to every server-generated event ID.
const EventPrefix = "ev-"

// alphabet is the character set for the random part of an ID. With 62
// symbols and a length of 12 there are roughly 3e21 possible IDs per prefix.
const (
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	length   = 12
)

// EventID returns a new random event ID.
func EventID() (string, error) {
	return WithPrefix(EventPrefix)
}

// WithPrefix returns a new random ID with the given prefix.
func WithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(alphabet, length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

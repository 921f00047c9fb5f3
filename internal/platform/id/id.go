// Package id generates opaque identifiers for lead submissions.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Len is the length of every generated identifier.
const Len = 26

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// New returns a lowercase, unpadded base32 encoding of a random UUID.
func New() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(value[:])), nil
}

// Package gameid mints the identifiers stamped on every dealt round.
//
// Ids are UUIDv7 values rendered as 26 lower-case characters of Crockford's
// base32 alphabet, so they sort by creation time and are safe to use in file
// names.
package gameid

import (
	"encoding/base32"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, as used by TypeID
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded id.
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator produces round ids. The zero value reads randomness from
// crypto/rand.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator drawing the random bits of each UUID from
// r. A nil reader falls back to crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate returns a new id.
func (g *Generator) Generate() (string, error) {
	var (
		id  uuid.UUID
		err error
	)
	if g == nil || g.rand == nil {
		id, err = uuid.NewV7()
	} else {
		id, err = uuid.NewV7FromReader(g.rand)
	}
	if err != nil {
		return "", fmt.Errorf("generate round id: %w", err)
	}
	return Encode(id), nil
}

// Generate returns a new id from crypto/rand, panicking if the system source
// fails.
func Generate() string {
	id, err := (&Generator{}).Generate()
	if err != nil {
		panic(err)
	}
	return id
}

// Encode renders a UUID in the 26-character id form.
func Encode(id uuid.UUID) string {
	return encoding.EncodeToString(id[:])
}

// Decode parses an id back into its UUID.
func Decode(s string) (uuid.UUID, error) {
	if len(s) != Length {
		return uuid.Nil, fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(s))
	}
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid round ID %q: %w", s, err)
	}
	return uuid.FromBytes(raw)
}

// Validate checks that s is a well formed version 7 id.
func Validate(s string) error {
	id, err := Decode(s)
	if err != nil {
		return err
	}
	if id.Version() != 7 {
		return fmt.Errorf("round ID %q is UUID version %d, want 7", s, id.Version())
	}
	return nil
}

package toon

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// CanonicalHash returns a stable 64-bit fingerprint of a value, derived
// from its default-options encoding. Two values hash equally iff they
// encode to the same document.
func CanonicalHash(v *Value) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(Encode(v)))
}

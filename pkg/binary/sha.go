package binary

import (
	"encoding/hex"
	"fmt"
)

// SHA1Len is the length in bytes of a binary SHA1 hash.
const SHA1Len = 20

// SHA1 is a content hash, the unit of addressing throughout the
// repository: pack entries, blob keys, and refs are all keyed by one.
type SHA1 [SHA1Len]byte

// String renders the hash as lowercase hex, its canonical display form.
func (s SHA1) String() string {
	return hex.EncodeToString(s[:])
}

// IsZero reports whether the hash is all zero bytes, the sentinel used
// by maybe_sha_string to mean "absent" in some schema versions.
func (s SHA1) IsZero() bool {
	return s == SHA1{}
}

// ParseSHA1Hex decodes a 40-character hex string into a SHA1.
func ParseSHA1Hex(s string) (SHA1, error) {
	var out SHA1
	if len(s) != SHA1Len*2 {
		return out, fmt.Errorf("binary: sha1 hex string has length %d, want %d", len(s), SHA1Len*2)
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("binary: sha1 hex decode: %w", err)
	}
	copy(out[:], decoded)
	return out, nil
}

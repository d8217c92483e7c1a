package binary

import (
	"encoding/binary"
	"fmt"
	"time"
	"unicode/utf8"
)

// Reader decodes the grammar primitives of the repository's binary
// record format from an in-memory byte slice. It advances a single
// cursor and never copies the underlying buffer except where a typed
// value requires it (strings, hashes).
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps buf for sequential decoding. buf is not copied; the
// caller must not mutate it while the Reader is in use.
func NewReader(buf []byte) *Reader {
	return &Reader{data: buf}
}

// Pos returns the current byte offset into the underlying buffer.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrTruncated
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Byte reads a single raw byte.
func (r *Reader) Byte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bytes reads n raw bytes verbatim.
func (r *Reader) Bytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Uint32 reads a big-endian u32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Uint64 reads a big-endian u64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Int32 reads a big-endian i32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Int64 reads a big-endian i64.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Bool reads a one-byte boolean: nonzero is true.
func (r *Reader) Bool() (bool, error) {
	b, err := r.Byte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// SizedString reads a u64 length prefix followed by that many bytes of
// UTF-8 text.
func (r *Reader) SizedString() (string, error) {
	n, err := r.Uint64()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// MaybeString reads a presence flag followed by a sized_string if
// present, returning nil when absent.
func (r *Reader) MaybeString() (*string, error) {
	present, err := r.Bool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	s, err := r.SizedString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// NonNullString reads a maybe_string that is required to be present.
func (r *Reader) NonNullString() (string, error) {
	s, err := r.MaybeString()
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("binary: non_null_string: %w", ErrTruncated)
	}
	return *s, nil
}

// SHABinary reads a raw 20-byte hash.
func (r *Reader) SHABinary() (SHA1, error) {
	var out SHA1
	b, err := r.take(SHA1Len)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// SHAString reads a non_null_string that must decode as 40 hex
// characters.
func (r *Reader) SHAString() (SHA1, error) {
	s, err := r.NonNullString()
	if err != nil {
		return SHA1{}, err
	}
	sha, err := ParseSHA1Hex(s)
	if err != nil {
		return SHA1{}, fmt.Errorf("%w: %v", ErrInvalidSHAString, err)
	}
	return sha, nil
}

// MaybeSHAString reads a maybe_string whose present form decodes as 40
// hex characters, returning nil when absent.
func (r *Reader) MaybeSHAString() (*SHA1, error) {
	s, err := r.MaybeString()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	sha, err := ParseSHA1Hex(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSHAString, err)
	}
	return &sha, nil
}

// Timestamp reads a maybe<u64 ms>, returning nil when absent and
// otherwise a UTC time truncated to millisecond precision.
func (r *Reader) Timestamp() (*time.Time, error) {
	present, err := r.Bool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	ms, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	t := time.UnixMilli(int64(ms)).UTC()
	return &t, nil
}

// RequiredTimestamp reads a timestamp that must be present, as used by
// the commit record's own timestamp field (every other timestamp in
// the format is genuinely optional).
func (r *Reader) RequiredTimestamp() (time.Time, error) {
	t, err := r.Timestamp()
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, fmt.Errorf("binary: required timestamp: %w", ErrTruncated)
	}
	return *t, nil
}

// CompressionType reads a u32 compression tag.
func (r *Reader) CompressionType() (CompressionType, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return compressionTypeFromU32(v)
}

// VersionHeader reads the literal prefix followed by 3 ASCII decimal
// digits, returning the decoded version number.
func (r *Reader) VersionHeader(prefix string) (int, error) {
	lit, err := r.take(len(prefix))
	if err != nil {
		return 0, err
	}
	if string(lit) != prefix {
		return 0, ErrInvalidVersionHeader
	}
	digits, err := r.take(3)
	if err != nil {
		return 0, err
	}
	version := 0
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0, ErrInvalidVersionHeader
		}
		version = version*10 + int(d-'0')
	}
	return version, nil
}

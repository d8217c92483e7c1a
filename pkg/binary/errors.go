package binary

import "errors"

var (
	// ErrTruncated is returned whenever a read runs past the end of the
	// underlying buffer: every record schema is self-describing, so this
	// always indicates a malformed or short object body.
	ErrTruncated = errors.New("binary: truncated input")

	// ErrInvalidUTF8 is returned when a sized_string's bytes are not
	// valid UTF-8.
	ErrInvalidUTF8 = errors.New("binary: string is not valid UTF-8")

	// ErrInvalidVersionHeader is returned when a version_header's
	// literal prefix doesn't match, or its trailing 3 digits aren't
	// ASCII decimal.
	ErrInvalidVersionHeader = errors.New("binary: invalid version header")

	// ErrInvalidCompressionType is returned for a compression_type tag
	// outside {0, 1, 2}.
	ErrInvalidCompressionType = errors.New("binary: invalid compression type tag")

	// ErrInvalidSHAString is returned when a sha_string or
	// maybe_sha_string's bytes are not 40 hex characters.
	ErrInvalidSHAString = errors.New("binary: invalid sha1 hex string")
)

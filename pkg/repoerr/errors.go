package repoerr

import "fmt"

// Kind classifies a repository-level failure.
type Kind int

const (
	// KindStorage wraps a failure surfaced by the Store driver itself
	// (see pkg/store.ErrorKind for the finer-grained breakdown).
	KindStorage Kind = iota
	// KindMalformedData covers any parse failure: a missing V1 prefix
	// on an object that requires one, an unknown compression or
	// storage_type tag, an unresolved content hash, an unparseable
	// UUID, or an unparseable commit pointer.
	KindMalformedData
	// KindCrypto covers a wrong passphrase or corrupt ciphertext,
	// distinguished from KindMalformedData so callers can point the
	// user at their password rather than at repository corruption.
	KindCrypto
	// KindInput covers a user-supplied value that fails validation
	// before any I/O happens, such as a glob pattern that won't
	// compile.
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindMalformedData:
		return "malformed_data"
	case KindCrypto:
		return "crypto"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

// Error is the error type every package above pkg/store returns.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("repository: %s", e.Kind)
	}
	return fmt.Sprintf("repository: %s: %v", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports Kind equality, letting callers write errors.Is(err,
// repoerr.ErrMalformedData) without caring about the wrapped cause.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinel values for use with errors.Is; their Cause is always nil.
var (
	ErrStorage       = &Error{Kind: KindStorage}
	ErrMalformedData = &Error{Kind: KindMalformedData}
	ErrCrypto        = &Error{Kind: KindCrypto}
	ErrInput         = &Error{Kind: KindInput}
)

// Storage wraps cause as a KindStorage error.
func Storage(cause error) *Error { return &Error{Kind: KindStorage, Cause: cause} }

// MalformedData wraps cause as a KindMalformedData error.
func MalformedData(cause error) *Error { return &Error{Kind: KindMalformedData, Cause: cause} }

// Crypto wraps cause as a KindCrypto error.
func Crypto(cause error) *Error { return &Error{Kind: KindCrypto, Cause: cause} }

// Input wraps cause as a KindInput error.
func Input(cause error) *Error { return &Error{Kind: KindInput, Cause: cause} }

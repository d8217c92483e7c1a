package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/cuemby/snapvault/pkg/key"
)

// ErrorKind classifies the way a Store operation failed.
type ErrorKind int

const (
	// ErrorUnknown covers failures that don't fit another kind.
	ErrorUnknown ErrorKind = iota
	// ErrorNoSuchObject means the requested key does not exist.
	ErrorNoSuchObject
	// ErrorAccessDenied means the caller lacks permission.
	ErrorAccessDenied
	// ErrorNetwork means a transport-level failure occurred.
	ErrorNetwork
	// ErrorGlacierTier means the object exists but is archived in a
	// cold storage tier this client will not thaw. Additive: the core
	// taxonomy (spec.md §7) does not name this kind; it is only ever
	// produced by drivers (e.g. s3store) that know about storage
	// classes.
	ErrorGlacierTier
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorNoSuchObject:
		return "no such object"
	case ErrorAccessDenied:
		return "access denied"
	case ErrorNetwork:
		return "network error"
	case ErrorGlacierTier:
		return "object is in glacier tier"
	default:
		return "unknown storage error"
	}
}

// Error is the error type returned by every Store operation.
type Error struct {
	Kind  ErrorKind
	Key   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store: %s (%s): %v", e.Kind, e.Key, e.Cause)
	}
	return fmt.Sprintf("store: %s (%s)", e.Kind, e.Key)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is(err, store.ErrNoSuchObject) style comparisons
// against the kind sentinels below.
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*Error)
	if !ok {
		return false
	}
	return sentinel.Kind == e.Kind
}

// Sentinel errors for errors.Is comparisons. Only Kind is compared.
var (
	ErrNoSuchObject = &Error{Kind: ErrorNoSuchObject}
	ErrAccessDenied = &Error{Kind: ErrorAccessDenied}
	ErrNetwork      = &Error{Kind: ErrorNetwork}
	ErrGlacierTier  = &Error{Kind: ErrorGlacierTier}
)

// NewError builds a *Error, wrapping cause.
func NewError(kind ErrorKind, objectKey string, cause error) *Error {
	return &Error{Kind: kind, Key: objectKey, Cause: cause}
}

// ListFlags selects what list_contents returns.
type ListFlags int

const (
	// Dirs yields common prefixes ("folders").
	Dirs ListFlags = 1 << iota
	// Files yields leaf objects.
	Files
)

// Has reports whether f includes flag.
func (f ListFlags) Has(flag ListFlags) bool {
	return f&flag != 0
}

// Object describes one entry returned by list_contents.
type Object struct {
	Key  key.Key
	Size int64
}

// Store is the capability the repository core consumes from a storage
// driver: async list-by-prefix and get-by-key. Implementations must be
// safe for concurrent use; no per-Store mutable state may be observable
// to callers. Pagination and retries are the driver's concern.
type Store interface {
	// ListContents returns every object under prefix. flags selects
	// DIRS (common prefixes) and/or FILES (leaf objects).
	ListContents(ctx context.Context, prefix key.Key, flags ListFlags) ([]Object, error)
	// Get returns the full content of the object at k.
	Get(ctx context.Context, k key.Key) ([]byte, error)
}

// IsNoSuchObject reports whether err is, or wraps, a no-such-object
// Store error.
func IsNoSuchObject(err error) bool {
	return errors.Is(err, ErrNoSuchObject)
}

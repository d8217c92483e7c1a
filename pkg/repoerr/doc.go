// Package repoerr defines the error taxonomy the repository core
// surfaces to its callers: storage failures (re-exported from the
// underlying Store), malformed data, crypto failures, and bad user
// input. Every package above pkg/store wraps its failures in one of
// these so callers can branch on Kind without caring which layer
// produced the error.
package repoerr

// Package binary implements the grammar primitives shared by every
// versioned record in the repository format: booleans, presence-gated
// optionals, length-prefixed strings, SHA1 hashes in both their binary
// and hex-string forms, millisecond timestamps, compression tags, and
// the "PrefixNNN" version header every commit and tree record starts
// with.
package binary

// Package key implements the bucket-relative object path used to
// address every object in a backup repository.
package key

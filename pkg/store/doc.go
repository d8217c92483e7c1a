// Package store defines the Store capability that the repository core
// consumes from an object-storage driver, and provides two concrete
// implementations: an in-repo local-disk driver (used for mirrors and
// test fixtures) and an atomic-rename disk cache that wraps any Store
// to memoize immutable pack/index bodies.
//
// The core never depends on a concrete driver. Swapping the local-disk
// driver for the S3 driver in package s3store requires no change to
// anything above this package.
package store

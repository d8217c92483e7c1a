// Package throttle implements two fan-outs over fallible tasks.
// JoinBounded is bounded-parallel, order-preserving and
// short-circuiting; the repository core uses it for index files and
// multi-fragment blobs. GatherTolerant is unbounded and drops failed
// items instead of aborting; the core uses it for the computer and
// folder listings.
package throttle

// Package packset reads a pack-file-backed content index: one or more
// <sha>.index files describing where every object lives across one or
// more <sha>.pack files, and the pack files themselves. A Packset
// merges every index under a root key into a single sha-to-location
// map, then serves individual objects by slicing the relevant pack
// file on demand.
package packset

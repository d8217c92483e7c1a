// Package walk enumerates the files under a commit's root tree: an
// iterative worklist walks the tree-record graph depth-first, each
// directory's blob fragments fetched unthrottled and in parallel,
// decrypted, decompressed and concatenated, then reparsed as a tree.
package walk

// Package repository is the top of the core's object graph: a
// Repository enumerates computers, a Computer enumerates folders, and
// a Folder resolves to the commit/tree/packset chain pkg/walk reads
// leaves from. It is also where the crypto material gets derived: a
// computer's content decrypter comes from its own salt object, while
// every computer's bucket decrypter shares the fixed "BucketPL" salt.
package repository

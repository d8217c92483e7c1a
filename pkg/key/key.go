package key

import "strings"

// Key is an immutable, bucket-relative object path. The zero value is
// the empty key.
type Key struct {
	path string
}

// New wraps a literal path string in a Key.
func New(path string) Key {
	return Key{path: path}
}

// String returns the path as a plain string.
func (k Key) String() string {
	return k.path
}

// Join composes k with a string suffix, inserting exactly one "/"
// separator. If k already ends in "/" no extra separator is added. An
// empty k yields rhs unchanged (no leading "/").
func (k Key) Join(rhs string) Key {
	if k.path == "" {
		return Key{path: rhs}
	}
	if strings.HasSuffix(k.path, "/") {
		return Key{path: k.path + rhs}
	}
	return Key{path: k.path + "/" + rhs}
}

// JoinKey composes k with another Key, per the same rule as Join.
func (k Key) JoinKey(rhs Key) Key {
	return k.Join(rhs.path)
}

// HasSuffix reports whether the key's path ends with suffix.
func (k Key) HasSuffix(suffix string) bool {
	return strings.HasSuffix(k.path, suffix)
}

// Empty reports whether the key has no path component.
func (k Key) Empty() bool {
	return k.path == ""
}

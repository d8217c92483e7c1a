package packset

import (
	"encoding/hex"
	"strings"

	"github.com/cuemby/snapvault/pkg/binary"
	"github.com/cuemby/snapvault/pkg/repoerr"
)

var indexMagic = [4]byte{0xff, 0x74, 0x4f, 0x63}

// location is where one object lives within a pack file.
type location struct {
	PackID binary.SHA1
	Offset uint64
	Length uint64
}

type indexEntry struct {
	SHA      binary.SHA1
	Location location
}

// parseIndex decodes one .index file body into its entries. The
// version field and the cumulative counts table are validated for
// shape (always present, counts[255] giving the entry count) but their
// values are not otherwise interpreted; the histogram is a lookup
// optimization this reader doesn't need.
func parseIndex(data []byte) ([]indexEntry, error) {
	r := binary.NewReader(data)

	magic, err := r.Bytes(4)
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	if magic[0] != indexMagic[0] || magic[1] != indexMagic[1] || magic[2] != indexMagic[2] || magic[3] != indexMagic[3] {
		return nil, repoerr.MalformedData(errBadIndexMagic)
	}

	if _, err := r.Uint32(); err != nil { // version, unused
		return nil, repoerr.MalformedData(err)
	}

	var counts [256]uint32
	for i := range counts {
		v, err := r.Uint32()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		counts[i] = v
	}

	n := int(counts[255])
	entries := make([]indexEntry, 0, n)
	for i := 0; i < n; i++ {
		offset, err := r.Uint64()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		length, err := r.Uint64()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		sha, err := r.SHABinary()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		if _, err := r.Bytes(4); err != nil { // padding
			return nil, repoerr.MalformedData(err)
		}
		entries = append(entries, indexEntry{
			SHA:      sha,
			Location: location{Offset: offset, Length: length},
		})
	}

	return entries, nil
}

// packIDFromKey recovers the pack id from an index/pack object key: the
// hex string between the last "/" and the last "." in the key.
func packIDFromKey(k string) (binary.SHA1, error) {
	start := strings.LastIndex(k, "/")
	end := strings.LastIndex(k, ".")
	if start < 0 || end < 0 || end <= start+1 {
		return binary.SHA1{}, repoerr.MalformedData(errUnrecognizedPackKey)
	}
	substr := k[start+1 : end]
	decoded, err := hex.DecodeString(substr)
	if err != nil || len(decoded) != binary.SHA1Len {
		return binary.SHA1{}, repoerr.MalformedData(errUnrecognizedPackKey)
	}
	var id binary.SHA1
	copy(id[:], decoded)
	return id, nil
}

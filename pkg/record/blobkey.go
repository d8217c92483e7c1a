package record

import (
	"time"

	"github.com/cuemby/snapvault/pkg/binary"
	"github.com/cuemby/snapvault/pkg/repoerr"
)

// StorageType is where a blob's bytes live.
type StorageType uint32

const (
	StorageNone    StorageType = 0
	StorageS3      StorageType = 1
	StorageGlacier StorageType = 2
)

func parseStorageType(v uint32) (StorageType, error) {
	switch StorageType(v) {
	case StorageNone, StorageS3, StorageGlacier:
		return StorageType(v), nil
	default:
		return 0, repoerr.MalformedData(errInvalidStorage)
	}
}

// BlobKey addresses one fragment of a blob's content within the
// packset. sha is present for every schema version, but a sha of all
// zero bytes is the historical sentinel for "no key at all": when
// that's the case, parseMaybeBlobKey returns a nil *BlobKey, even
// though the trailing version-gated fields were still read off the
// wire to keep the cursor aligned with what actually follows.
type BlobKey struct {
	SHA         binary.SHA1
	StretchKey  bool
	StorageType StorageType
	ArchiveID   *string
	Size        uint64
	UploadDate  *time.Time
}

// parseMaybeBlobKey decodes a BlobKey that may be absent. Every
// trailing field gated by version is read unconditionally when its
// version gate is open, regardless of whether sha turned out to be
// present — the two conditions (version gate, sha presence) are
// independent in the wire format.
func parseMaybeBlobKey(r *binary.Reader, version int) (*BlobKey, error) {
	sha, err := r.MaybeSHAString()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}

	var stretchKey bool
	if version >= 14 {
		stretchKey, err = r.Bool()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
	}

	storage := StorageS3
	if version >= 17 {
		tag, err := r.Uint32()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		storage, err = parseStorageType(tag)
		if err != nil {
			return nil, err
		}
	}

	var archiveID *string
	if version >= 17 {
		archiveID, err = r.MaybeString()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
	}

	var size uint64
	if version >= 17 {
		size, err = r.Uint64()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
	}

	var uploadDate *time.Time
	if version >= 17 {
		uploadDate, err = r.Timestamp()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
	}

	if sha == nil || sha.IsZero() {
		return nil, nil
	}

	return &BlobKey{
		SHA:         *sha,
		StretchKey:  stretchKey,
		StorageType: storage,
		ArchiveID:   archiveID,
		Size:        size,
		UploadDate:  uploadDate,
	}, nil
}

// parseBlobKey decodes a BlobKey that must be present.
func parseBlobKey(r *binary.Reader, version int) (BlobKey, error) {
	k, err := parseMaybeBlobKey(r, version)
	if err != nil {
		return BlobKey{}, err
	}
	if k == nil {
		return BlobKey{}, repoerr.MalformedData(errNullBlobKey)
	}
	return *k, nil
}

func parseBlobKeys(r *binary.Reader, version int) ([]BlobKey, error) {
	n, err := r.Uint32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	keys := make([]BlobKey, 0, n)
	for i := 0; i < int(n); i++ {
		k, err := parseBlobKey(r, version)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// compressionFlagOrType reads the version-appropriate compression
// encoding: the boolean form at versions 12 through 18 inclusive, the
// u32 tag form at versions 19 and up, or neither (None) otherwise.
func compressionFlagOrType(r *binary.Reader, version int) (binary.CompressionType, error) {
	var flag *bool
	if version >= 12 && version <= 18 {
		b, err := r.Bool()
		if err != nil {
			return 0, repoerr.MalformedData(err)
		}
		flag = &b
	}

	var typ *binary.CompressionType
	if version >= 19 {
		t, err := r.CompressionType()
		if err != nil {
			return 0, repoerr.MalformedData(err)
		}
		typ = &t
	}

	return binary.UnwrapCompressionType(flag, typ), nil
}

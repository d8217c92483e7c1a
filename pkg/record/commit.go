package record

import (
	"time"

	"github.com/cuemby/snapvault/pkg/binary"
	"github.com/cuemby/snapvault/pkg/repoerr"
)

// commitVersionPrefix is the literal that opens every commit record,
// followed by 3 ASCII decimal digits giving the schema version.
const commitVersionPrefix = "CommitV"

// ParentKey points at a commit record's parent snapshot.
type ParentKey struct {
	SHA       binary.SHA1
	ExpandKey bool
}

// FileError is one entry of a commit's recorded per-file failures.
type FileError struct {
	Path  string
	Error string
}

// Commit is a versioned snapshot descriptor: the root tree it points
// at, its ancestry, and bookkeeping about the backup run that produced
// it.
type Commit struct {
	Version         int
	Author          *string
	Comment         *string
	Parents         []ParentKey
	TreeSHA         binary.SHA1
	ExpandKey       bool
	CompressionType binary.CompressionType
	Path            *string
	Timestamp       time.Time
	FileErrors      []FileError
	MissingNodes    *bool
	IsComplete      *bool
	Plist           []byte
	ArqVersion      *string
}

// ParseCommit decodes a commit record from its plaintext pack-object
// bytes.
func ParseCommit(data []byte) (*Commit, error) {
	r := binary.NewReader(data)

	version, err := r.VersionHeader(commitVersionPrefix)
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}

	author, err := r.MaybeString()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	comment, err := r.MaybeString()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}

	parentCount, err := r.Uint64()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	parents := make([]ParentKey, 0, parentCount)
	for i := uint64(0); i < parentCount; i++ {
		sha, err := r.SHAString()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		var expand bool
		if version >= 4 {
			expand, err = r.Bool()
			if err != nil {
				return nil, repoerr.MalformedData(err)
			}
		}
		parents = append(parents, ParentKey{SHA: sha, ExpandKey: expand})
	}

	treeSHA, err := r.SHAString()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}

	var expandKey bool
	if version >= 4 {
		expandKey, err = r.Bool()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
	}

	var isCompressed *bool
	if version >= 8 && version <= 9 {
		b, err := r.Bool()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		isCompressed = &b
	}
	var compressionTag *binary.CompressionType
	if version >= 10 {
		t, err := r.CompressionType()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		compressionTag = &t
	}

	path, err := r.MaybeString()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}

	if version <= 7 {
		if _, err := r.MaybeSHAString(); err != nil { // common_ancestor, unused
			return nil, repoerr.MalformedData(err)
		}
	}
	if version >= 4 && version <= 7 {
		if _, err := r.Bool(); err != nil { // common_ancestor_expand, unused
			return nil, repoerr.MalformedData(err)
		}
	}

	timestamp, err := r.RequiredTimestamp()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}

	var fileErrors []FileError
	if version >= 3 {
		n, err := r.Uint64()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		fileErrors = make([]FileError, 0, n)
		for i := uint64(0); i < n; i++ {
			path, err := r.NonNullString()
			if err != nil {
				return nil, repoerr.MalformedData(err)
			}
			errText, err := r.NonNullString()
			if err != nil {
				return nil, repoerr.MalformedData(err)
			}
			fileErrors = append(fileErrors, FileError{Path: path, Error: errText})
		}
	}

	var missingNodes *bool
	if version >= 8 {
		b, err := r.Bool()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		missingNodes = &b
	}

	var isComplete *bool
	if version >= 9 {
		b, err := r.Bool()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		isComplete = &b
	}

	var plist []byte
	if version >= 5 {
		n, err := r.Uint64()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		plist, err = r.Bytes(int(n))
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
	}

	var arqVersion *string
	if version >= 12 {
		v, err := r.NonNullString()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		arqVersion = &v
	}

	return &Commit{
		Version:         version,
		Author:          author,
		Comment:         comment,
		Parents:         parents,
		TreeSHA:         treeSHA,
		ExpandKey:       expandKey,
		CompressionType: binary.UnwrapCompressionType(isCompressed, compressionTag),
		Path:            path,
		Timestamp:       timestamp,
		FileErrors:      fileErrors,
		MissingNodes:    missingNodes,
		IsComplete:      isComplete,
		Plist:           plist,
		ArqVersion:      arqVersion,
	}, nil
}

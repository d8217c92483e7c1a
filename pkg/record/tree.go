package record

import (
	"github.com/cuemby/snapvault/pkg/binary"
	"github.com/cuemby/snapvault/pkg/repoerr"
)

// treeVersionPrefix is the literal that opens every tree record.
const treeVersionPrefix = "TreeV"

// Tree is a versioned directory descriptor: shared filesystem
// attributes plus an ordered list of child Nodes.
type Tree struct {
	Version               int
	XattrsCompressionType binary.CompressionType
	AclCompressionType    binary.CompressionType
	XattrsBlobKey         *BlobKey
	XattrsBlobSize        uint64
	AclBlobKey            *BlobKey
	UserID                int32
	GroupID               int32
	FileMode              int32
	MtimeSec              int64
	MtimeNsec             int64
	Flags                 uint64
	FinderFlags           uint64
	StDev                 int32
	StIno                 int32
	StNlink               uint32
	StRdev                int32
	CtimeSec              int64
	CtimeNsec             int64
	StBlocks              int64
	StBlockSize           uint32
	SizeOnDisk            uint64
	CreateSec             int64
	CreateNsec            int64
	MissingNodes          []string
	Nodes                 []Node
}

// ParseTree decodes a tree record from its plaintext pack-object
// bytes.
func ParseTree(data []byte) (*Tree, error) {
	r := binary.NewReader(data)

	version, err := r.VersionHeader(treeVersionPrefix)
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}

	xattrsCompression, err := compressionFlagOrType(r, version)
	if err != nil {
		return nil, err
	}
	aclCompression, err := compressionFlagOrType(r, version)
	if err != nil {
		return nil, err
	}

	xattrsBlobKey, err := parseMaybeBlobKey(r, version)
	if err != nil {
		return nil, err
	}
	xattrsBlobSize, err := r.Uint64()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	aclBlobKey, err := parseMaybeBlobKey(r, version)
	if err != nil {
		return nil, err
	}

	userID, err := r.Int32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	groupID, err := r.Int32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	fileMode, err := r.Int32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	mtimeSec, err := r.Int64()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	mtimeNsec, err := r.Int64()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	flags, err := r.Uint64()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	finderFlags, err := r.Uint32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	extendedFinderFlags, err := r.Uint32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	stDev, err := r.Int32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	stIno, err := r.Int32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	stNlink, err := r.Uint32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	stRdev, err := r.Int32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	ctimeSec, err := r.Int64()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	ctimeNsec, err := r.Int64()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	stBlocks, err := r.Int64()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	stBlockSize, err := r.Uint32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}

	var sizeOnDisk uint64
	if version >= 11 && version <= 16 {
		sizeOnDisk, err = r.Uint64()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
	}

	createSec, err := r.Int64()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	createNsec, err := r.Int64()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}

	var missingNodes []string
	if version >= 18 {
		n, err := r.Uint32()
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		missingNodes = make([]string, 0, n)
		for i := uint32(0); i < n; i++ {
			s, err := r.NonNullString()
			if err != nil {
				return nil, repoerr.MalformedData(err)
			}
			missingNodes = append(missingNodes, s)
		}
	}

	nodeCount, err := r.Uint32()
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}
	nodes := make([]Node, 0, nodeCount)
	for i := uint32(0); i < nodeCount; i++ {
		n, err := parseNode(r, version)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	return &Tree{
		Version:               version,
		XattrsCompressionType: xattrsCompression,
		AclCompressionType:    aclCompression,
		XattrsBlobKey:         xattrsBlobKey,
		XattrsBlobSize:        xattrsBlobSize,
		AclBlobKey:            aclBlobKey,
		UserID:                userID,
		GroupID:               groupID,
		FileMode:              fileMode,
		MtimeSec:              mtimeSec,
		MtimeNsec:             mtimeNsec,
		Flags:                 flags,
		FinderFlags:           (uint64(extendedFinderFlags) << 32) | uint64(finderFlags),
		StDev:                 stDev,
		StIno:                 stIno,
		StNlink:               stNlink,
		StRdev:                stRdev,
		CtimeSec:              ctimeSec,
		CtimeNsec:             ctimeNsec,
		StBlocks:              stBlocks,
		StBlockSize:           stBlockSize,
		SizeOnDisk:            sizeOnDisk,
		CreateSec:             createSec,
		CreateNsec:            createNsec,
		MissingNodes:          missingNodes,
		Nodes:                 nodes,
	}, nil
}

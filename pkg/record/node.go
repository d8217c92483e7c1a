package record

import (
	"github.com/cuemby/snapvault/pkg/binary"
	"github.com/cuemby/snapvault/pkg/repoerr"
)

// Node is one entry of a tree record: a file or, when IsTree is set, a
// reference to a child tree record.
type Node struct {
	Name                  string
	IsTree                bool
	HasMissingItems       *bool
	DataCompressionType   binary.CompressionType
	DataBlobKeys          []BlobKey
	DataSize              uint64
	ThumbnailSHA          *binary.SHA1
	StretchThumbnailKey   *bool
	PreviewSHA            *binary.SHA1
	StretchPreviewKey     *bool
	XattrsCompressionType binary.CompressionType
	XattrsBlobKey         *BlobKey
	XattrsSize            uint64
	AclCompressionType    binary.CompressionType
	AclBlobKey            *BlobKey
	UserID                int32
	GroupID               int32
	FileMode              int32
	MtimeSec              int64
	MtimeNsec             int64
	Flags                 uint64
	FinderFlags           uint64
	FileType              *string
	Creator               *string
	HideExtension         bool
	StDev                 int32
	StIno                 int32
	StNlink               uint32
	StRdev                int32
	CtimeSec              int64
	CtimeNsec             int64
	CreateSec             int64
	CreateNsec            int64
	StBlocks              int64
	StBlockSize           int32
}

func parseNode(r *binary.Reader, version int) (Node, error) {
	name, err := r.NonNullString()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	isTree, err := r.Bool()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}

	var hasMissingItems *bool
	if version >= 18 {
		b, err := r.Bool()
		if err != nil {
			return Node{}, repoerr.MalformedData(err)
		}
		hasMissingItems = &b
	}

	dataCompression, err := compressionFlagOrType(r, version)
	if err != nil {
		return Node{}, err
	}
	xattrsCompression, err := compressionFlagOrType(r, version)
	if err != nil {
		return Node{}, err
	}
	aclCompression, err := compressionFlagOrType(r, version)
	if err != nil {
		return Node{}, err
	}

	dataBlobKeys, err := parseBlobKeys(r, version)
	if err != nil {
		return Node{}, err
	}
	dataSize, err := r.Uint64()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}

	// The docs say the thumbnail/preview fields are gated at version
	// <= 18, but the real blobs agree with a strictly-less-than gate.
	var thumbnailSHA *binary.SHA1
	if version < 18 {
		thumbnailSHA, err = r.MaybeSHAString()
		if err != nil {
			return Node{}, repoerr.MalformedData(err)
		}
	}
	var stretchThumbnailKey *bool
	if version >= 14 && version <= 17 {
		b, err := r.Bool()
		if err != nil {
			return Node{}, repoerr.MalformedData(err)
		}
		stretchThumbnailKey = &b
	}
	var previewSHA *binary.SHA1
	if version < 18 {
		previewSHA, err = r.MaybeSHAString()
		if err != nil {
			return Node{}, repoerr.MalformedData(err)
		}
	}
	var stretchPreviewKey *bool
	if version >= 14 && version <= 17 {
		b, err := r.Bool()
		if err != nil {
			return Node{}, repoerr.MalformedData(err)
		}
		stretchPreviewKey = &b
	}

	xattrsBlobKey, err := parseMaybeBlobKey(r, version)
	if err != nil {
		return Node{}, err
	}
	xattrsSize, err := r.Uint64()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	aclBlobKey, err := parseMaybeBlobKey(r, version)
	if err != nil {
		return Node{}, err
	}

	userID, err := r.Int32()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	groupID, err := r.Int32()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	fileMode, err := r.Int32()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	mtimeSec, err := r.Int64()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	mtimeNsec, err := r.Int64()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	flags, err := r.Uint64()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	finderFlags, err := r.Uint32()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	extendedFinderFlags, err := r.Uint32()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	fileType, err := r.MaybeString()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	creator, err := r.MaybeString()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	hideExtension, err := r.Bool()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	stDev, err := r.Int32()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	stIno, err := r.Int32()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	stNlink, err := r.Uint32()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	stRdev, err := r.Int32()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	ctimeSec, err := r.Int64()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	ctimeNsec, err := r.Int64()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	createSec, err := r.Int64()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	createNsec, err := r.Int64()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	stBlocks, err := r.Int64()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}
	stBlockSize, err := r.Int32()
	if err != nil {
		return Node{}, repoerr.MalformedData(err)
	}

	return Node{
		Name:                  name,
		IsTree:                isTree,
		HasMissingItems:       hasMissingItems,
		DataCompressionType:   dataCompression,
		DataBlobKeys:          dataBlobKeys,
		DataSize:              dataSize,
		ThumbnailSHA:          thumbnailSHA,
		StretchThumbnailKey:   stretchThumbnailKey,
		PreviewSHA:            previewSHA,
		StretchPreviewKey:     stretchPreviewKey,
		XattrsCompressionType: xattrsCompression,
		XattrsBlobKey:         xattrsBlobKey,
		XattrsSize:            xattrsSize,
		AclCompressionType:    aclCompression,
		AclBlobKey:            aclBlobKey,
		UserID:                userID,
		GroupID:               groupID,
		FileMode:              fileMode,
		MtimeSec:              mtimeSec,
		MtimeNsec:             mtimeNsec,
		Flags:                 flags,
		FinderFlags:           (uint64(extendedFinderFlags) << 32) | uint64(finderFlags),
		FileType:              fileType,
		Creator:               creator,
		HideExtension:         hideExtension,
		StDev:                 stDev,
		StIno:                 stIno,
		StNlink:               stNlink,
		StRdev:                stRdev,
		CtimeSec:              ctimeSec,
		CtimeNsec:             ctimeNsec,
		CreateSec:             createSec,
		CreateNsec:            createNsec,
		StBlocks:              stBlocks,
		StBlockSize:           stBlockSize,
	}, nil
}

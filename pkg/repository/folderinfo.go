package repository

import (
	"howett.net/plist"

	"github.com/cuemby/snapvault/pkg/repoerr"
	"github.com/google/uuid"
)

// FolderInfo is the decoded body of a folder descriptor: the property
// list stored (V1-enveloped, bucket-encrypted) under a computer's
// "buckets/" prefix.
type FolderInfo struct {
	ID        uuid.UUID
	Name      string
	LocalPath string
}

// folderInfoDoc mirrors the subset of fields the client consumes; the
// real document also carries AWSRegionName, StorageType, VaultName and
// friends, which this client has no use for.
type folderInfoDoc struct {
	ID        string `plist:"BucketUUID"`
	Name      string `plist:"BucketName"`
	LocalPath string `plist:"LocalPath"`
}

func parseFolderInfo(data []byte) (FolderInfo, error) {
	var doc folderInfoDoc
	if err := plist.Unmarshal(data, &doc); err != nil {
		return FolderInfo{}, repoerr.MalformedData(err)
	}
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return FolderInfo{}, repoerr.MalformedData(err)
	}
	return FolderInfo{ID: id, Name: doc.Name, LocalPath: doc.LocalPath}, nil
}

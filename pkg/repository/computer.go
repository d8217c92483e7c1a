package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/cuemby/snapvault/pkg/crypto"
	"github.com/cuemby/snapvault/pkg/key"
	"github.com/cuemby/snapvault/pkg/repoerr"
	"github.com/cuemby/snapvault/pkg/store"
	"github.com/cuemby/snapvault/pkg/throttle"
)

// Computer is a single computer's backup set within a repository: its
// own content decrypter (keyed by its own salt) plus the repository's
// fixed-salt bucket decrypter, scoped to this computer's folders.
type Computer struct {
	Info ComputerInfo

	root             key.Key
	store            store.Store
	contentDecrypter crypto.ObjectDecrypter
	bucketDecrypter  crypto.ObjectDecrypter
	packsetLoadHook  func()
}

// ListFolders fans out, unthrottled, over every object under
// "buckets/": folder descriptor lists are small enough that bounding
// concurrency buys nothing. A folder whose body is malformed or whose
// envelope/decryption fails is dropped rather than failing the whole
// listing.
func (c *Computer) ListFolders(ctx context.Context) ([]FolderInfo, error) {
	objects, err := c.store.ListContents(ctx, c.root.Join("buckets"), store.Files)
	if err != nil {
		return nil, repoerr.Storage(err)
	}

	tasks := make([]throttle.Task[FolderInfo], len(objects))
	for i, o := range objects {
		o := o
		tasks[i] = func(ctx context.Context) (FolderInfo, error) {
			return c.fetchFolderInfo(ctx, o.Key)
		}
	}

	return throttle.GatherTolerant(ctx, tasks, nil), nil
}

// GetFolder fetches a single folder descriptor by its known ID. Unlike
// ListFolders, a failure here is fatal: the caller named this folder
// explicitly.
func (c *Computer) GetFolder(ctx context.Context, folderID string) (*Folder, error) {
	k := c.root.Join("buckets").Join(strings.ToUpper(folderID))
	info, err := c.fetchFolderInfo(ctx, k)
	if err != nil {
		return nil, err
	}
	return newFolder(ctx, c.Info.ID, info, c.store, c.contentDecrypter, c.packsetLoadHook)
}

func (c *Computer) fetchFolderInfo(ctx context.Context, k key.Key) (FolderInfo, error) {
	data, err := c.store.Get(ctx, k)
	if err != nil {
		return FolderInfo{}, repoerr.Storage(err)
	}
	plain, err := c.bucketDecrypter.DecryptObject(data)
	if err != nil {
		return FolderInfo{}, wrapDecryptError(err)
	}
	return parseFolderInfo(plain)
}

// wrapDecryptError maps a bucket-blob decryption failure onto
// pkg/repoerr, distinguishing a structurally malformed envelope (the
// blob never carried the "encrypted" v1 header this decrypter
// requires) from an actual bad-key/library failure: only the latter
// is a CryptoError, since reporting a malformed bucket blob as "wrong
// passphrase" would mislead the caller.
func wrapDecryptError(err error) error {
	var cerr *crypto.Error
	if errors.As(err, &cerr) && cerr.Kind == crypto.ErrorMalformedData {
		return repoerr.MalformedData(err)
	}
	return repoerr.Crypto(err)
}

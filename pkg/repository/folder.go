package repository

import (
	"context"
	"strings"

	"github.com/cuemby/snapvault/pkg/binary"
	"github.com/cuemby/snapvault/pkg/crypto"
	"github.com/cuemby/snapvault/pkg/key"
	"github.com/cuemby/snapvault/pkg/packset"
	"github.com/cuemby/snapvault/pkg/record"
	"github.com/cuemby/snapvault/pkg/repoerr"
	"github.com/cuemby/snapvault/pkg/store"
)

// Folder is a single backup folder: its descriptor plus the tree
// packset holding every commit and tree record it has ever written.
type Folder struct {
	Info        FolderInfo
	TreePackset *packset.Packset

	computerID string
	store      store.Store
	decrypter  crypto.ObjectDecrypter
}

// Decrypter returns the content decrypter this folder's tree and blob
// packsets are encrypted with, for callers (pkg/walk) that need to
// read beyond the commit record itself.
func (f *Folder) Decrypter() crypto.ObjectDecrypter {
	return f.decrypter
}

// newFolder loads the tree packset at
// "<computer_id>/packsets/<FOLDER_UUID_UPPER>-trees/" and returns a
// Folder ready to resolve commits against it. loadHook, if non-nil, is
// registered on the packset so every object it serves (to this
// Folder's own commit lookup and to pkg/walk) is counted.
func newFolder(ctx context.Context, computerID string, info FolderInfo, st store.Store, decrypter crypto.ObjectDecrypter, loadHook func()) (*Folder, error) {
	root := key.New(computerID).Join("packsets").Join(formatUUID(info.ID) + "-trees")
	ps, err := packset.New(ctx, root, st)
	if err != nil {
		return nil, err
	}
	if loadHook != nil {
		ps.SetObjectLoadedHook(loadHook)
	}
	return &Folder{Info: info, TreePackset: ps, computerID: computerID, store: st, decrypter: decrypter}, nil
}

// GetLatestCommit fetches the folder's refs/heads/master pointer,
// decodes it as a SHA1, and loads, decrypts and parses the commit
// record it names from the tree packset.
func (f *Folder) GetLatestCommit(ctx context.Context) (*record.Commit, error) {
	refKey := key.New(f.computerID).Join("bucketdata").Join(formatUUID(f.Info.ID)).Join("refs/heads/master")
	data, err := f.store.Get(ctx, refKey)
	if err != nil {
		return nil, repoerr.Storage(err)
	}

	text := strings.TrimRight(string(data), "\n")
	sha, err := binary.ParseSHA1Hex(text)
	if err != nil {
		return nil, repoerr.MalformedData(err)
	}

	obj, err := f.TreePackset.Load(ctx, sha)
	if err != nil {
		return nil, err
	}

	plain, err := f.decrypter.DecryptObject(obj.Content)
	if err != nil {
		return nil, repoerr.Crypto(err)
	}

	return record.ParseCommit(plain)
}

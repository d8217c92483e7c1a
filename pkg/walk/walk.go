package walk

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/cuemby/snapvault/pkg/binary"
	"github.com/cuemby/snapvault/pkg/crypto"
	"github.com/cuemby/snapvault/pkg/packset"
	"github.com/cuemby/snapvault/pkg/record"
	"github.com/cuemby/snapvault/pkg/repoerr"
	"github.com/cuemby/snapvault/pkg/throttle"
)

// FileEntry is one leaf emitted by a walk: a file's path (components
// joined by "/", relative to the commit root) and its recorded size.
type FileEntry struct {
	Path string
	Size uint64
}

// worklistEntry is one pending directory: the blob fragments that
// concatenate to its tree-record bytes, its path, and how those
// fragments are compressed.
type worklistEntry struct {
	blobKeys        []record.BlobKey
	path            string
	compressionType binary.CompressionType
}

// Walker resolves a commit's tree graph against a single packset,
// decrypting fragments with decrypter.
type Walker struct {
	packset   *packset.Packset
	decrypter crypto.ObjectDecrypter
}

// New returns a Walker reading tree and file blobs from ps, decrypting
// them with decrypter.
func New(ps *packset.Packset, decrypter crypto.ObjectDecrypter) *Walker {
	return &Walker{packset: ps, decrypter: decrypter}
}

// ListFiles walks commit's tree graph depth-first (subtrees visited in
// LIFO order from the worklist) and returns every file entry whose
// path matches pattern. An empty pattern matches everything. The
// filter is applied at the leaf: every subtree is enqueued regardless
// of pattern, since a directory's own name rarely matches a pattern
// that targets files beneath it.
func (w *Walker) ListFiles(ctx context.Context, commit *record.Commit, pattern string) ([]FileEntry, error) {
	rootKey := record.BlobKey{SHA: commit.TreeSHA, StretchKey: commit.ExpandKey}
	stack := []worklistEntry{{
		blobKeys:        []record.BlobKey{rootKey},
		path:            "",
		compressionType: commit.CompressionType,
	}}

	var out []FileEntry
	for len(stack) > 0 {
		n := len(stack) - 1
		entry := stack[n]
		stack = stack[:n]

		data, err := w.loadBlob(ctx, entry.blobKeys, entry.compressionType)
		if err != nil {
			return nil, err
		}
		tree, err := record.ParseTree(data)
		if err != nil {
			return nil, err
		}

		for _, node := range tree.Nodes {
			childPath := joinPath(entry.path, node.Name)
			if node.IsTree {
				stack = append(stack, worklistEntry{
					blobKeys:        node.DataBlobKeys,
					path:            childPath,
					compressionType: node.DataCompressionType,
				})
				continue
			}

			matched, err := matchesPattern(pattern, childPath)
			if err != nil {
				return nil, err
			}
			if matched {
				out = append(out, FileEntry{Path: childPath, Size: node.DataSize})
			}
		}
	}

	return out, nil
}

// loadBlob fetches every fragment named by blobKeys in parallel and
// unthrottled (the aggregate is typically small), decrypting and
// decompressing each fragment independently before concatenating them
// in key order. Fragments must be decompressed before concatenation:
// a multi-fragment LZ4 stream has no guarantee of continuing past its
// first frame once fragments are joined, unlike gzip's multistream
// concatenation.
func (w *Walker) loadBlob(ctx context.Context, blobKeys []record.BlobKey, ct binary.CompressionType) ([]byte, error) {
	tasks := make([]throttle.Task[[]byte], len(blobKeys))
	for i, bk := range blobKeys {
		bk := bk
		tasks[i] = func(ctx context.Context) ([]byte, error) {
			obj, err := w.packset.Load(ctx, bk.SHA)
			if err != nil {
				return nil, err
			}
			plain, err := w.decrypter.DecryptObject(obj.Content)
			if err != nil {
				return nil, repoerr.Crypto(err)
			}
			return decompress(plain, ct)
		}
	}

	fragments, err := throttle.JoinBounded(ctx, len(tasks), tasks)
	if err != nil {
		return nil, err
	}

	var combined []byte
	for _, frag := range fragments {
		combined = append(combined, frag...)
	}

	return combined, nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

func matchesPattern(pattern, path string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	matched, err := doublestar.Match(pattern, path)
	if err != nil {
		return false, repoerr.Input(err)
	}
	return matched, nil
}

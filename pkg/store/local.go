package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cuemby/snapvault/pkg/key"
)

// LocalDisk is a filesystem-backed Store, suitable for a local mirror
// of a repository or for test fixtures. It requires no code changes
// anywhere above pkg/store to swap in for a network-backed driver.
type LocalDisk struct {
	root string
}

// NewLocalDisk returns a Store rooted at root.
func NewLocalDisk(root string) *LocalDisk {
	return &LocalDisk{root: filepath.Clean(root)}
}

func (d *LocalDisk) resolve(k key.Key) string {
	return filepath.Join(d.root, filepath.FromSlash(k.String()))
}

// ListContents walks prefix on disk. Dirs yields immediate
// subdirectories as common prefixes (trailing "/" included, matching
// the object-storage convention); Files yields regular files found
// anywhere under prefix.
func (d *LocalDisk) ListContents(_ context.Context, prefix key.Key, flags ListFlags) ([]Object, error) {
	base := d.resolve(prefix)
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, NewError(ErrorUnknown, prefix.String(), err)
	}

	var out []Object
	for _, entry := range entries {
		childKey := prefix.Join(entry.Name())
		if entry.IsDir() {
			if flags.Has(Dirs) {
				out = append(out, Object{Key: key.New(childKey.String() + "/")})
			}
			if flags.Has(Files) {
				nested, err := d.ListContents(context.Background(), childKey, Files)
				if err != nil {
					return nil, err
				}
				out = append(out, nested...)
			}
			continue
		}
		if flags.Has(Files) {
			info, err := entry.Info()
			if err != nil {
				return nil, NewError(ErrorUnknown, childKey.String(), err)
			}
			out = append(out, Object{Key: childKey, Size: info.Size()})
		}
	}
	return out, nil
}

// Get reads the full content of the object at k.
func (d *LocalDisk) Get(_ context.Context, k key.Key) ([]byte, error) {
	data, err := os.ReadFile(d.resolve(k))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewError(ErrorNoSuchObject, k.String(), err)
		}
		if os.IsPermission(err) {
			return nil, NewError(ErrorAccessDenied, k.String(), err)
		}
		return nil, NewError(ErrorUnknown, k.String(), err)
	}
	return data, nil
}

// Put writes data to k, creating parent directories as needed. Not
// part of the Store interface: a convenience for building test
// fixtures against a LocalDisk root.
func (d *LocalDisk) Put(k key.Key, data []byte) error {
	path := d.resolve(k)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

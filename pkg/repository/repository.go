package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/cuemby/snapvault/pkg/crypto"
	"github.com/cuemby/snapvault/pkg/key"
	"github.com/cuemby/snapvault/pkg/repoerr"
	"github.com/cuemby/snapvault/pkg/store"
	"github.com/cuemby/snapvault/pkg/throttle"
)

// Repository is the entry point into a backup repository: a bucket
// root plus the passphrase needed to derive every computer's key
// material.
type Repository struct {
	root            key.Key
	store           store.Store
	passphrase      string
	packsetLoadHook func()
}

// New returns a Repository rooted at root, reading through st.
func New(root key.Key, st store.Store, passphrase string) *Repository {
	return &Repository{root: root, store: st, passphrase: passphrase}
}

// SetPacksetLoadHook registers fn to be called by every Packset this
// Repository goes on to construct (via GetComputer's Computers'
// Folders) once per successful object load.
// pkg/metrics.Collectors.RecordPackObjectLoaded is the expected
// caller; nil clears any existing hook.
func (r *Repository) SetPacksetLoadHook(fn func()) {
	r.packsetLoadHook = fn
}

// ListComputers lists every computer directory under the repository
// root, skipping entries whose key does not parse as a UUID and
// entries whose computerinfo could not be fetched or decoded — one
// bad computer does not fail the whole listing.
func (r *Repository) ListComputers(ctx context.Context) ([]ComputerInfo, error) {
	objects, err := r.store.ListContents(ctx, r.root, store.Dirs)
	if err != nil {
		return nil, repoerr.Storage(err)
	}

	var ids []string
	for _, o := range objects {
		raw := lastPathSegment(o.Key.String())
		parsed, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, formatUUID(parsed))
	}

	tasks := make([]throttle.Task[ComputerInfo], len(ids))
	for i, id := range ids {
		id := id
		tasks[i] = func(ctx context.Context) (ComputerInfo, error) {
			data, err := r.store.Get(ctx, r.root.Join(id).Join("computerinfo"))
			if err != nil {
				return ComputerInfo{}, repoerr.Storage(err)
			}
			return parseComputerInfo(id, data)
		}
	}

	return throttle.GatherTolerant(ctx, tasks, nil), nil
}

// GetComputer fetches a single computer by ID: its salt (used to
// derive the content decrypter), the fixed-salt bucket decrypter, and
// its computerinfo. Any failure here is fatal — the caller named this
// computer explicitly.
func (r *Repository) GetComputer(ctx context.Context, id string) (*Computer, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, repoerr.Input(err)
	}
	id = formatUUID(parsed)
	root := r.root.Join(id)

	salt, err := r.store.Get(ctx, root.Join("salt"))
	if err != nil {
		return nil, repoerr.Storage(err)
	}

	infoData, err := r.store.Get(ctx, root.Join("computerinfo"))
	if err != nil {
		return nil, repoerr.Storage(err)
	}
	info, err := parseComputerInfo(id, infoData)
	if err != nil {
		return nil, err
	}

	return &Computer{
		Info:             info,
		root:             root,
		store:            r.store,
		contentDecrypter: crypto.NewContentDecrypter(r.passphrase, salt),
		bucketDecrypter:  crypto.NewBucketDecrypter(r.passphrase),
		packsetLoadHook:  r.packsetLoadHook,
	}, nil
}

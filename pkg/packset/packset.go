package packset

import (
	"context"
	"strings"

	"github.com/cuemby/snapvault/pkg/binary"
	"github.com/cuemby/snapvault/pkg/key"
	"github.com/cuemby/snapvault/pkg/repoerr"
	"github.com/cuemby/snapvault/pkg/store"
	"github.com/cuemby/snapvault/pkg/throttle"
)

// indexFanoutConcurrency bounds how many .index files are fetched and
// parsed at once when a Packset is constructed.
const indexFanoutConcurrency = 5

// Packset maps content hashes to their location within a set of pack
// files rooted at a single key prefix, and serves individual objects
// by slicing the relevant pack file on demand.
type Packset struct {
	root           key.Key
	index          map[binary.SHA1]location
	store          store.Store
	onObjectLoaded func()
}

// SetObjectLoadedHook registers fn to be called once per successful
// Load. pkg/metrics.Collectors.RecordPackObjectLoaded is the expected
// caller; nil clears any existing hook.
func (p *Packset) SetObjectLoadedHook(fn func()) {
	p.onObjectLoaded = fn
}

// New lists every ".index" file under root, fetches and parses them
// with at most indexFanoutConcurrency in flight at once, and merges
// their entries into a single hash-to-location map. Duplicate hashes
// across index files are not deduplicated; the later entry (in listing
// order) wins.
func New(ctx context.Context, root key.Key, st store.Store) (*Packset, error) {
	objects, err := st.ListContents(ctx, root, store.Files)
	if err != nil {
		return nil, repoerr.Storage(err)
	}

	var indexKeys []key.Key
	for _, o := range objects {
		if strings.HasSuffix(o.Key.String(), ".index") {
			indexKeys = append(indexKeys, o.Key)
		}
	}

	tasks := make([]throttle.Task[[]indexEntry], len(indexKeys))
	for i, k := range indexKeys {
		k := k
		tasks[i] = func(ctx context.Context) ([]indexEntry, error) {
			data, err := st.Get(ctx, k)
			if err != nil {
				return nil, repoerr.Storage(err)
			}
			packID, err := packIDFromKey(k.String())
			if err != nil {
				return nil, err
			}
			entries, err := parseIndex(data)
			if err != nil {
				return nil, err
			}
			for i := range entries {
				entries[i].Location.PackID = packID
			}
			return entries, nil
		}
	}

	results, err := throttle.JoinBounded(ctx, indexFanoutConcurrency, tasks)
	if err != nil {
		return nil, err
	}

	index := make(map[binary.SHA1]location)
	for _, entries := range results {
		for _, e := range entries {
			index[e.SHA] = e.Location
		}
	}

	return &Packset{root: root, index: index, store: st}, nil
}

// Load fetches and parses the PackedObject stored under sha.
func (p *Packset) Load(ctx context.Context, sha binary.SHA1) (PackedObject, error) {
	loc, ok := p.index[sha]
	if !ok {
		return PackedObject{}, repoerr.MalformedData(errUnknownHash)
	}

	packKey := p.root.Join(loc.PackID.String() + ".pack")
	data, err := p.store.Get(ctx, packKey)
	if err != nil {
		return PackedObject{}, repoerr.Storage(err)
	}

	start := int(loc.Offset)
	if start > len(data) {
		return PackedObject{}, repoerr.MalformedData(errUnknownHash)
	}

	obj, err := parsePackedObject(data[start:])
	if err != nil {
		return PackedObject{}, err
	}
	if p.onObjectLoaded != nil {
		p.onObjectLoaded()
	}
	return obj, nil
}

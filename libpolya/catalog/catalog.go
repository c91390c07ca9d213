package catalog

import (
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/polyasystems/gopolya/gopolya"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState

	gGroupKeyPrefix, SolidID, NUL, ElementKind (byte) => GroupRecord

Groups are immutable once built, so an entry is written once and never updated.

***/

const (
	kMajorVers = 2024
	kMinorVers = 1
)

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
	gGroupKeyPrefix  = byte(0x01)
)

// catalog is a badger db wrapper holding built rotation groups.
type catalog struct {
	mu         sync.Mutex
	ctx        gopolya.CatalogContext
	readOnly   bool
	stateDirty bool
	state      CatalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) a group catalog and attaches it to the given context.
func OpenCatalog(ctx gopolya.CatalogContext, opts gopolya.CatalogOpts) (gopolya.GroupCatalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(gopolya.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, we consider the catalog ctx blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
	}

	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Wrapf(gopolya.ErrBadCatalogParam, "catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.V(2).Infof("opened group catalog %q holding %d groups", opts.DbPathName, cat.state.NumGroups)
	return cat, nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

// NumGroups returns the number of groups stored in this catalog.
func (cat *catalog) NumGroups() int {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int(cat.state.NumGroups)
}

func formGroupKey(key []byte, gk gopolya.GroupKey) []byte {
	key = append(key, gGroupKeyPrefix)
	key = append(key, gk.Solid...)
	key = append(key, 0, byte(gk.Kind))
	return key
}

// errClosed is returned by calls made after Close (which may run from the catalog context).
func errClosed(gk gopolya.GroupKey) error {
	return errors.Wrapf(gopolya.ErrBadCatalogParam, "%v: catalog is closed", gk)
}

func (cat *catalog) LoadGroup(gk gopolya.GroupKey) ([]gopolya.Perm, error) {
	var keyBuf [128]byte
	key := formGroupKey(keyBuf[:0], gk)

	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return nil, errClosed(gk)
	}

	var rec GroupRecord
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, &rec)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(gopolya.ErrBadGroupRecord, "%v: %v", gk, err)
	}
	if rec.Solid != string(gk.Solid) || rec.Kind != int32(gk.Kind) {
		return nil, errors.Wrapf(gopolya.ErrBadGroupRecord, "record for %s/%d found under %v", rec.Solid, rec.Kind, gk)
	}
	return rec.Perms()
}

func (cat *catalog) StoreGroup(gk gopolya.GroupKey, G gopolya.PermutationGroup) error {
	if cat.readOnly {
		return errors.Wrap(gopolya.ErrBadCatalogParam, "catalog is read-only")
	}

	var keyBuf [128]byte
	key := formGroupKey(keyBuf[:0], gk)

	val, err := proto.Marshal(NewGroupRecord(gk, G))
	if err != nil {
		return err
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return errClosed(gk)
	}

	added := false
	err = cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key, val)
	})
	if err != nil {
		return err
	}

	if added {
		cat.state.NumGroups++
		cat.stateDirty = true
		klog.V(2).Infof("stored %v (order %d)", gk, G.Order())
	}
	return nil
}

func (cat *catalog) loadState() error {
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return proto.Unmarshal(val, &cat.state)
			})
		}
		return err
	})
	return err
}

func (cat *catalog) flushState() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if !cat.stateDirty || cat.db == nil {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		stateBuf, err := proto.Marshal(&cat.state)
		if err != nil {
			return err
		}
		return txn.Set(gCatalogStateKey, stateBuf)
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

func (cat *catalog) Close() error {
	err := cat.flushState()
	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db != nil {
		cat.db.Close()
		cat.db = nil
		cat.ctx.DetachCatalog(cat)
	}
	return err
}

package libpolya

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/polyasystems/gopolya/gopolya"
)

// CanonicSet allows adding colorings and returning if an equivalent coloring (under a group) has already been added.
type CanonicSet interface {
	gopolya.ColoringAdder

	// Len returns the number of distinct orbits added so far.
	Len() int

	// Err returns the first storage error encountered.  Once set, TryAddColoring adds nothing more.
	Err() error

	// Close removes all previously added items from this set and clears any error.
	//
	// If you make subsequent calls to TryAddColoring(), be sure you call Close() when you're done.
	Close()
}

// NewCanonicSet returns a CanonicSet that keys each coloring by its canonical form under G.
func NewCanonicSet(G gopolya.PermutationGroup) CanonicSet {
	return &canonicSet{
		group: G,
	}
}

// canonicSet holds canonical forms in an in-memory badger db.
type canonicSet struct {
	db    *badger.DB
	group gopolya.PermutationGroup
	count int
	err   error
}

func (set *canonicSet) TryAddColoring(c gopolya.Coloring) bool {
	if set.err != nil {
		return false
	}
	added, err := set.tryAdd(Canonize(c, set.group))
	if err != nil {
		set.err = errors.Wrap(err, "canonic set")
		return false
	}
	if added {
		set.count++
	}
	return added
}

func (set *canonicSet) Len() int {
	return set.count
}

func (set *canonicSet) Err() error {
	return set.err
}

func (set *canonicSet) tryAdd(key []byte) (bool, error) {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		if set.db, err = badger.Open(dbOpts); err != nil {
			return false, err
		}
	}

	added := false
	err := set.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		switch err {
		case nil:
			return nil
		case badger.ErrKeyNotFound:
			added = true
			return txn.Set(key, nil)
		}
		return err
	})
	return added && err == nil, err
}

func (set *canonicSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
	set.count = 0
	set.err = nil
}

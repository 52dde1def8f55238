package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/accrual/errors"
)

// mergeIterator combines items cached in a btree with the content of the
// parent store. Cached items take precedence over the parent ones with the
// same key, and deleted items hide them.
//
// Cached items must be ordered in the same direction as the parent iterator.
type mergeIterator struct {
	cache   []btree.Item
	parent  Iterator
	reverse bool

	// Lookahead of the parent iterator. perr is set once the parent is
	// exhausted or failed.
	pkey, pvalue []byte
	perr         error
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cache []btree.Item, parent Iterator, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{
		cache:   cache,
		parent:  parent,
		reverse: reverse,
	}
	it.advanceParent()
	if it.perr != nil && !errors.ErrIteratorDone.Is(it.perr) {
		parent.Release()
		return nil, it.perr
	}
	return it, nil
}

func (it *mergeIterator) advanceParent() {
	it.pkey, it.pvalue, it.perr = it.parent.Next()
}

// Next returns the next key-value pair, in the order of iteration.
func (it *mergeIterator) Next() (key, value []byte, err error) {
	for {
		parentDone := false
		if it.perr != nil {
			if !errors.ErrIteratorDone.Is(it.perr) {
				return nil, nil, it.perr
			}
			parentDone = true
		}

		if len(it.cache) == 0 {
			if parentDone {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
			}
			key, value = it.pkey, it.pvalue
			it.advanceParent()
			return key, value, nil
		}

		item := it.cache[0]
		if !parentDone {
			cmp := bytes.Compare(it.pkey, item.(keyer).Key())
			if it.reverse {
				cmp = -cmp
			}
			if cmp < 0 {
				key, value = it.pkey, it.pvalue
				it.advanceParent()
				return key, value, nil
			}
			if cmp == 0 {
				// Overwritten or deleted in the cache.
				it.advanceParent()
			}
		}

		it.cache = it.cache[1:]
		switch t := item.(type) {
		case setItem:
			return t.key, t.value, nil
		case deletedItem:
			continue
		default:
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", t)
		}
	}
}

// Release releases the parent iterator. Cached items are copied when the
// iterator is created, so writing to the cache after this call is safe.
func (it *mergeIterator) Release() {
	it.cache = nil
	it.parent.Release()
}

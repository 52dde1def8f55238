package orm

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
)

var isBucketName = regexp.MustCompile(`^[_a-z][a-z0-9_]{1,20}$`).MatchString

// ModelBucket stores models of a single type under a common prefix.
type ModelBucket struct {
	prefix []byte
}

// NewModelBucket returns a bucket storing all entities under "<name>:"
// prefix. Invalid name causes a panic.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return ModelBucket{
		prefix: []byte(name + ":"),
	}
}

// DBKey returns the full key under which an entity is stored.
func (b ModelBucket) DBKey(key []byte) []byte {
	res := make([]byte, 0, len(b.prefix)+len(key))
	res = append(res, b.prefix...)
	return append(res, key...)
}

// One query the database for a single model instance. Result is loaded into
// given destination model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (b ModelBucket) One(db accrual.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "get")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T %X not in the store", dest, key)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

// Has returns true if an entity with given key exists.
func (b ModelBucket) Has(db accrual.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(err, "has")
	}
	return ok, nil
}

// Put validates and saves given model in the database.
func (b ModelBucket) Put(db accrual.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db accrual.KVStore, key []byte) error {
	ok, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%X", key)
	}
	return db.Delete(b.DBKey(key))
}

// Iterate returns an iterator over all entities of this bucket, in key order.
func (b ModelBucket) Iterate(db accrual.ReadOnlyKVStore) (*ModelIterator, error) {
	it, err := db.Iterator(b.prefix, prefixEnd(b.prefix))
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	return &ModelIterator{it: it, prefix: len(b.prefix)}, nil
}

// prefixEnd returns the smallest key that is greater than all keys starting
// with given prefix.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// ModelIterator loads bucket entities one by one.
type ModelIterator struct {
	it     accrual.Iterator
	prefix int
}

// LoadNext loads the next entity into given destination and returns its key,
// without the bucket prefix. ErrIteratorDone is returned when there are no
// more entities.
func (m *ModelIterator) LoadNext(dest Model) ([]byte, error) {
	key, raw, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return key[m.prefix:], nil
}

// Release releases the underlying store iterator.
func (m *ModelIterator) Release() {
	m.it.Release()
}

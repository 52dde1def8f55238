package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/weavetest/assert"
)

// TestSuite runs the same set of checks against any CacheableKVStore
// implementation. It is shared by the in-memory store tests and the iavl
// adapter tests.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a new, empty store and a function that
// releases all resources held by it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet ensures that cache wraps see the data of their parent, hide their
// own changes until written and drop them when discarded.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("acct:alice"), []byte("100")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	k2, v2 := []byte("acct:bob"), []byte("7")
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	k3, v3 := []byte("acct:carol"), []byte("1")
	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set(k3, v3))
	assert.Nil(t, discarded.Delete(k))
	discarded.Discard()
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k3, nil, false)

	written := base.CacheWrap()
	assert.Nil(t, written.Delete(k))
	assert.Nil(t, written.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// CacheConflicts checks that overwriting and deleting parent values is
// visible only in the child until written.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := randKeys(4, 16)
	vs := randKeys(8, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[5]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			parentQueries: []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			childQueries:  []Model{Pair(ks[1], vs[5]), Pair(ks[2], nil), Pair(ks[3], vs[7])},
		},
		"delete then set again": {
			parentOps:     []Op{SetOp(ks[0], vs[0])},
			childOps:      []Op{DelOp(ks[0]), SetOp(ks[0], vs[3])},
			parentQueries: []Model{Pair(ks[0], vs[0])},
			childQueries:  []Model{Pair(ks[0], vs[3])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			assert.Nil(t, child.Write())
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// Iterate checks ranges in both directions over a child cache that
// overwrites and deletes data of its parent.
func (s *TestSuite) Iterate(t *testing.T) {
	const size = 30

	toSet := randModels(size, 8, 20)
	toDel := randModels(10, 8, 20)
	expect := sortModels(toSet)

	parentSet := randModels(size, 8, 20)
	all := sortModels(append(append([]Model{}, toSet...), parentSet...))

	ms := randModels(4, 12, 20)
	a, a2, b, c := ms[0], ms[1], ms[2], ms[3]
	a2.Key = a.Key
	overwritten := sortModels([]Model{a2, b, c})

	cases := map[string]iterCase{
		"child only": {
			child: append(makeSetOps(toSet...), makeDelOps(toDel...)...),
			queries: []rangeQuery{
				{nil, nil, false, expect},
				{expect[10].Key, nil, false, expect[10:]},
				{nil, expect[size-8].Key, false, expect[:size-8]},
				{expect[7].Key, expect[18].Key, false, expect[7:18]},
				{nil, nil, true, reverse(expect)},
				{expect[14].Key, nil, true, reverse(expect[14:])},
				{nil, expect[9].Key, true, reverse(expect[:9])},
				{expect[6].Key, expect[26].Key, true, reverse(expect[6:26])},
			},
		},
		"child and parent": {
			pre:   makeSetOps(parentSet...),
			child: makeSetOps(toSet...),
			queries: []rangeQuery{
				{nil, nil, false, all},
				{all[17].Key, all[48].Key, false, all[17:48]},
				{nil, nil, true, reverse(all)},
				{all[6].Key, all[36].Key, true, reverse(all[6:36])},
			},
		},
		"child overwrites parent": {
			pre:   makeSetOps(a, b),
			child: makeSetOps(a2, c),
			queries: []rangeQuery{
				{nil, nil, false, overwritten},
				{nil, nil, true, reverse(overwritten)},
			},
		},
		"child deletes everything but one": {
			pre:   makeSetOps(a, b, c),
			child: makeDelOps(a, b),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, c.Key, false, nil},
				{nil, nil, true, []Model{c}},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	if !bytes.Equal(val, got) {
		t.Fatalf("want %X value, got %X", val, got)
	}
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func (i iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()

	for _, op := range i.pre {
		assert.Nil(t, op.Apply(base))
	}
	child := base.CacheWrap()
	for _, op := range i.child {
		assert.Nil(t, op.Apply(child))
	}

	for qi, q := range i.queries {
		var (
			iter Iterator
			err  error
		)
		if q.reverse {
			iter, err = child.ReverseIterator(q.start, q.end)
		} else {
			iter, err = child.Iterator(q.start, q.end)
		}
		assert.Nil(t, err)

		for n, want := range q.expected {
			key, value, err := iter.Next()
			assert.Nil(t, err)
			if !bytes.Equal(want.Key, key) || !bytes.Equal(want.Value, value) {
				t.Fatalf("query %d, item %d: want %X=%X, got %X=%X", qi, n, want.Key, want.Value, key, value)
			}
		}
		if _, _, err := iter.Next(); !errors.ErrIteratorDone.Is(err) {
			t.Fatalf("query %d: want ErrIteratorDone, got %+v", qi, err)
		}
		iter.Release()
	}
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

// sortModels returns a copy of the models sorted by key
func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}

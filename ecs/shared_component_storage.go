package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// sharedStorage pools distinct values of T. Each slot points at one pool
// entry; entries are reference counted and recycled once no slot uses them.
type sharedStorage[T comparable] struct {
	pool   []T
	refs   []int
	free   []int
	sparse *intmap.Map[uint32, int]
}

func newSharedStorage[T comparable](capacity int) *sharedStorage[T] {
	return &sharedStorage[T]{
		sparse: intmap.New[uint32, int](capacity),
	}
}

func (cs *sharedStorage[T]) Type() reflect.Type  { return TypeOf[T]() }
func (cs *sharedStorage[T]) Kind() ComponentKind { return Shared }

// intern returns the pool index holding v, allocating an entry if needed.
func (cs *sharedStorage[T]) intern(v T) int {
	for i := range cs.pool {
		if cs.refs[i] > 0 && cs.pool[i] == v {
			return i
		}
	}

	if n := len(cs.free); n > 0 {
		idx := cs.free[n-1]
		cs.free = cs.free[:n-1]
		cs.pool[idx] = v
		return idx
	}

	cs.pool = append(cs.pool, v)
	cs.refs = append(cs.refs, 0)
	return len(cs.pool) - 1
}

func (cs *sharedStorage[T]) attach(slot uint32, idx int) {
	cs.sparse.Put(slot, idx)
	cs.refs[idx]++
}

func (cs *sharedStorage[T]) detach(slot uint32) bool {
	idx, ok := cs.sparse.Get(slot)
	if !ok {
		return false
	}
	cs.sparse.Del(slot)
	cs.refs[idx]--
	if cs.refs[idx] == 0 {
		var zero T
		cs.pool[idx] = zero
		cs.free = append(cs.free, idx)
	}
	return true
}

// Add points slot at the pooled zero value.
func (cs *sharedStorage[T]) Add(slot uint32) any {
	if p := cs.pointer(slot); p != nil {
		return p
	}
	var zero T
	idx := cs.intern(zero)
	cs.attach(slot, idx)
	return &cs.pool[idx]
}

// Set re-points slot at the pool entry equal to item.
func (cs *sharedStorage[T]) Set(slot uint32, item any) bool {
	var v T
	if ptr, ok := item.(*T); ok {
		v = *ptr
	} else if val, ok := item.(T); ok {
		v = val
	} else {
		return false
	}

	idx := cs.intern(v)
	if cur, ok := cs.sparse.Get(slot); ok {
		if cur == idx {
			return true
		}
		cs.detach(slot)
	}
	cs.attach(slot, idx)
	return true
}

func (cs *sharedStorage[T]) Remove(slot uint32) bool {
	return cs.detach(slot)
}

func (cs *sharedStorage[T]) Has(slot uint32) bool {
	_, ok := cs.sparse.Get(slot)
	return ok
}

func (cs *sharedStorage[T]) Get(slot uint32) any {
	if p := cs.pointer(slot); p != nil {
		return p
	}
	return nil
}

func (cs *sharedStorage[T]) pointer(slot uint32) *T {
	idx, ok := cs.sparse.Get(slot)
	if !ok {
		return nil
	}
	return &cs.pool[idx]
}

// Len returns the number of slots referencing a pooled value.
func (cs *sharedStorage[T]) Len() int {
	return cs.sparse.Len()
}

// Distinct returns the number of pooled values currently referenced.
func (cs *sharedStorage[T]) Distinct() int {
	n := 0
	for _, r := range cs.refs {
		if r > 0 {
			n++
		}
	}
	return n
}

func (cs *sharedStorage[T]) Clear() {
	cs.pool = nil
	cs.refs = nil
	cs.free = nil
	cs.sparse.Clear()
}

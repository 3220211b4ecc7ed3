package ecs

import (
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
)

// EntityQuery is the set of entities a System operates over.
//
// Explicit members are kept in insertion order and never duplicated.
// Members are not removed when their entity is destroyed; ForEach skips
// dead ids instead, and Compact drops them. A query made Live additionally
// visits every live entity that owns all required component types.
type EntityQuery struct {
	storage  *Storage
	members  []EntityId
	index    *intmap.Map[EntityId, struct{}]
	required []reflect.Type
	live     bool
}

// NewEntityQuery snapshots initial into a new query.
func NewEntityQuery(storage *Storage, initial ...EntityId) *EntityQuery {
	q := &EntityQuery{
		storage: storage,
		members: make([]EntityId, 0, len(initial)),
		index:   intmap.New[EntityId, struct{}](len(initial)),
	}
	q.AddEntity(initial...)
	return q
}

// NewLiveQuery creates a query that matches every live entity owning all of types.
func NewLiveQuery(storage *Storage, types ...reflect.Type) *EntityQuery {
	return NewEntityQuery(storage).WithAll(types...).Live()
}

// AddEntity appends ids to the query. Ids already present are ignored.
func (q *EntityQuery) AddEntity(ids ...EntityId) {
	for _, id := range ids {
		if _, ok := q.index.Get(id); ok {
			continue
		}
		q.index.Put(id, struct{}{})
		q.members = append(q.members, id)
	}
}

// WithAll restricts the query to entities owning every type in types.
func (q *EntityQuery) WithAll(types ...reflect.Type) *EntityQuery {
	for _, t := range types {
		if !slices.Contains(q.required, t) {
			q.required = append(q.required, t)
		}
	}
	return q
}

// Live makes ForEach also visit non-member live entities matching the required types.
func (q *EntityQuery) Live() *EntityQuery {
	q.live = true
	return q
}

// IsLive reports whether the query is recomputed on every pass.
func (q *EntityQuery) IsLive() bool {
	return q.live
}

// Required returns the component types an entity must own to be visited.
func (q *EntityQuery) Required() []reflect.Type {
	return slices.Clone(q.required)
}

// ForEach calls fn for each matching entity: explicit members first, in
// insertion order, then (for live queries) the remaining matches in slot order.
// Entities added or destroyed by fn do not disturb the current pass.
func (q *EntityQuery) ForEach(fn func(EntityId)) {
	members := slices.Clone(q.members)
	for _, id := range members {
		if q.matches(id) {
			fn(id)
		}
	}

	if !q.live {
		return
	}
	for id := range q.storage.AllEntities() {
		if _, member := q.index.Get(id); member {
			continue
		}
		if q.matches(id) {
			fn(id)
		}
	}
}

func (q *EntityQuery) matches(id EntityId) bool {
	if !q.storage.IsAlive(id) {
		return false
	}
	return q.storage.HasAll(id, q.required)
}

// Count returns the number of entities ForEach would visit right now.
func (q *EntityQuery) Count() int {
	n := 0
	q.ForEach(func(EntityId) { n++ })
	return n
}

// Len returns the number of explicit members, dead or alive.
func (q *EntityQuery) Len() int {
	return len(q.members)
}

// Contains reports whether id is an explicit member.
func (q *EntityQuery) Contains(id EntityId) bool {
	_, ok := q.index.Get(id)
	return ok
}

// Entities returns a copy of the explicit members in insertion order.
func (q *EntityQuery) Entities() []EntityId {
	return slices.Clone(q.members)
}

// Compact drops members whose entities are no longer alive.
func (q *EntityQuery) Compact() int {
	before := len(q.members)
	q.members = slices.DeleteFunc(q.members, func(id EntityId) bool {
		if q.storage.IsAlive(id) {
			return false
		}
		q.index.Del(id)
		return true
	})
	return before - len(q.members)
}

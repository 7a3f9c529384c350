// Package cache implements the live-cache pool (spec.md §4.6): bounded,
// insertion-ordered per-area buckets of transient artifacts (signs, blood
// messages, bloodstains, ghosts) with random/recent sampling.
//
// A Pool is exclusive to one shard's cooperative event loop (spec.md §5
// "the shard's in-memory caches are exclusive to the shard and accessed
// only by its loop"), so unlike the teacher's concurrent world regions it
// carries no internal locking.
package cache

import (
	"math/rand/v2"
)

// AreaKey identifies one pool bucket: an area, optionally further split by
// a sub-grid cell for variants that use one (spec.md §4.6).
type AreaKey struct {
	AreaID uint32
	CellID uint32 // 0 when the variant has no cell sub-grid
}

type entry[T any] struct {
	id    uint32
	value T
}

type bucket[T any] struct {
	order []entry[T] // oldest first
	index map[uint32]int
}

// Pool is a generic bounded per-area cache. T is the artifact payload type
// (e.g. a BloodMessage, Bloodstain, or SummonSign).
type Pool[T any] struct {
	maxEntriesPerArea int
	areas             map[AreaKey]*bucket[T]
}

// New creates a Pool capping each area bucket at maxEntriesPerArea.
func New[T any](maxEntriesPerArea int) *Pool[T] {
	return &Pool[T]{
		maxEntriesPerArea: maxEntriesPerArea,
		areas:             make(map[AreaKey]*bucket[T]),
	}
}

func (p *Pool[T]) bucketFor(area AreaKey) *bucket[T] {
	b, ok := p.areas[area]
	if !ok {
		b = &bucket[T]{index: make(map[uint32]int)}
		p.areas[area] = b
	}
	return b
}

// Add inserts value at the newest end of area's bucket, evicting the
// oldest entry first if the bucket is already at capacity (spec.md §4.6).
// Re-adding an existing id replaces its value without changing order.
func (p *Pool[T]) Add(area AreaKey, id uint32, value T) {
	b := p.bucketFor(area)

	if i, ok := b.index[id]; ok {
		b.order[i].value = value
		return
	}

	if p.maxEntriesPerArea > 0 && len(b.order) >= p.maxEntriesPerArea {
		p.evictOldest(area, b)
	}

	b.index[id] = len(b.order)
	b.order = append(b.order, entry[T]{id: id, value: value})
}

func (p *Pool[T]) evictOldest(area AreaKey, b *bucket[T]) {
	oldest := b.order[0]
	p.removeFromBucket(b, oldest.id)
}

// Find returns the value stored for id in area, if present.
func (p *Pool[T]) Find(area AreaKey, id uint32) (T, bool) {
	var zero T
	b, ok := p.areas[area]
	if !ok {
		return zero, false
	}
	i, ok := b.index[id]
	if !ok {
		return zero, false
	}
	return b.order[i].value, true
}

// Contains reports whether id is present in area's bucket.
func (p *Pool[T]) Contains(area AreaKey, id uint32) bool {
	_, ok := p.Find(area, id)
	return ok
}

// Remove deletes id from area's bucket, if present.
func (p *Pool[T]) Remove(area AreaKey, id uint32) {
	b, ok := p.areas[area]
	if !ok {
		return
	}
	p.removeFromBucket(b, id)
}

func (p *Pool[T]) removeFromBucket(b *bucket[T], id uint32) {
	i, ok := b.index[id]
	if !ok {
		return
	}
	b.order = append(b.order[:i], b.order[i+1:]...)
	delete(b.index, id)
	for j := i; j < len(b.order); j++ {
		b.index[b.order[j].id] = j
	}
}

// RandomSet returns a uniform sample of up to n entries in area matching
// filter (nil filter matches everything).
func (p *Pool[T]) RandomSet(area AreaKey, n int, filter func(T) bool) []T {
	matching := p.matching(area, filter)
	rand.Shuffle(len(matching), func(i, j int) { matching[i], matching[j] = matching[j], matching[i] })
	return capTo(matching, n)
}

// RecentSet returns up to n entries in area matching filter, newest first.
func (p *Pool[T]) RecentSet(area AreaKey, n int, filter func(T) bool) []T {
	b, ok := p.areas[area]
	if !ok {
		return nil
	}

	out := make([]T, 0, min(n, len(b.order)))
	for i := len(b.order) - 1; i >= 0 && len(out) < n; i-- {
		if filter == nil || filter(b.order[i].value) {
			out = append(out, b.order[i].value)
		}
	}
	return out
}

func (p *Pool[T]) matching(area AreaKey, filter func(T) bool) []T {
	b, ok := p.areas[area]
	if !ok {
		return nil
	}
	out := make([]T, 0, len(b.order))
	for _, e := range b.order {
		if filter == nil || filter(e.value) {
			out = append(out, e.value)
		}
	}
	return out
}

func capTo[T any](items []T, n int) []T {
	if n < len(items) {
		return items[:n]
	}
	return items
}

// TotalEntries returns the number of entries across every area.
func (p *Pool[T]) TotalEntries() int {
	total := 0
	for _, b := range p.areas {
		total += len(b.order)
	}
	return total
}

// EntriesInArea returns the number of entries in area's bucket.
func (p *Pool[T]) EntriesInArea(area AreaKey) int {
	b, ok := p.areas[area]
	if !ok {
		return 0
	}
	return len(b.order)
}

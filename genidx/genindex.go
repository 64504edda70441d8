// Package genidx issues stable generational handles for slots in
// externally-owned dense storage, such as the arrays backing an ECS.
// The allocator hands out (index, generation) pairs, recycles freed
// indices in FIFO order, and detects stale or double-freed handles by
// comparing generations. It never stores or touches slot payloads.
package genidx

import "fmt"

// Unsigned is the set of types usable as index or generation counters.
// It is deliberately a subset of intmap.IntKey so an index can key an
// intmap.Map directly.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// GenIndex identifies a logical slot at a specific point in its reuse
// history. Two handles are equal iff both index and generation match;
// a handle whose generation lags the slot's current one is stale.
type GenIndex[I, G Unsigned] struct {
	index      I
	generation G
}

// GenIndexFromParts constructs a handle from raw components. Handles
// built this way are not necessarily live; check with Allocator.IsLive.
func GenIndexFromParts[I, G Unsigned](index I, generation G) GenIndex[I, G] {
	return GenIndex[I, G]{index: index, generation: generation}
}

// Index returns the slot number the handle refers to.
func (gi GenIndex[I, G]) Index() I {
	return gi.index
}

// Generation returns the reuse counter the handle was issued under.
func (gi GenIndex[I, G]) Generation() G {
	return gi.generation
}

// String renders the handle for debugging purposes.
func (gi GenIndex[I, G]) String() string {
	return fmt.Sprintf("GenIndex(%d:%d)", gi.index, gi.generation)
}

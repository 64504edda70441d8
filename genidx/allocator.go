package genidx

import (
	"fmt"
	"sync"

	"github.com/kamstrup/intmap"
)

// slot is the allocator's per-index record: the generation of the
// handle that is (or was last) valid for the index, and whether the
// index currently sits on the free queue.
type slot[G Unsigned] struct {
	gen   G
	freed bool
}

// Allocator is the sole authority over index/generation bookkeeping.
// It is safe for concurrent use; every operation is one critical
// section under a single mutex, so no caller can observe a partially
// updated state.
//
// Index space only grows: freed indices are reused (oldest first)
// before a new index is minted, but index values are never reclaimed.
// Exhausting the index or generation counter is treated as fatal and
// panics rather than silently wrapping.
type Allocator[I, G Unsigned] struct {
	mu       sync.Mutex
	poisoned bool

	next  I                       // smallest index never yet issued
	slots *intmap.Map[I, slot[G]] // every index ever issued
	free  []I                     // freed indices, FIFO
}

// New creates an empty allocator. Index and generation types are chosen
// independently; they only need to be unsigned integers.
func New[I, G Unsigned]() *Allocator[I, G] {
	return &Allocator[I, G]{
		slots: intmap.New[I, slot[G]](256),
	}
}

// acquire takes the allocator lock, reporting false if the state was
// poisoned by a previous operation panicking mid-mutation.
func (a *Allocator[I, G]) acquire() bool {
	a.mu.Lock()
	if a.poisoned {
		a.mu.Unlock()
		return false
	}
	return true
}

// release unlocks the allocator. If the operation is unwinding from a
// panic the state may be inconsistent, so the allocator is poisoned
// before the panic continues; later calls see ErrLockFailure instead
// of corrupt state.
func (a *Allocator[I, G]) release() {
	if r := recover(); r != nil {
		a.poisoned = true
		a.mu.Unlock()
		panic(r)
	}
	a.mu.Unlock()
}

// Issue returns a handle that is live upon return. The oldest freed
// index is recycled first, with its generation incremented so handles
// to the previous occupant no longer match; only when the free queue
// is empty is a brand-new index minted at generation zero.
//
// Issue cannot fail. Counter wraparound means the index or generation
// space is exhausted and panics; a poisoned allocator also panics,
// since Issue has no error result to surface it through.
func (a *Allocator[I, G]) Issue() GenIndex[I, G] {
	if !a.acquire() {
		panic("genidx: Issue on poisoned allocator")
	}
	defer a.release()

	if len(a.free) > 0 {
		index := a.free[0]
		a.free = a.free[1:]

		s, _ := a.slots.Get(index)
		gen := s.gen + 1
		if gen == 0 {
			panic(fmt.Sprintf("genidx: generation counter exhausted for index %d", index))
		}
		a.slots.Put(index, slot[G]{gen: gen})
		return GenIndex[I, G]{index: index, generation: gen}
	}

	index := a.next
	a.next++
	if a.next == 0 {
		panic("genidx: index space exhausted")
	}
	a.slots.Put(index, slot[G]{})
	return GenIndex[I, G]{index: index}
}

// Delete retires a live handle, putting its index at the tail of the
// free queue. The slot's generation stays recorded; it is incremented
// when the index is reissued, not here, so stale handles to the slot
// keep failing the generation check.
//
// Delete reports ErrUnknownIndex for an index that was never issued,
// ErrAlreadyDeleted for a double-free, ErrStaleHandle for a generation
// mismatch, and ErrLockFailure on a poisoned allocator. None are
// retried internally.
func (a *Allocator[I, G]) Delete(h GenIndex[I, G]) error {
	if !a.acquire() {
		return fmt.Errorf("delete %v: %w", h, ErrLockFailure)
	}
	defer a.release()

	s, ok := a.slots.Get(h.index)
	if !ok {
		return fmt.Errorf("delete %v: %w", h, ErrUnknownIndex)
	}
	if s.freed {
		return fmt.Errorf("delete %v: %w", h, ErrAlreadyDeleted)
	}
	if s.gen != h.generation {
		return fmt.Errorf("delete %v: %w", h, ErrStaleHandle)
	}

	a.slots.Put(h.index, slot[G]{gen: s.gen, freed: true})
	a.free = append(a.free, h.index)
	return nil
}

// IsLive reports whether the handle is currently valid: its index has
// been issued, is not on the free queue, and the generations match.
// Read-only; a poisoned allocator vouches for nothing and reports false.
func (a *Allocator[I, G]) IsLive(h GenIndex[I, G]) bool {
	if !a.acquire() {
		return false
	}
	defer a.release()

	s, ok := a.slots.Get(h.index)
	return ok && !s.freed && s.gen == h.generation
}

// Live returns the number of currently live handles.
func (a *Allocator[I, G]) Live() int {
	if !a.acquire() {
		return 0
	}
	defer a.release()
	return a.slots.Len() - len(a.free)
}

// Freed returns the number of indices waiting on the free queue.
func (a *Allocator[I, G]) Freed() int {
	if !a.acquire() {
		return 0
	}
	defer a.release()
	return len(a.free)
}

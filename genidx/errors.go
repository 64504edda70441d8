package genidx

import "errors"

// Delete failures. All are sentinel values; match with errors.Is.
var (
	// ErrUnknownIndex reports a delete for an index that was never issued.
	ErrUnknownIndex = errors.New("genidx: unknown index")

	// ErrAlreadyDeleted reports a double-free: the index is already on
	// the free queue.
	ErrAlreadyDeleted = errors.New("genidx: already deleted")

	// ErrStaleHandle reports a handle whose generation no longer matches
	// the slot's current generation.
	ErrStaleHandle = errors.New("genidx: stale handle")

	// ErrLockFailure reports that the allocator state can no longer be
	// trusted because an earlier operation panicked mid-mutation.
	ErrLockFailure = errors.New("genidx: allocator poisoned")
)

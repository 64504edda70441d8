package genidx_test

import (
	"fmt"

	"github.com/plus3/genidx/genidx"
)

// ExampleAllocator demonstrates the handle lifecycle: fresh indices are
// minted in order, and a deleted index is recycled with its generation
// incremented so handles to the old occupant stop matching.
func ExampleAllocator() {
	alloc := genidx.New[uint64, uint64]()

	first := alloc.Issue()
	second := alloc.Issue()
	fmt.Println(first, second)

	if err := alloc.Delete(first); err != nil {
		fmt.Println(err)
	}
	fmt.Println(alloc.IsLive(first))

	recycled := alloc.Issue()
	fmt.Println(recycled)

	// Output:
	// GenIndex(0:0) GenIndex(1:0)
	// false
	// GenIndex(0:1)
}

// ExampleAllocator_Delete shows the failure taxonomy: double-frees,
// never-issued indices, and stale generations are each reported
// distinctly and never mutate allocator state.
func ExampleAllocator_Delete() {
	alloc := genidx.New[uint32, uint32]()

	h := alloc.Issue()
	fmt.Println(alloc.Delete(h))
	fmt.Println(alloc.Delete(h))
	fmt.Println(alloc.Delete(genidx.GenIndexFromParts[uint32, uint32](9, 0)))

	recycled := alloc.Issue()
	forged := genidx.GenIndexFromParts(recycled.Index(), recycled.Generation()+1)
	fmt.Println(alloc.Delete(forged))

	// Output:
	// <nil>
	// delete GenIndex(0:0): genidx: already deleted
	// delete GenIndex(9:0): genidx: unknown index
	// delete GenIndex(0:2): genidx: stale handle
}

package genidx_test

import (
	"testing"

	"github.com/plus3/genidx/genidx"
)

func BenchmarkIssueMint(b *testing.B) {
	alloc := genidx.New[uint64, uint64]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		alloc.Issue()
	}
}

func BenchmarkIssueRecycle(b *testing.B) {
	alloc := genidx.New[uint64, uint64]()
	h := alloc.Issue()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = alloc.Delete(h)
		h = alloc.Issue()
	}
}

func BenchmarkDelete(b *testing.B) {
	alloc := genidx.New[uint64, uint64]()

	handles := make([]genidx.GenIndex[uint64, uint64], b.N)
	for i := 0; i < b.N; i++ {
		handles[i] = alloc.Issue()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = alloc.Delete(handles[i])
	}
}

func BenchmarkIsLive(b *testing.B) {
	alloc := genidx.New[uint64, uint64]()
	h := alloc.Issue()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = alloc.IsLive(h)
	}
}

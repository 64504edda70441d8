package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/genidx/genidx"
)

type workerStats struct {
	issues   int64
	deletes  int64
	failures int64
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the churn should run for.")
	workers := flag.Int("workers", 8, "The number of goroutines hammering the allocator.")
	targetLive := flag.Int("live", 1024, "The number of live handles each worker maintains.")
	profMode := flag.String("profile", "", "Write a profile to the working directory: cpu or mem.")
	flag.Parse()

	switch *profMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		log.Fatalf("unknown profile mode %q (want cpu or mem)", *profMode)
	}

	log.Println("Starting allocator stress test...")

	// 1. One shared allocator, many workers
	alloc := genidx.New[uint64, uint64]()

	report := &Report{
		Duration:   *duration,
		Workers:    *workers,
		TargetLive: *targetLive,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	// 2. Run the churn loop on every worker
	log.Printf("Running %d workers for %s...\n", *workers, *duration)
	startTime := time.Now()

	stats := make([]workerStats, *workers)
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(st *workerStats) {
			defer wg.Done()
			churn(ctx, alloc, *targetLive, st)
		}(&stats[w])
	}
	wg.Wait()

	report.TotalTime = time.Since(startTime)
	for _, st := range stats {
		report.Issues += st.issues
		report.Deletes += st.deletes
		report.Failures += st.failures
	}
	report.LiveAtEnd = alloc.Live()
	report.FreedAtEnd = alloc.Freed()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Churn finished.")

	// 3. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if report.Failures > 0 {
		log.Fatalf("%d handle contract violations detected", report.Failures)
	}
	if report.LiveAtEnd != 0 {
		log.Fatalf("%d handles still live after drain", report.LiveAtEnd)
	}
	log.Println("Stress test complete.")
}

// churn keeps roughly targetLive handles alive, issuing and deleting at
// random. Every handle is checked against the allocator contract as it
// goes: issued handles must be live, deleted handles must be dead, and
// a deliberate double-free must report ErrAlreadyDeleted.
func churn(ctx context.Context, alloc *genidx.Allocator[uint64, uint64], targetLive int, st *workerStats) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	local := make([]genidx.GenIndex[uint64, uint64], 0, targetLive)

	for {
		select {
		case <-ctx.Done():
			// Drain: everything this worker still holds must delete cleanly.
			for _, h := range local {
				if err := alloc.Delete(h); err != nil {
					st.failures++
				}
				st.deletes++
			}
			return
		default:
		}

		if len(local) < targetLive && (len(local) == 0 || rng.Intn(2) == 0) {
			h := alloc.Issue()
			if !alloc.IsLive(h) {
				st.failures++
			}
			local = append(local, h)
			st.issues++
			continue
		}

		pick := rng.Intn(len(local))
		h := local[pick]
		local[pick] = local[len(local)-1]
		local = local[:len(local)-1]

		if err := alloc.Delete(h); err != nil {
			st.failures++
		}
		if alloc.IsLive(h) {
			st.failures++
		}
		if err := alloc.Delete(h); !errors.Is(err, genidx.ErrAlreadyDeleted) {
			st.failures++
		}
		st.deletes++
	}
}

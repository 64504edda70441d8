package main

import (
	"io"
	"runtime"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Workers    int
	TargetLive int

	// Results
	Issues        int64
	Deletes       int64
	Failures      int64
	LiveAtEnd     int
	FreedAtEnd    int
	TotalTime     time.Duration
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// OpsPerSecond reports the combined issue+delete throughput.
func (r *Report) OpsPerSecond() int64 {
	secs := r.TotalTime.Seconds()
	if secs == 0 {
		return 0
	}
	return int64(float64(r.Issues+r.Deletes) / secs)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Allocator Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Workers:** {{.Workers}}
- **Target Live Handles per Worker:** {{.TargetLive}}

## Churn Results
- **Handles Issued:** {{.Issues}}
- **Handles Deleted:** {{.Deletes}}
- **Contract Violations:** {{.Failures}}
- **Live at End:** {{.LiveAtEnd}}
- **Free Queue at End:** {{.FreedAtEnd}}
- **Total Test Time:** {{.TotalTime}}
- **Throughput:** {{.OpsPerSecond}} ops/sec

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

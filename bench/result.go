package bench

import (
	"time"

	"github.com/hash-anu/rocksdb-benchmark/engine"
)

// PhaseResult holds the timing for one completed benchmark phase. It is
// computed once and never mutated afterwards.
type PhaseResult struct {
	Name string `json:"name"`

	// Ops is the number of operations the phase performed. For the
	// sequential scan this is the number of pairs actually visited, which
	// can differ from the configured record count once deletes have run.
	Ops int `json:"ops"`

	// Commits is the number of durable batch commits the phase issued.
	Commits int `json:"commits"`

	Elapsed time.Duration `json:"elapsed_ns"`
}

// OpsPerSec derives the phase throughput.
func (r PhaseResult) OpsPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}

	return float64(r.Ops) / r.Elapsed.Seconds()
}

// OpCounters counts operations issued by the harness itself, independent of
// any backend statistics support.
type OpCounters struct {
	Puts    uint64 `json:"puts"`
	Gets    uint64 `json:"gets"`
	Deletes uint64 `json:"deletes"`
}

// Report aggregates everything one benchmark run produced.
type Report struct {
	Config  Config         `json:"config"`
	Profile engine.Profile `json:"profile"`

	Phases   []PhaseResult `json:"phases"`
	Counters OpCounters    `json:"counters"`

	EngineStats  map[string]string  `json:"engine_stats,omitempty"`
	EngineMemory engine.MemoryStats `json:"engine_memory"`

	// Process resident memory samples, in kilobytes. Zero means the
	// platform did not expose the reading.
	InitialMemKB uint64 `json:"initial_mem_kb"`
	FinalMemKB   uint64 `json:"final_mem_kb"`
	PeakMemKB    uint64 `json:"peak_mem_kb"`

	MainDBBytes uint64 `json:"main_db_bytes"`
	BulkDBBytes uint64 `json:"bulk_db_bytes"`

	TotalElapsed time.Duration `json:"total_elapsed_ns"`
}

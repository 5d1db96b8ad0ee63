// Package bench runs a fixed sequence of workload phases against an
// embedded key-value engine and measures throughput and memory.
package bench

import "fmt"

// Config holds the workload parameters for one benchmark run. The zero
// Seed selects time-based seeding; any other value makes the random index
// sequence reproducible.
type Config struct {
	Backend string `json:"backend"`

	// Dir is the storage path for the main engine instance; BulkDir is the
	// storage path for the isolated bulk-insert instance. Both are
	// destroyed at the end of a run.
	Dir     string `json:"dir"`
	BulkDir string `json:"bulk_dir"`

	NumRecords int `json:"num_records"`
	BatchSize  int `json:"batch_size"`
	NumReads   int `json:"num_reads"`
	NumUpdates int `json:"num_updates"`
	NumDeletes int `json:"num_deletes"`
	MixedOps   int `json:"mixed_ops"`

	// FlushThreshold caps the pending operations a mixed-workload batch
	// may accumulate before a durable commit is issued.
	FlushThreshold int `json:"flush_threshold"`

	Seed int64 `json:"seed"`
}

// DefaultConfig returns the reference workload: one million records written
// in batches of a thousand, with the read/update/delete counts of the
// original comparison run.
func DefaultConfig() Config {
	return Config{
		Backend:        "goleveldb",
		Dir:            "benchmark_db",
		BulkDir:        "benchmark_bulk_db",
		NumRecords:     1_000_000,
		BatchSize:      1_000,
		NumReads:       50_000,
		NumUpdates:     10_000,
		NumDeletes:     5_000,
		MixedOps:       20_000,
		FlushThreshold: 100,
	}
}

// Validate checks that the workload parameters describe a runnable
// benchmark.
func (c Config) Validate() error {
	if c.Backend == "" {
		return fmt.Errorf("backend must be set")
	}

	if c.Dir == "" || c.BulkDir == "" {
		return fmt.Errorf("both db dirs must be set")
	}

	if c.Dir == c.BulkDir {
		return fmt.Errorf(
			"main and bulk-insert instances must not share a path: %s",
			c.Dir,
		)
	}

	if c.NumRecords <= 0 {
		return fmt.Errorf("num records must be positive, got %d",
			c.NumRecords)
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d",
			c.BatchSize)
	}

	if c.NumReads < 0 || c.NumUpdates < 0 || c.NumDeletes < 0 ||
		c.MixedOps < 0 {
		return fmt.Errorf("operation counts must not be negative")
	}

	if c.FlushThreshold <= 0 {
		return fmt.Errorf("flush threshold must be positive, got %d",
			c.FlushThreshold)
	}

	return nil
}

package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/hash-anu/rocksdb-benchmark/engine"
	"github.com/hash-anu/rocksdb-benchmark/sysmem"
)

// Runner sequences the benchmark phases against a single engine instance,
// samples process memory between phases, and guarantees that the on-disk
// artifacts of both instances are removed on every exit path.
type Runner struct {
	cfg      Config
	profile  engine.Profile
	logger   *slog.Logger
	rng      *rand.Rand
	counters OpCounters
}

// NewRunner validates the config and resolves the random seed. A zero seed
// is replaced with the current time, so real benchmark runs see fresh load
// while tests can inject a fixed seed for reproducible index sequences.
func NewRunner(
	cfg Config,
	profile engine.Profile,
	logger *slog.Logger,
) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Runner{
		cfg:     cfg,
		profile: profile,
		logger:  logger.With(slog.String("backend", cfg.Backend)),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Run executes the full benchmark: open the main engine, run the shared
// phases in fixed order, collect engine statistics, close, run the isolated
// bulk-insert phase, and assemble the report. Artifact destruction for both
// instances is deferred so it also runs when a phase fails.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	backend := engine.BackendType(r.cfg.Backend)

	initialKB := sysmem.Sample()
	peakKB := initialKB

	// Remove leftovers from an aborted previous run before opening.
	if err := engine.Destroy(backend, r.cfg.Dir, r.profile); err != nil {
		return nil, fmt.Errorf("remove stale artifacts: %w", err)
	}

	if err := engine.Destroy(backend, r.cfg.BulkDir, r.profile); err != nil {
		return nil, fmt.Errorf("remove stale bulk artifacts: %w", err)
	}

	eng, err := engine.Open(backend, r.cfg.Dir, r.profile)
	if err != nil {
		return nil, fmt.Errorf("open engine: %w", err)
	}

	engClosed := false
	defer func() {
		if !engClosed {
			_ = eng.Close()
		}

		for _, path := range []string{r.cfg.Dir, r.cfg.BulkDir} {
			if derr := engine.Destroy(backend, path, r.profile); derr != nil {
				r.logger.WarnContext(ctx, "failed to destroy artifacts",
					slog.String("path", path),
					slog.String("error", derr.Error()),
				)
			}
		}
	}()

	r.logger.InfoContext(ctx, "engine opened",
		slog.String("dir", r.cfg.Dir),
		slog.Uint64("initial_mem_kb", initialKB),
		slog.Int64("seed", r.cfg.Seed),
	)

	start := time.Now()

	phases := []func(engine.Engine) (PhaseResult, error){
		r.sequentialWrites,
		r.randomReads,
		r.sequentialScan,
		r.randomUpdates,
		r.randomDeletes,
		r.existsChecks,
		r.mixedWorkload,
	}

	results := make([]PhaseResult, 0, len(phases)+1)

	for _, phase := range phases {
		res, err := phase(eng)
		if err != nil {
			return nil, fmt.Errorf("phase %q: %w", res.Name, err)
		}

		r.logger.InfoContext(ctx, "phase complete",
			slog.String("phase", res.Name),
			slog.Int("ops", res.Ops),
			slog.Duration("elapsed", res.Elapsed),
			slog.Int64("ops_per_sec", int64(res.OpsPerSec())),
		)

		results = append(results, res)

		if kb := sysmem.Sample(); kb > peakKB {
			peakKB = kb
		}
	}

	stats := eng.Stats()
	memStats := eng.MemoryStats()

	if err := eng.Close(); err != nil {
		return nil, fmt.Errorf("close engine: %w", err)
	}

	engClosed = true

	bulkRes, err := r.bulkInsert()
	if err != nil {
		return nil, fmt.Errorf("phase %q: %w", bulkRes.Name, err)
	}

	r.logger.InfoContext(ctx, "phase complete",
		slog.String("phase", bulkRes.Name),
		slog.Int("ops", bulkRes.Ops),
		slog.Duration("elapsed", bulkRes.Elapsed),
	)

	results = append(results, bulkRes)

	finalKB := sysmem.Sample()
	if finalKB > peakKB {
		peakKB = finalKB
	}

	// Sizes are measured before the deferred destroy removes the trees.
	mainSize, err := dirSize(r.cfg.Dir)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to measure db size",
			slog.String("error", err.Error()))
	}

	bulkSize, err := dirSize(r.cfg.BulkDir)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to measure bulk db size",
			slog.String("error", err.Error()))
	}

	return &Report{
		Config:       r.cfg,
		Profile:      r.profile,
		Phases:       results,
		Counters:     r.counters,
		EngineStats:  stats,
		EngineMemory: memStats,
		InitialMemKB: initialKB,
		FinalMemKB:   finalKB,
		PeakMemKB:    peakKB,
		MainDBBytes:  mainSize,
		BulkDBBytes:  bulkSize,
		TotalElapsed: time.Since(start),
	}, nil
}

func dirSize(path string) (uint64, error) {
	var size uint64

	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += uint64(info.Size())
		}

		return nil
	})

	return size, err
}

package bench

import (
	"fmt"
	"time"

	"github.com/hash-anu/rocksdb-benchmark/engine"
)

// commit submits a batch with the durability the profile demands. The batch
// is closed afterwards either way.
func (r *Runner) commit(batch engine.Batch) error {
	if r.profile.SyncWrites {
		return batch.WriteSync()
	}

	return batch.Write()
}

// sequentialWrites writes keys 0..NumRecords-1 in order, committing a
// durable batch every BatchSize puts.
func (r *Runner) sequentialWrites(eng engine.Engine) (PhaseResult, error) {
	res := PhaseResult{Name: "Sequential writes"}

	start := time.Now()

	for i := 0; i < r.cfg.NumRecords; {
		batch := eng.NewBatch()

		for j := 0; j < r.cfg.BatchSize && i < r.cfg.NumRecords; j, i = j+1, i+1 {
			if err := batch.Set(Key(i), Value(i)); err != nil {
				_ = batch.Close()

				return res, fmt.Errorf("buffer put %d: %w", i, err)
			}
		}

		if err := r.commit(batch); err != nil {
			return res, fmt.Errorf("commit write batch: %w", err)
		}

		_ = batch.Close()
		res.Commits++
	}

	res.Elapsed = time.Since(start)
	res.Ops = r.cfg.NumRecords
	r.counters.Puts += uint64(r.cfg.NumRecords)

	return res, nil
}

// randomReads performs NumReads point lookups at uniformly random indices.
// Values are read for effect and discarded.
func (r *Runner) randomReads(eng engine.Engine) (PhaseResult, error) {
	res := PhaseResult{Name: "Random reads"}

	start := time.Now()

	for i := 0; i < r.cfg.NumReads; i++ {
		idx := r.rng.Intn(r.cfg.NumRecords)

		if _, err := eng.Get(Key(idx)); err != nil {
			return res, fmt.Errorf("get %s: %w", Key(idx), err)
		}
	}

	res.Elapsed = time.Since(start)
	res.Ops = r.cfg.NumReads
	r.counters.Gets += uint64(r.cfg.NumReads)

	return res, nil
}

// sequentialScan iterates the full keyspace in key order. The reported op
// count is the number of pairs actually visited.
func (r *Runner) sequentialScan(eng engine.Engine) (PhaseResult, error) {
	res := PhaseResult{Name: "Sequential scan"}

	start := time.Now()

	itr, err := eng.Iterator()
	if err != nil {
		return res, fmt.Errorf("open iterator: %w", err)
	}

	count := 0
	for ; itr.Valid(); itr.Next() {
		_ = itr.Key()
		_ = itr.Value()
		count++
	}

	if err := itr.Error(); err != nil {
		_ = itr.Close()

		return res, fmt.Errorf("scan: %w", err)
	}

	if err := itr.Close(); err != nil {
		return res, fmt.Errorf("close iterator: %w", err)
	}

	res.Elapsed = time.Since(start)
	res.Ops = count

	return res, nil
}

// randomUpdates overwrites NumUpdates random records with a distinct value
// pattern, committing one durable batch for the whole phase.
func (r *Runner) randomUpdates(eng engine.Engine) (PhaseResult, error) {
	res := PhaseResult{Name: "Random updates"}

	start := time.Now()

	batch := eng.NewBatch()

	for i := 0; i < r.cfg.NumUpdates; i++ {
		idx := r.rng.Intn(r.cfg.NumRecords)

		if err := batch.Set(Key(idx), UpdateValue(idx)); err != nil {
			_ = batch.Close()

			return res, fmt.Errorf("buffer update: %w", err)
		}
	}

	if err := r.commit(batch); err != nil {
		return res, fmt.Errorf("commit update batch: %w", err)
	}

	_ = batch.Close()

	res.Elapsed = time.Since(start)
	res.Ops = r.cfg.NumUpdates
	res.Commits = 1
	r.counters.Puts += uint64(r.cfg.NumUpdates)

	return res, nil
}

// randomDeletes deletes NumDeletes random records in one durable batch.
// Indices are sampled with replacement, so fewer unique keys may die.
func (r *Runner) randomDeletes(eng engine.Engine) (PhaseResult, error) {
	res := PhaseResult{Name: "Random deletes"}

	start := time.Now()

	batch := eng.NewBatch()

	for i := 0; i < r.cfg.NumDeletes; i++ {
		idx := r.rng.Intn(r.cfg.NumRecords)

		if err := batch.Delete(Key(idx)); err != nil {
			_ = batch.Close()

			return res, fmt.Errorf("buffer delete: %w", err)
		}
	}

	if err := r.commit(batch); err != nil {
		return res, fmt.Errorf("commit delete batch: %w", err)
	}

	_ = batch.Close()

	res.Elapsed = time.Since(start)
	res.Ops = r.cfg.NumDeletes
	res.Commits = 1
	r.counters.Deletes += uint64(r.cfg.NumDeletes)

	return res, nil
}

// existsChecks probes NumReads random keys for presence. The engine
// interface offers no probe cheaper than a point lookup, so this costs the
// same as the random-read phase.
func (r *Runner) existsChecks(eng engine.Engine) (PhaseResult, error) {
	res := PhaseResult{Name: "Exists checks"}

	start := time.Now()

	for i := 0; i < r.cfg.NumReads; i++ {
		idx := r.rng.Intn(r.cfg.NumRecords)

		if _, err := eng.Has(Key(idx)); err != nil {
			return res, fmt.Errorf("has %s: %w", Key(idx), err)
		}
	}

	res.Elapsed = time.Since(start)
	res.Ops = r.cfg.NumReads
	r.counters.Gets += uint64(r.cfg.NumReads)

	return res, nil
}

// mixedWorkload interleaves point reads (70%), buffered puts (20%) and
// buffered deletes (10%). The pending batch is committed durably whenever
// its operation count exceeds FlushThreshold, and once more at phase end if
// operations remain.
func (r *Runner) mixedWorkload(eng engine.Engine) (PhaseResult, error) {
	res := PhaseResult{Name: "Mixed workload"}

	start := time.Now()

	batch := eng.NewBatch()
	defer func() {
		_ = batch.Close()
	}()

	for i := 0; i < r.cfg.MixedOps; i++ {
		idx := r.rng.Intn(r.cfg.NumRecords)
		op := r.rng.Intn(100)

		switch {
		case op < 70:
			if _, err := eng.Get(Key(idx)); err != nil {
				return res, fmt.Errorf("mixed get: %w", err)
			}

			r.counters.Gets++

		case op < 90:
			if err := batch.Set(Key(idx), MixedValue(idx)); err != nil {
				return res, fmt.Errorf("mixed put: %w", err)
			}

			r.counters.Puts++

		default:
			if err := batch.Delete(Key(idx)); err != nil {
				return res, fmt.Errorf("mixed delete: %w", err)
			}

			r.counters.Deletes++
		}

		if batch.Count() > r.cfg.FlushThreshold {
			if err := r.commit(batch); err != nil {
				return res, fmt.Errorf("commit mixed batch: %w", err)
			}

			_ = batch.Close()
			batch = eng.NewBatch()
			res.Commits++
		}
	}

	if batch.Count() > 0 {
		if err := r.commit(batch); err != nil {
			return res, fmt.Errorf("commit trailing mixed batch: %w", err)
		}

		res.Commits++
	}

	res.Elapsed = time.Since(start)
	res.Ops = r.cfg.MixedOps

	return res, nil
}

// bulkInsert measures the cost of one giant durable commit. It runs against
// a separate, freshly opened engine instance at BulkDir with its own
// keyspace, so the main instance's warm memtables and caches cannot skew
// the result.
func (r *Runner) bulkInsert() (PhaseResult, error) {
	res := PhaseResult{Name: "Bulk insert"}

	eng, err := engine.Open(
		engine.BackendType(r.cfg.Backend), r.cfg.BulkDir, r.profile)
	if err != nil {
		return res, fmt.Errorf("open bulk-insert engine: %w", err)
	}
	defer func() {
		_ = eng.Close()
	}()

	start := time.Now()

	batch := eng.NewBatch()
	defer func() {
		_ = batch.Close()
	}()

	for i := 0; i < r.cfg.NumRecords; i++ {
		if err := batch.Set(BulkKey(i), BulkValue(i)); err != nil {
			return res, fmt.Errorf("buffer bulk put %d: %w", i, err)
		}
	}

	if err := r.commit(batch); err != nil {
		return res, fmt.Errorf("commit bulk batch: %w", err)
	}

	res.Elapsed = time.Since(start)
	res.Ops = r.cfg.NumRecords
	res.Commits = 1
	r.counters.Puts += uint64(r.cfg.NumRecords)

	return res, nil
}

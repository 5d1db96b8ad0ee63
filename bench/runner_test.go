package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hash-anu/rocksdb-benchmark/engine"
)

func TestNewRunnerInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.NumRecords = 0

	_, err := NewRunner(cfg, engine.SmallProfile(), discardLogger())
	require.Error(t, err)
}

func TestNewRunnerResolvesSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Seed = 0

	r := newTestRunner(t, cfg)
	require.NotZero(t, r.cfg.Seed)

	cfg.Seed = 7
	r = newTestRunner(t, cfg)
	require.EqualValues(t, 7, r.cfg.Seed)
}

func TestRunUnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backend = "bogus"

	r := newTestRunner(t, cfg)

	_, err := r.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown backend")
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	cfg.NumRecords = 200
	cfg.BatchSize = 25
	cfg.NumReads = 100
	cfg.NumUpdates = 30
	cfg.NumDeletes = 10
	cfg.MixedOps = 300
	cfg.FlushThreshold = 20
	cfg.Seed = 7

	r := newTestRunner(t, cfg)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rep)

	wantOrder := []string{
		"Sequential writes",
		"Random reads",
		"Sequential scan",
		"Random updates",
		"Random deletes",
		"Exists checks",
		"Mixed workload",
		"Bulk insert",
	}

	require.Len(t, rep.Phases, len(wantOrder))
	for i, p := range rep.Phases {
		require.Equal(t, wantOrder[i], p.Name)
	}

	require.Equal(t, cfg.NumRecords, rep.Phases[0].Ops)
	require.Equal(t, cfg.NumRecords/cfg.BatchSize, rep.Phases[0].Commits)
	require.Equal(t, cfg.NumReads, rep.Phases[1].Ops)
	require.LessOrEqual(t, rep.Phases[2].Ops, cfg.NumRecords)
	require.Equal(t, 1, rep.Phases[7].Commits)

	// Writes, updates and the bulk phase all count as puts; mixed-workload
	// puts come on top.
	require.GreaterOrEqual(t, rep.Counters.Puts,
		uint64(2*cfg.NumRecords+cfg.NumUpdates))
	require.GreaterOrEqual(t, rep.Counters.Gets, uint64(2*cfg.NumReads))
	require.GreaterOrEqual(t, rep.Counters.Deletes, uint64(cfg.NumDeletes))

	require.Positive(t, rep.TotalElapsed)
	require.GreaterOrEqual(t, rep.PeakMemKB, rep.InitialMemKB)
	require.EqualValues(t, 7, rep.Config.Seed)
	require.NotNil(t, rep.EngineStats)

	// Cleanup must have destroyed both instances' artifacts.
	require.NoDirExists(t, cfg.Dir)
	require.NoDirExists(t, cfg.BulkDir)
}

func TestRunCleansUpStaleArtifacts(t *testing.T) {
	cfg := testConfig(t)
	cfg.NumRecords = 50
	cfg.BatchSize = 10
	cfg.NumReads = 10
	cfg.NumUpdates = 5
	cfg.NumDeletes = 2
	cfg.MixedOps = 20

	// Simulate an aborted previous run by leaving a populated store at the
	// main path.
	eng, err := engine.Open(
		engine.GoLevelDBBackend, cfg.Dir, engine.SmallProfile())
	require.NoError(t, err)

	batch := eng.NewBatch()
	require.NoError(t, batch.Set([]byte("stale"), []byte("leftover")))
	require.NoError(t, batch.WriteSync())
	require.NoError(t, batch.Close())
	require.NoError(t, eng.Close())

	r := newTestRunner(t, cfg)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	// The stale key must not have been visible to the scan phase.
	require.LessOrEqual(t, rep.Phases[2].Ops, cfg.NumRecords)
	require.NoDirExists(t, cfg.Dir)
}

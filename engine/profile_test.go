package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmallProfileValues(t *testing.T) {
	p := SmallProfile()

	require.True(t, p.CreateIfMissing)
	require.False(t, p.ErrorIfExists)
	require.False(t, p.Compression)
	require.Equal(t, 2*1024*1024, p.BlockCacheSize)
	require.Equal(t, 4*1024, p.BlockSize)
	require.False(t, p.BloomFilter)
	require.Equal(t, 2*1024*1024, p.WriteBufferSize)
	require.Equal(t, 2, p.MaxWriteBuffers)
	require.Equal(t, 1, p.MinWriteBuffersToMerge)
	require.Equal(t, 4, p.NumLevels)
	require.Equal(t, uint64(2*1024*1024), p.TargetFileSize)
	require.Equal(t, uint64(8*1024*1024), p.MaxBytesForLevelBase)
	require.Equal(t, 1, p.BackgroundCompactions)
	require.Equal(t, 1, p.BackgroundFlushes)
	require.Equal(t, 100, p.MaxOpenFiles)
	require.False(t, p.MmapReads)
	require.False(t, p.MmapWrites)
	require.True(t, p.SyncWrites)
	require.True(t, p.EnableStatistics)
}

// Both engine instances within a run are opened from the same profile value,
// so the constructor must be deterministic.
func TestSmallProfileIdempotent(t *testing.T) {
	require.Equal(t, SmallProfile(), SmallProfile())
}

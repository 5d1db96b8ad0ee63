package engine

// Profile is a named set of engine tuning parameters. The same profile value
// is applied to every engine instance opened during one benchmark run so
// results stay comparable across instances. Backends map every field they
// can express and ignore the rest (goleveldb, for example, has no level
// count or mmap knobs).
type Profile struct {
	// CreateIfMissing creates the store on open when the path is empty.
	// A leftover store at the path is not an error; callers destroy stale
	// artifacts before opening.
	CreateIfMissing bool `json:"create_if_missing"`
	ErrorIfExists   bool `json:"error_if_exists"`

	// Compression enables block compression. The benchmark profile leaves
	// it off: the comparison target has no compression.
	Compression bool `json:"compression"`

	BlockCacheSize int `json:"block_cache_size"`
	BlockSize      int `json:"block_size"`

	// BloomFilter enables a probabilistic membership filter. Disabled in
	// the benchmark profile: the comparison target has none, so leaving it
	// on would trade read amplification unevenly.
	BloomFilter bool `json:"bloom_filter"`

	WriteBufferSize        int `json:"write_buffer_size"`
	MaxWriteBuffers        int `json:"max_write_buffers"`
	MinWriteBuffersToMerge int `json:"min_write_buffers_to_merge"`

	NumLevels            int    `json:"num_levels"`
	TargetFileSize       uint64 `json:"target_file_size"`
	MaxBytesForLevelBase uint64 `json:"max_bytes_for_level_base"`

	BackgroundCompactions int `json:"background_compactions"`
	BackgroundFlushes     int `json:"background_flushes"`

	MaxOpenFiles int `json:"max_open_files"`

	MmapReads  bool `json:"mmap_reads"`
	MmapWrites bool `json:"mmap_writes"`

	// SyncWrites makes every batch commit wait for durable persistence
	// (fsync-equivalent). This is the single most important fairness knob:
	// the comparison target fsyncs on every commit.
	SyncWrites bool `json:"sync_writes"`

	EnableStatistics bool `json:"enable_statistics"`
}

// SmallProfile returns the reference small-footprint, durability-strict
// profile: bounded caches and write buffers sized for a store holding a few
// million records, no compression, no bloom filters, strict sync on every
// commit, and background work capped at one compaction and one flush.
func SmallProfile() Profile {
	return Profile{
		CreateIfMissing: true,
		ErrorIfExists:   false,

		Compression: false,

		BlockCacheSize: 2 * 1024 * 1024,
		BlockSize:      4 * 1024,
		BloomFilter:    false,

		WriteBufferSize:        2 * 1024 * 1024,
		MaxWriteBuffers:        2,
		MinWriteBuffersToMerge: 1,

		NumLevels:            4,
		TargetFileSize:       2 * 1024 * 1024,
		MaxBytesForLevelBase: 8 * 1024 * 1024,

		BackgroundCompactions: 1,
		BackgroundFlushes:     1,

		MaxOpenFiles: 100,

		MmapReads:  false,
		MmapWrites: false,

		SyncWrites: true,

		EnableStatistics: true,
	}
}

// Package report formats benchmark results for the console and as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hash-anu/rocksdb-benchmark/bench"
)

const bannerWidth = 56

// Render writes the fixed human-readable report: a configuration block,
// per-phase throughput lines, harness operation totals, the engine-internal
// memory breakdown, and a process-memory summary.
func Render(w io.Writer, rep *bench.Report) error {
	if rep == nil || len(rep.Phases) == 0 {
		return fmt.Errorf("no results to report")
	}

	banner(w, fmt.Sprintf("%s benchmark", rep.Config.Backend))

	fmt.Fprintf(w, "  Database: %s\n", rep.Config.Dir)
	fmt.Fprintf(w, "  Records:  %s\n", FormatCount(int64(rep.Config.NumRecords)))
	fmt.Fprintf(w, "  Seed:     %d\n", rep.Config.Seed)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Configuration:")
	fmt.Fprintf(w, "    - Block cache:       %s\n",
		FormatKB(uint64(rep.Profile.BlockCacheSize)/1024))
	fmt.Fprintf(w, "    - Write buffer:      %s\n",
		FormatKB(uint64(rep.Profile.WriteBufferSize)/1024))
	fmt.Fprintf(w, "    - Block size:        %s\n",
		FormatKB(uint64(rep.Profile.BlockSize)/1024))
	fmt.Fprintf(w, "    - Compression:       %s\n", enabled(rep.Profile.Compression))
	fmt.Fprintf(w, "    - Bloom filters:     %s\n", enabled(rep.Profile.BloomFilter))
	fmt.Fprintf(w, "    - Num levels:        %d\n", rep.Profile.NumLevels)
	fmt.Fprintf(w, "    - Target file size:  %s\n",
		FormatKB(rep.Profile.TargetFileSize/1024))
	fmt.Fprintf(w, "    - Max open files:    %d\n", rep.Profile.MaxOpenFiles)
	fmt.Fprintf(w, "    - Sync on commit:    %s\n", yesNo(rep.Profile.SyncWrites))

	banner(w, "Results")

	for _, p := range rep.Phases {
		fmt.Fprintf(w, "  %-30s: %s ops/sec (%.3f seconds for %d ops)\n",
			p.Name,
			FormatCount(int64(p.OpsPerSec())),
			p.Elapsed.Seconds(),
			p.Ops,
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Total operations:")
	fmt.Fprintf(w, "    - Puts:    %s\n", FormatCount(int64(rep.Counters.Puts)))
	fmt.Fprintf(w, "    - Gets:    %s\n", FormatCount(int64(rep.Counters.Gets)))
	fmt.Fprintf(w, "    - Deletes: %s\n", FormatCount(int64(rep.Counters.Deletes)))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Engine internal memory usage:")
	fmt.Fprintf(w, "    - Block cache:     %s\n",
		FormatKB(rep.EngineMemory.BlockCache/1024))
	fmt.Fprintf(w, "    - Memtables:       %s\n",
		FormatKB(rep.EngineMemory.Memtables/1024))
	fmt.Fprintf(w, "    - Table readers:   %s\n",
		FormatKB(rep.EngineMemory.TableReaders/1024))
	fmt.Fprintf(w, "    - Total internal:  %s\n",
		FormatKB(rep.EngineMemory.Total()/1024))

	banner(w, "Summary")

	fmt.Fprintf(w, "  Total benchmark time: %.2f seconds\n",
		rep.TotalElapsed.Seconds())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Process memory usage:")
	fmt.Fprintf(w, "    - Initial:  %s\n", FormatKB(rep.InitialMemKB))
	fmt.Fprintf(w, "    - Final:    %s\n", FormatKB(rep.FinalMemKB))
	fmt.Fprintf(w, "    - Peak:     %s\n", FormatKB(rep.PeakMemKB))
	fmt.Fprintf(w, "    - Delta:    %s\n", deltaKB(rep.InitialMemKB, rep.FinalMemKB))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  On-disk size:")
	fmt.Fprintf(w, "    - Main instance: %s\n", FormatKB(rep.MainDBBytes/1024))
	fmt.Fprintf(w, "    - Bulk instance: %s\n", FormatKB(rep.BulkDBBytes/1024))

	return nil
}

// RenderJSON writes the full report as indented JSON.
func RenderJSON(w io.Writer, rep *bench.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}

// FormatCount renders an integer with thousands separators: 1234567 becomes
// "1,234,567".
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder

	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}

	b.WriteString(s[:lead])

	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}

	return b.String()
}

// FormatKB renders a kilobyte quantity using the unit matching its
// magnitude: gigabytes and megabytes with two decimals, kilobytes as a
// plain integer.
func FormatKB(kb uint64) string {
	switch {
	case kb >= 1024*1024:
		return fmt.Sprintf("%.2f GB", float64(kb)/(1024*1024))
	case kb >= 1024:
		return fmt.Sprintf("%.2f MB", float64(kb)/1024)
	default:
		return fmt.Sprintf("%d KB", kb)
	}
}

func banner(w io.Writer, title string) {
	line := strings.Repeat("=", bannerWidth)

	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, line)
}

// deltaKB formats final-initial, which can be negative when memory was
// released by the end of the run.
func deltaKB(initial, final uint64) string {
	if final >= initial {
		return FormatKB(final - initial)
	}

	return "-" + FormatKB(initial - final)
}

func enabled(b bool) string {
	if b {
		return "Enabled"
	}

	return "Disabled"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}

	return "No"
}

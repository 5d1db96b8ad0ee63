package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hash-anu/rocksdb-benchmark/bench"
	"github.com/hash-anu/rocksdb-benchmark/engine"
)

func sampleReport() *bench.Report {
	cfg := bench.DefaultConfig()
	cfg.Seed = 42

	return &bench.Report{
		Config:  cfg,
		Profile: engine.SmallProfile(),
		Phases: []bench.PhaseResult{
			{
				Name:    "Sequential writes",
				Ops:     1000000,
				Commits: 1000,
				Elapsed: 4 * time.Second,
			},
			{
				Name:    "Random reads",
				Ops:     50000,
				Elapsed: 500 * time.Millisecond,
			},
		},
		Counters: bench.OpCounters{Puts: 1000000, Gets: 50000},
		EngineMemory: engine.MemoryStats{
			BlockCache:   2 * 1024 * 1024,
			Memtables:    1024 * 1024,
			TableReaders: 512 * 1024,
		},
		InitialMemKB: 8192,
		FinalMemKB:   24576,
		PeakMemKB:    32768,
		MainDBBytes:  64 * 1024 * 1024,
		BulkDBBytes:  60 * 1024 * 1024,
		TotalElapsed: 10 * time.Second,
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"Configuration:",
		"Block cache:       2.00 MB",
		"Sync on commit:    Yes",
		"Sequential writes",
		"250,000 ops/sec",
		"(4.000 seconds for 1000000 ops)",
		"Total operations:",
		"Engine internal memory usage:",
		"Summary",
		"Total benchmark time: 10.00 seconds",
		"Peak:     32.00 MB",
		"Delta:    16.00 MB",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("report missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer

	if err := Render(&buf, nil); err == nil {
		t.Error("expected error for nil report")
	}

	if err := Render(&buf, &bench.Report{}); err == nil {
		t.Error("expected error for report without phases")
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	var parsed bench.Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(parsed.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(parsed.Phases))
	}
	if parsed.Phases[0].Name != "Sequential writes" {
		t.Errorf("phase name = %q, want Sequential writes",
			parsed.Phases[0].Name)
	}
	if parsed.PeakMemKB != 32768 {
		t.Errorf("peak mem = %d, want 32768", parsed.PeakMemKB)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{5, "5"},
		{999, "999"},
		{1000, "1,000"},
		{999999, "999,999"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.input); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q",
				tt.input, got, tt.want)
		}
	}
}

func TestFormatKB(t *testing.T) {
	tests := []struct {
		input uint64
		want  string
	}{
		{0, "0 KB"},
		{512, "512 KB"},
		{1023, "1023 KB"},
		{1024, "1.00 MB"},
		{2048, "2.00 MB"},
		{1536, "1.50 MB"},
		{2 * 1024 * 1024, "2.00 GB"},
	}

	for _, tt := range tests {
		if got := FormatKB(tt.input); got != tt.want {
			t.Errorf("FormatKB(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

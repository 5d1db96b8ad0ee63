package sysmem

import (
	"runtime"
	"testing"
)

func TestSample(t *testing.T) {
	kb := Sample()

	// On Linux the reading must be present; elsewhere a zero sentinel is
	// the documented degradation.
	if runtime.GOOS == "linux" && kb == 0 {
		t.Error("expected a non-zero RSS reading on linux")
	}
}

func TestSampleMonotonicUnderAllocation(t *testing.T) {
	before := Sample()
	if before == 0 {
		t.Skip("platform does not expose RSS")
	}

	// A second sample must still be readable; no assertion on direction,
	// since the OS may reclaim pages between calls.
	if Sample() == 0 {
		t.Error("second sample failed")
	}
}

// Package sysmem reads the operating system's view of the current process's
// resident memory.
package sysmem

import "github.com/prometheus/procfs"

// Sample returns the current resident set size (VmRSS) of this process in
// kilobytes. It returns 0 when the platform does not expose the reading;
// the value is diagnostic only and a zero must never abort a benchmark.
func Sample() uint64 {
	proc, err := procfs.Self()
	if err != nil {
		return 0
	}

	status, err := proc.NewStatus()
	if err != nil {
		return 0
	}

	return status.VmRSS / 1024
}

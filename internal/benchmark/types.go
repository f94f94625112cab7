package benchmark

import (
	"fmt"
	"strings"

	"sbreport/internal/sysbench"
)

// Benchmark is one sysbench command of the suite and how often to run it.
type Benchmark struct {
	Name    string
	Kind    sysbench.Kind
	Command string
	Repeats int
	// Prepare and Cleanup run once around the repeats; their output is ignored.
	Prepare string
	Cleanup string
}

const fileIOBase = "sysbench fileio --file-total-size=10G"

// DefaultSuite returns the fixed battery written to report.md. The file I/O
// test runs for five minutes, so it has its own repeat count.
func DefaultSuite(repeats, fileIORepeats int) []Benchmark {
	return []Benchmark{
		{
			Name:    "cpu",
			Kind:    sysbench.KindCPU,
			Command: "sysbench cpu --threads=100 --time=60 --cpu-max-prime=64000 run",
			Repeats: repeats,
		},
		{
			Name:    "threads",
			Kind:    sysbench.KindThreads,
			Command: "sysbench threads --threads=64 --thread-yields=100 --thread-locks=2 run",
			Repeats: repeats,
		},
		{
			Name:    "memory-write",
			Kind:    sysbench.KindMemory,
			Command: "sysbench memory --threads=100 --time=60 --memory-oper=write run",
			Repeats: repeats,
		},
		{
			Name:    "memory-speed",
			Kind:    sysbench.KindMemory,
			Command: "sysbench memory --memory-block-size=1M --memory-total-size=10G run",
			Repeats: repeats,
		},
		{
			Name:    "fileio",
			Kind:    sysbench.KindFileIO,
			Command: fileIOBase + " --file-test-mode=rndrw --time=120 --time=300 --max-requests=0 run",
			Repeats: fileIORepeats,
			Prepare: fileIOBase + " prepare",
			Cleanup: fileIOBase + " cleanup",
		},
	}
}

// Select keeps the named benchmarks, in suite order. An empty list keeps all.
func Select(suite []Benchmark, names []string) ([]Benchmark, error) {
	if len(names) == 0 {
		return suite, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.TrimSpace(n)] = true
	}

	var selected []Benchmark
	for _, b := range suite {
		if want[b.Name] {
			selected = append(selected, b)
			delete(want, b.Name)
		}
	}
	if len(want) > 0 {
		var unknown []string
		for n := range want {
			unknown = append(unknown, n)
		}
		return nil, fmt.Errorf("unknown benchmark(s): %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}

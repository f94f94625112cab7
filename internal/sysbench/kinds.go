package sysbench

import (
	"fmt"
	"strings"
)

// Kind identifies a sysbench test whose output layout we know how to read.
type Kind int

const (
	KindCPU Kind = iota
	KindThreads
	KindMemory
	KindFileIO
)

// Row is one benchmark invocation's metrics, in the kind's label order.
type Row []float64

// Number of non-empty preamble lines sysbench 1.0 prints before the first
// section of each test.
var headerLines = map[Kind]int{
	KindCPU:     7,
	KindThreads: 6,
	KindMemory:  11,
	KindFileIO:  16,
}

var kindNames = map[Kind]string{
	KindCPU:     "cpu",
	KindThreads: "threads",
	KindMemory:  "memory",
	KindFileIO:  "fileio",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a sysbench test name to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown benchmark kind %q (want cpu, threads, memory or fileio)", name)
}

// Kinds returns every supported kind in report order.
func Kinds() []Kind {
	return []Kind{KindCPU, KindThreads, KindMemory, KindFileIO}
}

// HeaderLines returns how many preamble lines precede the first section, or
// 0 for an unknown kind.
func (k Kind) HeaderLines() int {
	return headerLines[k]
}

func commonLabels() []string {
	labels := make([]string, 0, len(generalStatsLabels)+len(latencyLabels)+len(fairnessLabels))
	labels = append(labels, generalStatsLabels...)
	labels = append(labels, latencyLabels...)
	return append(labels, fairnessLabels...)
}

func (k Kind) prefixLabels() []string {
	switch k {
	case KindCPU:
		return cpuSpeedLabels
	case KindMemory:
		return memoryRatesLabels
	case KindFileIO:
		return append(append([]string{}, fileOpsLabels...), throughputLabels...)
	}
	return nil
}

// Labels returns the column labels for rows of this kind.
func (k Kind) Labels() []string {
	return append(append([]string{}, k.prefixLabels()...), commonLabels()...)
}

// Sample is the structured result of parsing one invocation.
type Sample struct {
	Kind       Kind
	CPU        *CPUSpeed
	Memory     *MemoryRates
	FileOps    *FileOps
	Throughput *Throughput
	General    GeneralStats
	Latency    Latency
	Fairness   Fairness
}

// Row flattens the sample in label order.
func (s Sample) Row() (Row, error) {
	var row Row
	switch {
	case s.CPU != nil:
		row = append(row, s.CPU.Values()...)
	case s.Memory != nil:
		row = append(row, s.Memory.Values()...)
	case s.FileOps != nil && s.Throughput != nil:
		row = append(row, s.FileOps.Values()...)
		row = append(row, s.Throughput.Values()...)
	}
	row = append(row, s.General.Values()...)
	row = append(row, s.Latency.Values()...)
	row = append(row, s.Fairness.Values()...)

	if want := len(s.Kind.Labels()); len(row) != want {
		return nil, fmt.Errorf("%s sample has %d values for %d labels", s.Kind, len(row), want)
	}
	return row, nil
}

// ParseSample reads one invocation's output for the given kind.
func ParseSample(k Kind, c *Cursor, opts ParseOptions) (Sample, error) {
	s := Sample{Kind: k}
	n := k.HeaderLines()
	if n == 0 {
		return s, fmt.Errorf("unsupported benchmark kind %s", k)
	}
	if err := c.Skip(n); err != nil {
		return s, fmt.Errorf("skip %s header: %w", k, err)
	}

	switch k {
	case KindCPU:
		cpu, err := parseCPUSpeed(c, opts)
		if err != nil {
			return s, err
		}
		s.CPU = &cpu
	case KindMemory:
		mem, err := parseMemoryRates(c, opts)
		if err != nil {
			return s, err
		}
		s.Memory = &mem
	case KindFileIO:
		ops, err := parseFileOps(c, opts)
		if err != nil {
			return s, err
		}
		tp, err := parseThroughput(c, opts)
		if err != nil {
			return s, err
		}
		s.FileOps, s.Throughput = &ops, &tp
	}

	var err error
	if s.General, err = parseGeneralStats(c, opts); err != nil {
		return s, err
	}
	if s.Latency, err = parseLatency(c, opts); err != nil {
		return s, err
	}
	if s.Fairness, err = parseFairness(c, opts); err != nil {
		return s, err
	}
	return s, nil
}

// Parse reads one invocation's output and returns it as a Row.
func Parse(k Kind, c *Cursor, opts ParseOptions) (Row, error) {
	s, err := ParseSample(k, c, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s output: %w", k, err)
	}
	return s.Row()
}

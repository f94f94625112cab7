package sysbench

import (
	"fmt"
	"strings"
)

// ParseOptions tunes how strictly output is matched.
type ParseOptions struct {
	// StrictLabels checks each section's label line instead of skipping it
	// blindly.
	StrictLabels bool
}

// Section label lines as printed by sysbench 1.0.
const (
	labelCPUSpeed   = "CPU speed:"
	labelGeneral    = "General statistics:"
	labelLatency    = "Latency (ms):"
	labelFairness   = "Threads fairness:"
	labelFileOps    = "File operations:"
	labelThroughput = "Throughput:"
)

func skipLabel(c *Cursor, label string, opts ParseOptions) error {
	line, err := c.Next()
	if err != nil {
		return err
	}
	if opts.StrictLabels && !strings.HasPrefix(strings.ToLower(line), strings.ToLower(label)) {
		return &FormatError{Field: "section " + strings.TrimSuffix(label, ":"), Pos: -1, Line: line,
			Err: fmt.Errorf("expected label %q", label)}
	}
	return nil
}

// GeneralStats is the "General statistics" block.
type GeneralStats struct {
	TotalTime   float64
	TotalEvents float64
}

var generalStatsLabels = []string{"total time, s", "total # of events"}

func (s GeneralStats) Values() []float64 {
	return []float64{s.TotalTime, s.TotalEvents}
}

func parseGeneralStats(c *Cursor, opts ParseOptions) (s GeneralStats, err error) {
	if err = skipLabel(c, labelGeneral, opts); err != nil {
		return s, err
	}
	if s.TotalTime, err = SecondsField(c, generalStatsLabels[0], DefaultSecondsPos); err != nil {
		return s, err
	}
	s.TotalEvents, err = PlainField(c, generalStatsLabels[1], 4)
	return s, err
}

// Latency is the "Latency (ms)" block.
type Latency struct {
	Min float64
	Avg float64
	Max float64
	P95 float64
	Sum float64
}

var latencyLabels = []string{
	"latency min",
	"latency avg",
	"latency max",
	"latency 95p",
	"latency sum",
}

func (l Latency) Values() []float64 {
	return []float64{l.Min, l.Avg, l.Max, l.P95, l.Sum}
}

func parseLatency(c *Cursor, opts ParseOptions) (l Latency, err error) {
	if err = skipLabel(c, labelLatency, opts); err != nil {
		return l, err
	}
	// "95th percentile:" splits into two tokens, so the value sits one further.
	targets := []struct {
		dst *float64
		pos int
	}{
		{&l.Min, DefaultPlainPos},
		{&l.Avg, DefaultPlainPos},
		{&l.Max, DefaultPlainPos},
		{&l.P95, 2},
		{&l.Sum, DefaultPlainPos},
	}
	for i, t := range targets {
		if *t.dst, err = PlainField(c, latencyLabels[i], t.pos); err != nil {
			return l, err
		}
	}
	return l, nil
}

// Fairness is the "Threads fairness" block.
type Fairness struct {
	EventsAvg      float64
	EventsStddev   float64
	ExecTimeAvg    float64
	ExecTimeStddev float64
}

var fairnessLabels = []string{
	"events avg",
	"events stddev",
	"exec time avg",
	"exec time sttdev",
}

func (f Fairness) Values() []float64 {
	return []float64{f.EventsAvg, f.EventsStddev, f.ExecTimeAvg, f.ExecTimeStddev}
}

func parseFairness(c *Cursor, opts ParseOptions) (f Fairness, err error) {
	if err = skipLabel(c, labelFairness, opts); err != nil {
		return f, err
	}
	if f.EventsAvg, f.EventsStddev, err = RatioField(c, "events (avg/stddev)", DefaultRatioPos); err != nil {
		return f, err
	}
	f.ExecTimeAvg, f.ExecTimeStddev, err = RatioField(c, "execution time (avg/stddev)", 3)
	return f, err
}

// CPUSpeed is the "CPU speed" block of the cpu test.
type CPUSpeed struct {
	EventsPerSec float64
}

var cpuSpeedLabels = []string{"CPU events/s"}

func (s CPUSpeed) Values() []float64 {
	return []float64{s.EventsPerSec}
}

func parseCPUSpeed(c *Cursor, opts ParseOptions) (s CPUSpeed, err error) {
	if err = skipLabel(c, labelCPUSpeed, opts); err != nil {
		return s, err
	}
	s.EventsPerSec, err = PlainField(c, cpuSpeedLabels[0], 3)
	return s, err
}

// MemoryRates holds the two summary lines of the memory test. They follow
// the header directly, without a label line.
type MemoryRates struct {
	OpsPerSec float64
	MiBPerSec float64
}

var memoryRatesLabels = []string{"Ops/s", "Mem speed, MiB/s"}

func (m MemoryRates) Values() []float64 {
	return []float64{m.OpsPerSec, m.MiBPerSec}
}

func parseMemoryRates(c *Cursor, _ ParseOptions) (m MemoryRates, err error) {
	if m.OpsPerSec, err = BracketedRateField(c, memoryRatesLabels[0]); err != nil {
		return m, err
	}
	m.MiBPerSec, err = BracketedRateField(c, memoryRatesLabels[1])
	return m, err
}

// FileOps is the "File operations" block of the fileio test.
type FileOps struct {
	ReadsPerSec  float64
	WritesPerSec float64
	FsyncsPerSec float64
}

var fileOpsLabels = []string{"ops reads/s", "ops writes/s", "ops fsyncs/s"}

func (f FileOps) Values() []float64 {
	return []float64{f.ReadsPerSec, f.WritesPerSec, f.FsyncsPerSec}
}

func parseFileOps(c *Cursor, opts ParseOptions) (f FileOps, err error) {
	if err = skipLabel(c, labelFileOps, opts); err != nil {
		return f, err
	}
	for i, dst := range []*float64{&f.ReadsPerSec, &f.WritesPerSec, &f.FsyncsPerSec} {
		if *dst, err = PlainField(c, fileOpsLabels[i], DefaultPlainPos); err != nil {
			return f, err
		}
	}
	return f, nil
}

// Throughput is the "Throughput" block of the fileio test.
type Throughput struct {
	ReadMiBPerSec  float64
	WriteMiBPerSec float64
}

var throughputLabels = []string{"throughput read, MiB/s", "throughput write, MiB/s"}

func (t Throughput) Values() []float64 {
	return []float64{t.ReadMiBPerSec, t.WriteMiBPerSec}
}

func parseThroughput(c *Cursor, opts ParseOptions) (t Throughput, err error) {
	if err = skipLabel(c, labelThroughput, opts); err != nil {
		return t, err
	}
	if t.ReadMiBPerSec, err = PlainField(c, throughputLabels[0], 2); err != nil {
		return t, err
	}
	t.WriteMiBPerSec, err = PlainField(c, throughputLabels[1], 2)
	return t, err
}

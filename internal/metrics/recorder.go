// Package metrics records request latencies with an HDR histogram.
package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram range: 1 microsecond to 1 hour, 3 significant figures.
const (
	minLatencyUs = 1
	maxLatencyUs = int64(time.Hour / time.Microsecond)
	sigFigs      = 3
)

// Summary is a point-in-time view of recorded latencies.
type Summary struct {
	Count int64         `json:"count" yaml:"count"`
	Min   time.Duration `json:"min" yaml:"min"`
	Max   time.Duration `json:"max" yaml:"max"`
	Mean  time.Duration `json:"mean" yaml:"mean"`
	P50   time.Duration `json:"p50" yaml:"p50"`
	P90   time.Duration `json:"p90" yaml:"p90"`
	P99   time.Duration `json:"p99" yaml:"p99"`
}

// Recorder collects latencies. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	hist *hdrhistogram.Histogram
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(minLatencyUs, maxLatencyUs, sigFigs),
	}
}

// Record adds one latency sample. Values outside the histogram range are
// clamped.
func (r *Recorder) Record(d time.Duration) {
	us := d.Microseconds()
	if us < minLatencyUs {
		us = minLatencyUs
	}
	if us > maxLatencyUs {
		us = maxLatencyUs
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.hist.RecordValue(us)
}

// Snapshot summarizes the samples recorded so far.
func (r *Recorder) Snapshot() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.hist.TotalCount()
	if count == 0 {
		return Summary{}
	}
	return Summary{
		Count: count,
		Min:   usToDuration(r.hist.Min()),
		Max:   usToDuration(r.hist.Max()),
		Mean:  time.Duration(r.hist.Mean() * float64(time.Microsecond)),
		P50:   usToDuration(r.hist.ValueAtQuantile(50)),
		P90:   usToDuration(r.hist.ValueAtQuantile(90)),
		P99:   usToDuration(r.hist.ValueAtQuantile(99)),
	}
}

// Reset discards all samples.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hist.Reset()
}

func usToDuration(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}

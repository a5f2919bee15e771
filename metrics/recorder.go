// Package metrics provides a latency recorder for API calls, backed by
// an HDR histogram for accurate percentiles at O(1) query cost.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram range: 1 microsecond to 1 hour, 3 significant figures.
const (
	histogramMin     = 1
	histogramMax     = 3600000000
	histogramSigFigs = 3
)

// Recorder collects per-call latencies and failure counts. It is safe
// for concurrent use: counters are atomic, the histogram is guarded by
// a mutex.
type Recorder struct {
	hist   *hdrhistogram.Histogram
	histMu sync.Mutex

	total    atomic.Int64
	failures atomic.Int64
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
	}
}

// Record adds one call observation. failed marks calls that returned an
// error (transport failures and raised non-2xx responses alike).
func (r *Recorder) Record(elapsed time.Duration, failed bool) {
	r.total.Add(1)
	if failed {
		r.failures.Add(1)
	}

	micros := elapsed.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}

	r.histMu.Lock()
	r.hist.RecordValue(micros)
	r.histMu.Unlock()
}

// Snapshot is a point-in-time summary of recorded latencies. All
// latency values are in milliseconds.
type Snapshot struct {
	Count    int64
	Failures int64
	Min      float64
	Max      float64
	Mean     float64
	P50      float64
	P90      float64
	P99      float64
}

// Snapshot summarizes everything recorded so far.
func (r *Recorder) Snapshot() Snapshot {
	snap := Snapshot{
		Count:    r.total.Load(),
		Failures: r.failures.Load(),
	}

	r.histMu.Lock()
	defer r.histMu.Unlock()

	if r.hist.TotalCount() == 0 {
		return snap
	}

	snap.Min = microsToMillis(r.hist.Min())
	snap.Max = microsToMillis(r.hist.Max())
	snap.Mean = r.hist.Mean() / 1000.0
	snap.P50 = microsToMillis(r.hist.ValueAtQuantile(50))
	snap.P90 = microsToMillis(r.hist.ValueAtQuantile(90))
	snap.P99 = microsToMillis(r.hist.ValueAtQuantile(99))
	return snap
}

func microsToMillis(v int64) float64 {
	return float64(v) / 1000.0
}

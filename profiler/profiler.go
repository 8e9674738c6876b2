package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks draw-batch throughput and memory statistics for the
// renderer. Stats are written to the log at a fixed interval.
type Profiler struct {
	batchCount int
	jobCount   int
	lastTime   time.Time

	updateInterval time.Duration
	memStats       runtime.MemStats
}

// NewProfiler creates a Profiler that logs once per second.
//
// Returns:
//   - *Profiler: the new profiler
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// Tick records one completed draw batch containing the given number of draw
// jobs, and logs throughput and heap statistics when the update interval has
// elapsed.
//
// Parameters:
//   - jobs: the number of draw jobs in the completed batch
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick(jobs int) bool {
	p.batchCount++
	p.jobCount += jobs

	elapsed := time.Since(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	batchesPerSec := float64(p.batchCount) / elapsed.Seconds()
	jobsPerSec := float64(p.jobCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024

	log.Printf("[Profiler] Batches: %.2f/s | Draw jobs: %.2f/s | Heap: %.2f MB | GC: %d",
		batchesPerSec, jobsPerSec, heapMB, p.memStats.NumGC)

	p.batchCount = 0
	p.jobCount = 0
	p.lastTime = time.Now()
	return true
}

// Package profiler reports frame rate and memory statistics of the render loop.
package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-surface/common"
)

// Stats is one reporting window of the profiler.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Stats are logged at debug level through common.Logger once per interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	now            func() time.Time
	last           Stats
}

// NewProfiler creates a new Profiler reporting once per interval.
// A non-positive interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		now:            time.Now,
	}
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)

	// TotalAlloc only grows, so its delta over the window is the allocation rate
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	// PauseNs is a circular buffer of the last 256 GC pauses
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}

	p.last = Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     gcCount,
		MaxPauseUs:  maxPauseUs,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	common.Logger().Debug("frame stats",
		"fps", p.last.FPS,
		"heap_mb", p.last.HeapMB,
		"alloc_rate_mb", p.last.AllocRateMB,
		"gc", p.last.GCCount,
		"max_pause_us", p.last.MaxPauseUs,
		"sys_mb", p.last.SysMB,
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the stats of the most recent completed window.
func (p *Profiler) Last() Stats {
	return p.last
}

package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-tutorials/common"
)

// Profiler counts frames over a sliding window and reports the frame rate at a fixed interval.
// The frame rate is the number of frames whose timestamps fall inside the last window.
type Profiler struct {
	window         time.Duration
	updateInterval time.Duration

	times      []time.Time
	lastReport time.Time
	fps        int

	logMemory      bool
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// The sliding window and the update interval both default to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		window:         time.Second,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Tick records one frame at time now.
// Timestamps at or before now minus the window are dropped before now is appended.
// The first tick always reports, later ticks report once more than the update interval has passed.
//
// Parameters:
//   - now: the frame timestamp
//
// Returns:
//   - int: the number of frames inside the window, including this one
//   - bool: true if the frame rate was reported on this tick
func (p *Profiler) Tick(now time.Time) (int, bool) {
	cutoff := now.Add(-p.window)
	drop := 0
	for drop < len(p.times) && !p.times[drop].After(cutoff) {
		drop++
	}
	p.times = append(p.times[:0], p.times[drop:]...)
	p.times = append(p.times, now)

	if !p.lastReport.IsZero() && !p.lastReport.Before(now.Add(-p.updateInterval)) {
		return len(p.times), false
	}

	p.fps = len(p.times)
	p.report(now)
	p.lastReport = now
	return p.fps, true
}

// FPS returns the frame rate from the most recent report.
//
// Returns:
//   - int: frames counted in the window at the last report, 0 before the first
func (p *Profiler) FPS() int {
	return p.fps
}

// Reset forgets all recorded frames, e.g. when an animation is paused.
func (p *Profiler) Reset() {
	p.times = p.times[:0]
	p.lastReport = time.Time{}
	p.fps = 0
}

func (p *Profiler) report(now time.Time) {
	if !p.logMemory {
		common.Logger().Info("profiler", "fps", p.fps)
		return
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, Sys is what the process got from the OS.
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	var allocRateMB float64
	if !p.lastReport.IsZero() {
		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		allocRateMB = float64(allocDelta) / 1024 / 1024 / now.Sub(p.lastReport).Seconds()
	}
	p.lastTotalAlloc = p.memStats.TotalAlloc

	common.Logger().Info("profiler",
		"fps", p.fps,
		"heap_mb", allocMB,
		"alloc_rate_mb_s", allocRateMB,
		"gc", p.memStats.NumGC,
		"sys_mb", sysMB,
	)
}

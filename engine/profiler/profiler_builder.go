package profiler

import "time"

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithWindow sets the length of the sliding window frames are counted over.
// Values <= 0 are ignored.
//
// Parameters:
//   - window: the window length (default 1s)
//
// Returns:
//   - ProfilerOption: option function to apply
func WithWindow(window time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if window > 0 {
			p.window = window
		}
	}
}

// WithUpdateInterval sets the minimum time between two reports.
// Values < 0 are ignored.
//
// Parameters:
//   - interval: the report interval (default 1s)
//
// Returns:
//   - ProfilerOption: option function to apply
func WithUpdateInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval >= 0 {
			p.updateInterval = interval
		}
	}
}

// WithMemoryStats adds heap, allocation rate and GC figures to every report.
//
// Parameters:
//   - enabled: if true, memory statistics are read and logged
//
// Returns:
//   - ProfilerOption: option function to apply
func WithMemoryStats(enabled bool) ProfilerOption {
	return func(p *Profiler) {
		p.logMemory = enabled
	}
}

// Package trace wraps calls with debug logging of entry and elapsed time.
package trace

import (
	"time"

	"go.uber.org/zap"
)

// Timer measures the interval between StartTimer and Stop
type Timer struct {
	start    time.Time
	end      time.Time
	interval time.Duration
}

// StartTimer captures the start time
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop records and returns the elapsed interval. Later calls return the
// interval recorded by the first one.
func (t *Timer) Stop() time.Duration {
	if t.end.IsZero() {
		t.end = time.Now()
		t.interval = t.end.Sub(t.start)
	}
	return t.interval
}

// Elapsed returns the recorded interval, or the running one if Stop was not called yet
func (t *Timer) Elapsed() time.Duration {
	if t.end.IsZero() {
		return time.Since(t.start)
	}
	return t.interval
}

// LogEntry logs name at debug level, then calls fn
func LogEntry[T any](logger *zap.Logger, name string, fn func() (T, error)) (T, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(name)
	return fn()
}

// LogTime calls fn and logs its elapsed time at debug level on every exit
// path, panics included.
func LogTime[T any](logger *zap.Logger, name string, fn func() (T, error)) (T, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	timer := StartTimer()
	defer func() {
		elapsed := timer.Stop()
		logger.Debug(name,
			zap.Float64("elapsed_ms", float64(elapsed)/float64(time.Millisecond)),
			zap.Duration("elapsed", elapsed))
	}()
	return fn()
}

// Wrap composes LogTime around LogEntry for fn
func Wrap[T any](logger *zap.Logger, name string, fn func() (T, error)) (T, error) {
	return LogTime(logger, name, func() (T, error) {
		return LogEntry(logger, name, fn)
	})
}

package notify

import (
	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// Logger is the logging interface used by sinks.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func orNoop(l Logger) Logger {
	if l == nil {
		return noopLogger{}
	}
	return l
}

// Fanout delivers each event to every child observer in order.
type Fanout struct {
	observers []device.Observer
}

var _ device.Observer = (*Fanout)(nil)

// NewFanout builds a Fanout, skipping nil observers.
func NewFanout(observers ...device.Observer) *Fanout {
	f := &Fanout{}
	for _, o := range observers {
		if o != nil {
			f.observers = append(f.observers, o)
		}
	}
	return f
}

// DeviceAccessed forwards ev to every child.
func (f *Fanout) DeviceAccessed(ev device.AccessEvent) {
	for _, o := range f.observers {
		o.DeviceAccessed(ev)
	}
}

// Len returns the number of child observers.
func (f *Fanout) Len() int {
	return len(f.observers)
}

// LogObserver logs each access at debug level.
type LogObserver struct {
	logger Logger
}

// NewLogObserver creates a LogObserver.
func NewLogObserver(logger Logger) *LogObserver {
	return &LogObserver{logger: orNoop(logger)}
}

// DeviceAccessed logs ev.
func (o *LogObserver) DeviceAccessed(ev device.AccessEvent) {
	o.logger.Debug("device access event",
		"device_id", ev.DeviceID,
		"operation", ev.Operation,
		"timestamp", ev.Timestamp,
	)
}

// AccessCounter counts device operations. *metrics.Metrics satisfies it.
type AccessCounter interface {
	ObserveAccess(operation string)
}

// MetricsObserver increments the access counter for each event.
type MetricsObserver struct {
	counter AccessCounter
}

// NewMetricsObserver creates a MetricsObserver.
func NewMetricsObserver(counter AccessCounter) *MetricsObserver {
	return &MetricsObserver{counter: counter}
}

// DeviceAccessed counts ev.
func (o *MetricsObserver) DeviceAccessed(ev device.AccessEvent) {
	o.counter.ObserveAccess(string(ev.Operation))
}

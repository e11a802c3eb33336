package device

import (
	"reflect"
	"sync"
	"time"
)

// Logger defines the logging interface used by the Proxy.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Operation names a device operation passing through a Proxy.
type Operation string

const (
	OpTurnOn    Operation = "turn_on"
	OpTurnOff   Operation = "turn_off"
	OpGetStatus Operation = "get_status"
)

// AccessEvent describes one operation about to be forwarded by a Proxy.
type AccessEvent struct {
	DeviceID  string    `json:"device_id"`
	Operation Operation `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
}

// Observer receives access events from proxies.
//
// DeviceAccessed is called synchronously before the wrapped device runs,
// so implementations must not call back into the same proxy.
type Observer interface {
	DeviceAccessed(ev AccessEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev AccessEvent)

// DeviceAccessed calls f(ev).
func (f ObserverFunc) DeviceAccessed(ev AccessEvent) { f(ev) }

// Proxy wraps exactly one Device. Every operation first announces the
// access (one log line plus one AccessEvent to the observer, if any) and
// then forwards to the wrapped device unchanged.
//
// A Proxy around a nil Device, including a nil pointer of a concrete
// device type, still announces accesses; the operations themselves do
// nothing, Status returns "" and ID returns "".
type Proxy struct {
	inner Device

	mu       sync.RWMutex
	logger   Logger
	observer Observer
}

var _ Handle = (*Proxy)(nil)

// NewProxy wraps d.
func NewProxy(d Device) *Proxy {
	if isNil(d) {
		d = nil
	}
	return &Proxy{
		inner:  d,
		logger: noopLogger{},
	}
}

// isNil reports whether d is nil or an interface holding a nil pointer,
// map, slice, func or channel.
func isNil(d Device) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// SetLogger sets the logger the proxy announces accesses on.
func (p *Proxy) SetLogger(logger Logger) {
	p.mu.Lock()
	p.logger = logger
	p.mu.Unlock()
}

// SetObserver sets the observer that receives access events.
// Pass nil to stop delivering events.
func (p *Proxy) SetObserver(o Observer) {
	p.mu.Lock()
	p.observer = o
	p.mu.Unlock()
}

// ID returns the wrapped device's ID, or "" when the wrapped device is
// nil or does not expose one.
func (p *Proxy) ID() string {
	if id, ok := p.inner.(Identified); ok {
		return id.ID()
	}
	return ""
}

// Unwrap returns the wrapped device.
func (p *Proxy) Unwrap() Device {
	return p.inner
}

// TurnOn announces the access and forwards TurnOn.
func (p *Proxy) TurnOn() {
	p.announce(OpTurnOn)
	if p.inner != nil {
		p.inner.TurnOn()
	}
}

// TurnOff announces the access and forwards TurnOff.
func (p *Proxy) TurnOff() {
	p.announce(OpTurnOff)
	if p.inner != nil {
		p.inner.TurnOff()
	}
}

// Status announces the access and returns the wrapped device's status.
func (p *Proxy) Status() string {
	p.announce(OpGetStatus)
	if p.inner == nil {
		return ""
	}
	return p.inner.Status()
}

func (p *Proxy) announce(op Operation) {
	p.mu.RLock()
	logger, observer := p.logger, p.observer
	p.mu.RUnlock()

	id := p.ID()
	logger.Info("accessing device", "device_id", id, "operation", op)

	if observer != nil {
		observer.DeviceAccessed(AccessEvent{
			DeviceID:  id,
			Operation: op,
			Timestamp: time.Now().UTC(),
		})
	}
}

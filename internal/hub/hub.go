package hub

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// Logger defines the logging interface used by the Hub.
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

// Hub is the device registry. The zero value is not usable; call New.
type Hub struct {
	mu        sync.RWMutex
	devices   []device.Handle
	schedules []ScheduledTask
	triggers  []Trigger
	logger    Logger
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{logger: noopLogger{}}
}

// SetLogger sets the logger for the hub.
func (h *Hub) SetLogger(logger Logger) {
	h.mu.Lock()
	h.logger = logger
	h.mu.Unlock()
}

// AddDevice appends d to the registry. IDs are not checked for uniqueness.
func (h *Hub) AddDevice(d device.Handle) {
	h.mu.Lock()
	h.devices = append(h.devices, d)
	count := len(h.devices)
	logger := h.logger
	h.mu.Unlock()

	logger.Info("device added", "device_id", d.ID(), "devices", count)
}

// RemoveDevice removes the first registered handle identical to d.
// Identity is interface equality, i.e. the same pointer for proxies.
// Handles of a non-comparable type never match.
func (h *Hub) RemoveDevice(d device.Handle) error {
	if d == nil {
		return fmt.Errorf("%w: nil handle", ErrDeviceNotFound)
	}

	h.mu.Lock()
	idx := slices.IndexFunc(h.devices, func(candidate device.Handle) bool {
		return sameHandle(candidate, d)
	})
	if idx < 0 {
		h.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDeviceNotFound, d.ID())
	}
	h.devices = slices.Delete(h.devices, idx, idx+1)
	logger := h.logger
	h.mu.Unlock()

	logger.Info("device removed", "device_id", d.ID())
	return nil
}

// sameHandle reports whether a and b hold the same dynamic type and value.
// Comparing interfaces that hold a non-comparable type panics, so those
// are treated as distinct.
func sameHandle(a, b device.Handle) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// RemoveDeviceByID removes the first registered handle whose ID is id.
func (h *Hub) RemoveDeviceByID(id string) error {
	h.mu.Lock()
	idx := h.indexOf(id)
	if idx < 0 {
		h.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDeviceNotFound, id)
	}
	h.devices = slices.Delete(h.devices, idx, idx+1)
	logger := h.logger
	h.mu.Unlock()

	logger.Info("device removed", "device_id", id)
	return nil
}

// Device returns the first registered handle whose ID is id.
func (h *Hub) Device(id string) (device.Handle, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	idx := h.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrDeviceNotFound, id)
	}
	return h.devices[idx], nil
}

// TurnOn switches on the first device whose ID is id.
func (h *Hub) TurnOn(id string) error {
	d, err := h.Device(id)
	if err != nil {
		return err
	}
	d.TurnOn()
	h.log().Debug("device turned on", "device_id", id)
	return nil
}

// TurnOff switches off the first device whose ID is id.
func (h *Hub) TurnOff(id string) error {
	d, err := h.Device(id)
	if err != nil {
		return err
	}
	d.TurnOff()
	h.log().Debug("device turned off", "device_id", id)
	return nil
}

// Devices returns a snapshot of the registered handles in insertion order.
func (h *Hub) Devices() []device.Handle {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.devices)
}

// DeviceCount returns the number of registered handles.
func (h *Hub) DeviceCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.devices)
}

// StatusReport returns every registered device's status in insertion order.
// Devices sharing an ID are all reported.
func (h *Hub) StatusReport() []StatusEntry {
	devices := h.Devices()

	report := make([]StatusEntry, 0, len(devices))
	for _, d := range devices {
		report = append(report, StatusEntry{
			DeviceID: d.ID(),
			Status:   d.Status(),
		})
	}
	return report
}

// SetSchedule records a scheduled command. deviceID is not checked
// against the registry and the record is never executed.
func (h *Hub) SetSchedule(deviceID, time, command string) ScheduledTask {
	task := ScheduledTask{DeviceID: deviceID, Time: time, Command: command}

	h.mu.Lock()
	h.schedules = append(h.schedules, task)
	logger := h.logger
	h.mu.Unlock()

	logger.Info("schedule recorded", "device_id", deviceID, "time", time, "command", command)
	return task
}

// AddTrigger records a condition/action pair. It is never evaluated.
func (h *Hub) AddTrigger(condition, action string) Trigger {
	trigger := Trigger{Condition: condition, Action: action}

	h.mu.Lock()
	h.triggers = append(h.triggers, trigger)
	logger := h.logger
	h.mu.Unlock()

	logger.Info("trigger recorded", "condition", condition, "action", action)
	return trigger
}

// Schedules returns a copy of the recorded schedules in insertion order.
func (h *Hub) Schedules() []ScheduledTask {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.schedules)
}

// Triggers returns a copy of the recorded triggers in insertion order.
func (h *Hub) Triggers() []Trigger {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.triggers)
}

// Stats returns the current collection sizes.
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Stats{
		Devices:   len(h.devices),
		Schedules: len(h.schedules),
		Triggers:  len(h.triggers),
	}
}

// indexOf returns the position of the first handle with the given ID, or -1.
// Callers must hold h.mu.
func (h *Hub) indexOf(id string) int {
	return slices.IndexFunc(h.devices, func(d device.Handle) bool {
		return d.ID() == id
	})
}

func (h *Hub) log() Logger {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.logger
}

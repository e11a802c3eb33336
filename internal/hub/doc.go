// Package hub provides the in-memory registry at the centre of Gray Logic Hub.
//
// A Hub owns three ordered collections:
//
//   - device handles (usually *device.Proxy), in insertion order
//   - ScheduledTask records
//   - Trigger records
//
// Commands are dispatched by device ID with a linear scan; the first
// handle whose ID matches wins. Duplicate IDs are accepted, so a second
// device sharing an ID is only reachable after the first is removed.
//
// Schedules and triggers are stored exactly as given. Nothing in the hub
// fires a schedule or evaluates a trigger.
//
// # Missing targets
//
// TurnOn, TurnOff, RemoveDevice, RemoveDeviceByID and Device all return
// ErrDeviceNotFound when no registered handle matches, and leave the
// registry untouched. Callers that want fire-and-forget semantics can
// ignore the error.
//
// # Thread Safety
//
// All methods are safe for concurrent use. The collections share one
// RWMutex; device operations run after the lock is released so slow
// observers never block the registry.
package hub

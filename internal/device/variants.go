package device

import (
	"fmt"
	"sync"
)

// Compile-time interface checks.
var (
	_ Handle = (*Light)(nil)
	_ Handle = (*Thermostat)(nil)
	_ Handle = (*DoorLock)(nil)
)

// Light is a switchable lamp. It starts off.
type Light struct {
	id     string
	mu     sync.RWMutex
	status LightStatus
}

// NewLight creates a Light in the off state.
func NewLight(id string) *Light {
	return &Light{id: id, status: LightOff}
}

// ID returns the light's device ID.
func (l *Light) ID() string { return l.id }

// TurnOn switches the light on.
func (l *Light) TurnOn() {
	l.mu.Lock()
	l.status = LightOn
	l.mu.Unlock()
}

// TurnOff switches the light off.
func (l *Light) TurnOff() {
	l.mu.Lock()
	l.status = LightOff
	l.mu.Unlock()
}

// Status reports e.g. "Light 1 is on."
func (l *Light) Status() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fmt.Sprintf("Light %s is %s.", l.id, l.status)
}

// State returns the current switch state.
func (l *Light) State() LightStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// Thermostat holds a temperature setpoint. It ignores on/off commands;
// the setpoint is fixed at construction and no range is enforced.
type Thermostat struct {
	id          string
	temperature int
}

// NewThermostat creates a Thermostat with the given setpoint.
func NewThermostat(id string, temperature int) *Thermostat {
	return &Thermostat{id: id, temperature: temperature}
}

// ID returns the thermostat's device ID.
func (t *Thermostat) ID() string { return t.id }

// TurnOn is a no-op.
func (t *Thermostat) TurnOn() {}

// TurnOff is a no-op.
func (t *Thermostat) TurnOff() {}

// Status reports e.g. "Thermostat is set to 70 degrees."
func (t *Thermostat) Status() string {
	return fmt.Sprintf("Thermostat is set to %d degrees.", t.temperature)
}

// Temperature returns the setpoint.
func (t *Thermostat) Temperature() int { return t.temperature }

// DoorLock is a lockable door. It starts locked; TurnOn locks, TurnOff unlocks.
type DoorLock struct {
	id     string
	mu     sync.RWMutex
	status LockStatus
}

// NewDoorLock creates a DoorLock in the locked state.
func NewDoorLock(id string) *DoorLock {
	return &DoorLock{id: id, status: LockLocked}
}

// ID returns the lock's device ID.
func (d *DoorLock) ID() string { return d.id }

// TurnOn locks the door.
func (d *DoorLock) TurnOn() {
	d.mu.Lock()
	d.status = LockLocked
	d.mu.Unlock()
}

// TurnOff unlocks the door.
func (d *DoorLock) TurnOff() {
	d.mu.Lock()
	d.status = LockUnlocked
	d.mu.Unlock()
}

// Status reports e.g. "Door is locked."
func (d *DoorLock) Status() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fmt.Sprintf("Door is %s.", d.status)
}

// State returns the current bolt state.
func (d *DoorLock) State() LockStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status
}

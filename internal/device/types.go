package device

// Device is the capability contract every virtual device implements.
type Device interface {
	// TurnOn switches the device to its active state.
	TurnOn()

	// TurnOff switches the device to its inactive state.
	TurnOff()

	// Status returns a human-readable description of the current state.
	// It has no side effects.
	Status() string
}

// Identified is implemented by anything that carries a device ID.
type Identified interface {
	ID() string
}

// Handle is a Device that exposes its ID. The hub registry stores handles.
type Handle interface {
	Device
	Identified
}

// Type is the factory tag selecting a device variant.
type Type string

const (
	TypeLight      Type = "light"
	TypeThermostat Type = "thermostat"
	TypeDoor       Type = "door"
)

// AllTypes returns all type tags the factory accepts.
func AllTypes() []Type {
	return []Type{
		TypeLight,
		TypeThermostat,
		TypeDoor,
	}
}

// LightStatus is the switch state of a Light.
type LightStatus string

const (
	LightOn  LightStatus = "on"
	LightOff LightStatus = "off"
)

// LockStatus is the bolt state of a DoorLock.
type LockStatus string

const (
	LockLocked   LockStatus = "locked"
	LockUnlocked LockStatus = "unlocked"
)

// DefaultTemperature is the setpoint a Thermostat gets when none is supplied.
const DefaultTemperature = 70

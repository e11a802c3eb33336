package device

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Params carries the optional construction parameters a variant may use.
// Fields a variant does not need are ignored by it.
type Params struct {
	// Temperature is the Thermostat setpoint. Nil means DefaultTemperature.
	Temperature *int `mapstructure:"temperature"`
}

// Factory builds devices from a type tag.
type Factory interface {
	Create(id string, t Type, p Params) (Device, error)
}

// DefaultFactory builds the Light, Thermostat and DoorLock variants.
type DefaultFactory struct{}

var _ Factory = DefaultFactory{}

// Create builds a new device of type t.
//
// Returns ErrInvalidDeviceType (wrapped, naming the tag) for unknown tags.
func (DefaultFactory) Create(id string, t Type, p Params) (Device, error) {
	switch t {
	case TypeLight:
		return NewLight(id), nil
	case TypeThermostat:
		temperature := DefaultTemperature
		if p.Temperature != nil {
			temperature = *p.Temperature
		}
		return NewThermostat(id, temperature), nil
	case TypeDoor:
		return NewDoorLock(id), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDeviceType, string(t))
	}
}

// CreateFromMap decodes raw into Params and builds the device.
//
// raw is the loosely typed parameter map found in config files
// (e.g. {"temperature": 72}). Numeric strings are accepted; keys that
// Params does not know are rejected with ErrInvalidParams.
func (f DefaultFactory) CreateFromMap(id, typeTag string, raw map[string]any) (Device, error) {
	p, err := DecodeParams(raw)
	if err != nil {
		return nil, err
	}
	return f.Create(id, Type(typeTag), p)
}

// DecodeParams converts a loosely typed map into Params.
func DecodeParams(raw map[string]any) (Params, error) {
	var p Params
	if len(raw) == 0 {
		return p, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Params{}, fmt.Errorf("creating params decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return Params{}, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return p, nil
}

package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrInvalidDeviceType) {
//	    // handle unknown type tag
//	}
var (
	// ErrInvalidDeviceType is returned when the factory receives an unrecognised type tag.
	ErrInvalidDeviceType = errors.New("device: invalid type")

	// ErrInvalidParams is returned when factory parameters cannot be decoded.
	ErrInvalidParams = errors.New("device: invalid params")
)

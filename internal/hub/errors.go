package hub

import "errors"

// ErrDeviceNotFound is returned when no registered device matches the
// requested ID or handle.
var ErrDeviceNotFound = errors.New("hub: device not found")

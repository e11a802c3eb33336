package mqtt

import "fmt"

// Topic prefixes for everything the hub publishes.
const (
	TopicPrefixCore   = "grayhub/core"
	TopicPrefixSystem = "grayhub/system"
)

// Topics builds hub MQTT topics.
//
//	mqtt.Topics{}.DeviceAccess("light-1")
//	// grayhub/core/device/light-1/access
type Topics struct{}

// DeviceAccess is where proxies announce each operation on a device.
//
// Example: grayhub/core/device/light-1/access
func (Topics) DeviceAccess(deviceID string) string {
	return fmt.Sprintf("%s/device/%s/access", TopicPrefixCore, deviceID)
}

// DeviceStatus carries the retained human-readable status of a device.
//
// Example: grayhub/core/device/light-1/status
func (Topics) DeviceStatus(deviceID string) string {
	return fmt.Sprintf("%s/device/%s/status", TopicPrefixCore, deviceID)
}

// SystemStatus carries the hub's online/offline state and last will.
//
// Example: grayhub/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// AllDeviceAccess matches every device access topic.
//
// Pattern: grayhub/core/device/+/access
func (Topics) AllDeviceAccess() string {
	return TopicPrefixCore + "/device/+/access"
}

// AllDeviceStatus matches every device status topic.
//
// Pattern: grayhub/core/device/+/status
func (Topics) AllDeviceStatus() string {
	return TopicPrefixCore + "/device/+/status"
}

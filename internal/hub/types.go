package hub

// ScheduledTask records a command to be sent to a device at a time.
// Neither field is validated and the hub never executes it.
type ScheduledTask struct {
	DeviceID string `json:"device" yaml:"device_id"`
	Time     string `json:"time" yaml:"time"`
	Command  string `json:"command" yaml:"command"`
}

// Trigger records a condition and the action it should cause.
// Neither field is validated and the hub never evaluates it.
type Trigger struct {
	Condition string `json:"condition" yaml:"condition"`
	Action    string `json:"action" yaml:"action"`
}

// StatusEntry pairs a registered device with its status string.
type StatusEntry struct {
	DeviceID string `json:"device_id"`
	Status   string `json:"status"`
}

// Stats summarises the registry contents.
type Stats struct {
	Devices   int `json:"devices"`
	Schedules int `json:"schedules"`
	Triggers  int `json:"triggers"`
}

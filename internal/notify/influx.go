package notify

import (
	"time"

	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// Measurement names written to InfluxDB.
const (
	MeasurementDeviceAccess       = "device_access"
	MeasurementThermostatSetpoint = "thermostat_setpoint"
)

// PointWriter queues time series points. *influxdb.Client satisfies it.
type PointWriter interface {
	WritePoint(measurement string, tags map[string]string, fields map[string]any, ts time.Time)
}

// InfluxWriter records access events and thermostat setpoints.
type InfluxWriter struct {
	w   PointWriter
	now func() time.Time
}

// NewInfluxWriter creates an InfluxWriter.
func NewInfluxWriter(w PointWriter) *InfluxWriter {
	return &InfluxWriter{w: w, now: time.Now}
}

// DeviceAccessed writes one device_access point.
func (iw *InfluxWriter) DeviceAccessed(ev device.AccessEvent) {
	iw.w.WritePoint(MeasurementDeviceAccess,
		map[string]string{
			"device_id": ev.DeviceID,
			"operation": string(ev.Operation),
		},
		map[string]any{"count": 1},
		ev.Timestamp,
	)
}

// RecordThermostats writes the setpoint of every thermostat among handles,
// looking through proxies. It returns the number of points written.
func (iw *InfluxWriter) RecordThermostats(handles []device.Handle) int {
	ts := iw.now()
	written := 0
	for _, h := range handles {
		t, ok := unwrap(h).(*device.Thermostat)
		if !ok {
			continue
		}
		iw.w.WritePoint(MeasurementThermostatSetpoint,
			map[string]string{"device_id": t.ID()},
			map[string]any{"degrees": t.Temperature()},
			ts,
		)
		written++
	}
	return written
}

// unwrap strips proxy layers.
func unwrap(d device.Device) device.Device {
	for {
		p, ok := d.(*device.Proxy)
		if !ok {
			return d
		}
		d = p.Unwrap()
	}
}

// Package notify fans device access events out to the hub's sinks.
//
// Every sink implements device.Observer and is attached to proxies
// through a Fanout:
//
//	fan := notify.NewFanout(
//	    notify.NewLogObserver(log),
//	    notify.NewMQTTPublisher(mqttClient, log),
//	    notify.NewInfluxWriter(influxClient),
//	    notify.NewAuditRecorder(auditRepo, log),
//	    notify.NewMetricsObserver(m),
//	)
//	proxy.SetObserver(fan)
//
// Observers run synchronously on the caller's goroutine before the device
// operation. Sink failures are logged and swallowed; they never reach the
// device operation that caused them.
package notify

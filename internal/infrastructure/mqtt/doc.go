// Package mqtt is the hub's MQTT connection, built on paho.mqtt.golang.
//
// The hub only publishes: device access events, retained device status
// and its own online/offline status. Connect configures auto-reconnect
// with backoff and a retained last will on grayhub/system/status so
// subscribers notice a crashed hub.
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.PublishRetained(mqtt.Topics{}.DeviceStatus("light-1"), []byte("Light light-1 is on."))
package mqtt

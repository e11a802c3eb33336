// Package device provides the virtual devices managed by Gray Logic Hub.
//
// Every device satisfies a three-operation capability contract:
// TurnOn, TurnOff and Status. Three variants exist:
//
//	┌──────────────┬───────────────────────┬──────────────────────────────────────┐
//	│ Variant      │ TurnOn / TurnOff      │ Status                               │
//	├──────────────┼───────────────────────┼──────────────────────────────────────┤
//	│ Light        │ on / off              │ "Light <id> is on."                  │
//	│ DoorLock     │ locked / unlocked     │ "Door is locked."                    │
//	│ Thermostat   │ no-op / no-op         │ "Thermostat is set to 70 degrees."   │
//	└──────────────┴───────────────────────┴──────────────────────────────────────┘
//
// # Key Types
//
//   - Device: the capability contract
//   - Handle: a Device that also exposes its ID (what the hub stores)
//   - Factory / DefaultFactory: builds a variant from a type tag and Params
//   - Proxy: forwards to one Device, announcing every access first
//   - Observer / AccessEvent: receives the proxy's access announcements
//
// # Usage
//
//	factory := device.DefaultFactory{}
//	light, err := factory.Create("1", device.TypeLight, device.Params{})
//	if err != nil {
//	    return err
//	}
//
//	proxy := device.NewProxy(light)
//	proxy.SetLogger(log)
//	proxy.SetObserver(sinks)
//	proxy.TurnOn() // logs "accessing device", notifies sinks, then switches the light on
//
// # Thread Safety
//
// Each variant guards its own state, so a device may be driven from the
// hub and from a caller holding the handle at the same time.
package device

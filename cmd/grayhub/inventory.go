package main

import (
	"fmt"

	"github.com/nerrad567/gray-logic-hub/internal/device"
	"github.com/nerrad567/gray-logic-hub/internal/hub"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/config"
)

// seedHub builds every configured device behind a logging proxy and
// records the configured schedules and triggers.
//
// A device the factory rejects aborts seeding; devices added before it
// stay registered.
func seedHub(h *hub.Hub, inv config.InventoryConfig, logger device.Logger, observer device.Observer) error {
	factory := device.DefaultFactory{}

	for i, dc := range inv.Devices {
		d, err := factory.CreateFromMap(dc.ID, dc.Type, dc.Params)
		if err != nil {
			return fmt.Errorf("inventory.devices[%d] (%s): %w", i, dc.ID, err)
		}

		p := device.NewProxy(d)
		if logger != nil {
			p.SetLogger(logger)
		}
		if observer != nil {
			p.SetObserver(observer)
		}
		h.AddDevice(p)
	}

	for _, s := range inv.Schedules {
		h.SetSchedule(s.DeviceID, s.Time, s.Command)
	}
	for _, t := range inv.Triggers {
		h.AddTrigger(t.Condition, t.Action)
	}
	return nil
}

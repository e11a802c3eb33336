package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-hub/internal/device"
	"github.com/nerrad567/gray-logic-hub/internal/hub"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/config"
)

// writeConfig writes content to a temp config file and points GRAYHUB_CONFIG at it.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("GRAYHUB_CONFIG", path)
	return path
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("GRAYHUB_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if err == nil || !strings.Contains(err.Error(), "loading config") {
		t.Fatalf("run() error = %v, want config load failure", err)
	}
}

func TestRun_InvalidDeviceType(t *testing.T) {
	writeConfig(t, `
site:
  id: test-site
logging:
  level: error
inventory:
  devices:
    - id: "1"
      type: toaster
`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if !errors.Is(err, device.ErrInvalidDeviceType) {
		t.Fatalf("run() error = %v, want ErrInvalidDeviceType", err)
	}
}

func TestRun_StartupAndShutdown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "grayhub.db")
	writeConfig(t, `
site:
  id: test-site
logging:
  level: error
database:
  enabled: true
  path: "`+dbPath+`"
inventory:
  devices:
    - {id: "1", type: light}
    - {id: "2", type: thermostat, params: {temperature: 72}}
    - {id: "3", type: door}
  schedules:
    - {device_id: "3", time: "06:00", command: "Turn On"}
  triggers:
    - {condition: "temperature > 75", action: "turn_off(1)"}
`)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("run() did not return after cancel")
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("access journal not created: %v", err)
	}
}

func TestSeedHub(t *testing.T) {
	var events []device.AccessEvent
	observer := device.ObserverFunc(func(ev device.AccessEvent) { events = append(events, ev) })

	inv := config.InventoryConfig{
		Devices: []config.DeviceConfig{
			{ID: "1", Type: "light"},
			{ID: "2", Type: "thermostat", Params: map[string]any{"temperature": 72}},
			{ID: "3", Type: "door"},
		},
		Schedules: []config.ScheduleConfig{{DeviceID: "3", Time: "06:00", Command: "Turn On"}},
		Triggers:  []config.TriggerConfig{{Condition: "temperature > 75", Action: "turn_off(1)"}},
	}

	h := hub.New()
	if err := seedHub(h, inv, nil, observer); err != nil {
		t.Fatalf("seedHub() error = %v", err)
	}

	if got := h.Stats(); got != (hub.Stats{Devices: 3, Schedules: 1, Triggers: 1}) {
		t.Errorf("Stats() = %+v", got)
	}

	want := []string{"Light 1 is off.", "Thermostat is set to 72 degrees.", "Door is locked."}
	report := h.StatusReport()
	for i, w := range want {
		if report[i].Status != w {
			t.Errorf("report[%d] = %q, want %q", i, report[i].Status, w)
		}
	}

	// Every device is proxied and reports to the observer.
	if len(events) != 3 {
		t.Errorf("observed %d events, want 3", len(events))
	}
	for _, d := range h.Devices() {
		if _, ok := d.(*device.Proxy); !ok {
			t.Errorf("device %s is %T, want *device.Proxy", d.ID(), d)
		}
	}
}

func TestSeedHub_BadParams(t *testing.T) {
	inv := config.InventoryConfig{
		Devices: []config.DeviceConfig{
			{ID: "1", Type: "light"},
			{ID: "2", Type: "thermostat", Params: map[string]any{"humidity": 40}},
		},
	}

	h := hub.New()
	err := seedHub(h, inv, nil, nil)
	if !errors.Is(err, device.ErrInvalidParams) {
		t.Fatalf("seedHub() error = %v, want ErrInvalidParams", err)
	}
	if !strings.Contains(err.Error(), "inventory.devices[1]") {
		t.Errorf("error %q should name the failing entry", err)
	}
	if h.DeviceCount() != 1 {
		t.Errorf("DeviceCount() = %d, want 1", h.DeviceCount())
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("GRAYHUB_CONFIG", "")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
	}

	t.Setenv("GRAYHUB_CONFIG", "/etc/grayhub/config.yaml")
	if got := getConfigPath(); got != "/etc/grayhub/config.yaml" {
		t.Errorf("getConfigPath() = %q", got)
	}
}

func TestHealthCheck_NoSinks(t *testing.T) {
	if err := healthCheck(context.Background(), nil, nil, nil); err != nil {
		t.Errorf("healthCheck() error = %v", err)
	}
}

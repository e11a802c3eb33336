package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-hub/internal/audit"
	"github.com/nerrad567/gray-logic-hub/internal/device"
	"github.com/nerrad567/gray-logic-hub/internal/hub"
)

// recordingLogger captures messages by level.
type recordingLogger struct {
	mu     sync.Mutex
	debugs []string
	warns  []string
	errors []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) {
	l.mu.Lock()
	l.debugs = append(l.debugs, msg)
	l.mu.Unlock()
}
func (l *recordingLogger) Info(string, ...any) {}
func (l *recordingLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	l.warns = append(l.warns, msg)
	l.mu.Unlock()
}
func (l *recordingLogger) Error(msg string, _ ...any) {
	l.mu.Lock()
	l.errors = append(l.errors, msg)
	l.mu.Unlock()
}

type message struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// mockPublisher records publishes and optionally fails them.
type mockPublisher struct {
	mu       sync.Mutex
	messages []message
	err      error
}

func (m *mockPublisher) Publish(topic string, payload []byte, qos byte, retained bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, message{topic, payload, qos, retained})
	return nil
}

func (m *mockPublisher) QoS() byte { return 1 }

type point struct {
	measurement string
	tags        map[string]string
	fields      map[string]any
	ts          time.Time
}

// mockPointWriter records points.
type mockPointWriter struct {
	mu     sync.Mutex
	points []point
}

func (m *mockPointWriter) WritePoint(measurement string, tags map[string]string, fields map[string]any, ts time.Time) {
	m.mu.Lock()
	m.points = append(m.points, point{measurement, tags, fields, ts})
	m.mu.Unlock()
}

// mockRepository is an in-memory audit.Repository.
type mockRepository struct {
	mu      sync.Mutex
	entries []audit.Entry
	err     error
}

func (m *mockRepository) Create(ctx context.Context, e *audit.Entry) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("no deadline on context")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *e)
	return nil
}

func (m *mockRepository) List(context.Context, audit.Filter) (*audit.ListResult, error) {
	return nil, errors.New("not implemented")
}

type mockCounter struct {
	counts map[string]int
}

func (m *mockCounter) ObserveAccess(op string) {
	if m.counts == nil {
		m.counts = map[string]int{}
	}
	m.counts[op]++
}

var testEvent = device.AccessEvent{
	DeviceID:  "light-1",
	Operation: device.OpTurnOn,
	Timestamp: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
}

func TestFanout(t *testing.T) {
	var order []string
	record := func(name string) device.Observer {
		return device.ObserverFunc(func(ev device.AccessEvent) {
			order = append(order, name+":"+string(ev.Operation))
		})
	}

	fan := NewFanout(record("a"), nil, record("b"))
	if fan.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (nil skipped)", fan.Len())
	}

	fan.DeviceAccessed(testEvent)

	if fmt.Sprint(order) != "[a:turn_on b:turn_on]" {
		t.Errorf("delivery order = %v", order)
	}
}

func TestFanout_Empty(t *testing.T) {
	NewFanout().DeviceAccessed(testEvent)
}

func TestLogObserver(t *testing.T) {
	logger := &recordingLogger{}
	NewLogObserver(logger).DeviceAccessed(testEvent)

	if len(logger.debugs) != 1 {
		t.Errorf("debug logs = %v, want one", logger.debugs)
	}

	// Nil logger is tolerated.
	NewLogObserver(nil).DeviceAccessed(testEvent)
}

func TestMetricsObserver(t *testing.T) {
	counter := &mockCounter{}
	obs := NewMetricsObserver(counter)

	obs.DeviceAccessed(testEvent)
	obs.DeviceAccessed(testEvent)
	obs.DeviceAccessed(device.AccessEvent{DeviceID: "x", Operation: device.OpGetStatus})

	if counter.counts["turn_on"] != 2 || counter.counts["get_status"] != 1 {
		t.Errorf("counts = %v", counter.counts)
	}
}

func TestMQTTPublisher_DeviceAccessed(t *testing.T) {
	pub := &mockPublisher{}
	NewMQTTPublisher(pub, nil).DeviceAccessed(testEvent)

	if len(pub.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.messages))
	}
	m := pub.messages[0]
	if m.topic != "grayhub/core/device/light-1/access" {
		t.Errorf("topic = %q", m.topic)
	}
	if m.retained || m.qos != 1 {
		t.Errorf("retained = %v, qos = %d; want false, 1", m.retained, m.qos)
	}

	var got device.AccessEvent
	if err := json.Unmarshal(m.payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got.DeviceID != testEvent.DeviceID || got.Operation != testEvent.Operation || !got.Timestamp.Equal(testEvent.Timestamp) {
		t.Errorf("payload = %+v, want %+v", got, testEvent)
	}
}

func TestMQTTPublisher_ErrorsAreLogged(t *testing.T) {
	pub := &mockPublisher{err: errors.New("not connected")}
	logger := &recordingLogger{}
	p := NewMQTTPublisher(pub, logger)

	p.DeviceAccessed(testEvent)
	n := p.PublishStatus([]hub.StatusEntry{{DeviceID: "1", Status: "Light 1 is on."}})

	if n != 0 {
		t.Errorf("PublishStatus() = %d, want 0", n)
	}
	if len(logger.warns) != 2 {
		t.Errorf("warns = %v, want two", logger.warns)
	}
}

func TestMQTTPublisher_PublishStatus(t *testing.T) {
	pub := &mockPublisher{}
	p := NewMQTTPublisher(pub, nil)

	n := p.PublishStatus([]hub.StatusEntry{
		{DeviceID: "1", Status: "Light 1 is on."},
		{DeviceID: "4", Status: "Light 4 is off."},
	})

	if n != 2 {
		t.Errorf("PublishStatus() = %d, want 2", n)
	}
	want := []message{
		{"grayhub/core/device/1/status", []byte("Light 1 is on."), 1, true},
		{"grayhub/core/device/4/status", []byte("Light 4 is off."), 1, true},
	}
	for i, w := range want {
		got := pub.messages[i]
		if got.topic != w.topic || string(got.payload) != string(w.payload) || got.retained != w.retained {
			t.Errorf("message[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestInfluxWriter_DeviceAccessed(t *testing.T) {
	w := &mockPointWriter{}
	NewInfluxWriter(w).DeviceAccessed(testEvent)

	if len(w.points) != 1 {
		t.Fatalf("wrote %d points, want 1", len(w.points))
	}
	p := w.points[0]
	if p.measurement != MeasurementDeviceAccess {
		t.Errorf("measurement = %q", p.measurement)
	}
	if p.tags["device_id"] != "light-1" || p.tags["operation"] != "turn_on" {
		t.Errorf("tags = %v", p.tags)
	}
	if p.fields["count"] != 1 {
		t.Errorf("fields = %v", p.fields)
	}
	if !p.ts.Equal(testEvent.Timestamp) {
		t.Errorf("ts = %v, want event timestamp", p.ts)
	}
}

func TestInfluxWriter_RecordThermostats(t *testing.T) {
	w := &mockPointWriter{}
	iw := NewInfluxWriter(w)
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	iw.now = func() time.Time { return fixed }

	handles := []device.Handle{
		device.NewProxy(device.NewLight("1")),
		device.NewProxy(device.NewThermostat("2", 72)),
		device.NewThermostat("3", 65),
		device.NewProxy(device.NewProxy(device.NewThermostat("5", 70))),
		device.NewProxy(device.NewDoorLock("4")),
	}

	n := iw.RecordThermostats(handles)
	if n != 3 {
		t.Fatalf("RecordThermostats() = %d, want 3", n)
	}

	want := map[string]int{"2": 72, "3": 65, "5": 70}
	for _, p := range w.points {
		if p.measurement != MeasurementThermostatSetpoint {
			t.Errorf("measurement = %q", p.measurement)
		}
		id := p.tags["device_id"]
		if p.fields["degrees"] != want[id] {
			t.Errorf("device %s degrees = %v, want %d", id, p.fields["degrees"], want[id])
		}
		if !p.ts.Equal(fixed) {
			t.Errorf("ts = %v", p.ts)
		}
	}
}

func TestAuditRecorder(t *testing.T) {
	repo := &mockRepository{}
	NewAuditRecorder(repo, nil).DeviceAccessed(testEvent)

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	e := repo.entries[0]
	if e.DeviceID != "light-1" || e.Operation != "turn_on" || e.Source != audit.DefaultSource {
		t.Errorf("entry = %+v", e)
	}
	if !e.CreatedAt.Equal(testEvent.Timestamp) {
		t.Errorf("CreatedAt = %v, want event timestamp", e.CreatedAt)
	}
}

func TestAuditRecorder_ErrorLogged(t *testing.T) {
	repo := &mockRepository{err: errors.New("disk full")}
	logger := &recordingLogger{}

	NewAuditRecorder(repo, logger).DeviceAccessed(testEvent)

	if len(logger.errors) != 1 {
		t.Errorf("errors = %v, want one", logger.errors)
	}
}

// TestProxyToSinks drives real proxies through the hub into every sink.
func TestProxyToSinks(t *testing.T) {
	pub := &mockPublisher{}
	points := &mockPointWriter{}
	repo := &mockRepository{}
	counter := &mockCounter{}

	fan := NewFanout(
		NewMQTTPublisher(pub, nil),
		NewInfluxWriter(points),
		NewAuditRecorder(repo, nil),
		NewMetricsObserver(counter),
	)

	h := hub.New()
	p := device.NewProxy(device.NewLight("1"))
	p.SetObserver(fan)
	h.AddDevice(p)

	if err := h.TurnOn("1"); err != nil {
		t.Fatalf("TurnOn() error = %v", err)
	}
	report := h.StatusReport()

	if report[0].Status != "Light 1 is on." {
		t.Errorf("status = %q", report[0].Status)
	}
	if len(pub.messages) != 2 || len(points.points) != 2 || len(repo.entries) != 2 {
		t.Errorf("sink counts mqtt=%d influx=%d audit=%d, want 2 each",
			len(pub.messages), len(points.points), len(repo.entries))
	}
	if counter.counts["turn_on"] != 1 || counter.counts["get_status"] != 1 {
		t.Errorf("counts = %v", counter.counts)
	}
}

package audit_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-hub/internal/audit"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/database"
	_ "github.com/nerrad567/gray-logic-hub/migrations"
)

func newTestRepo(t *testing.T) *audit.SQLiteRepository {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "audit.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return audit.NewSQLiteRepository(db.DB)
}

func TestCreate_FillsDefaults(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := &audit.Entry{DeviceID: "1", Operation: "turn_on"}
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(e.ID) != len("acc-")+8 || e.ID[:4] != "acc-" {
		t.Errorf("ID = %q, want acc-xxxxxxxx", e.ID)
	}
	if e.Source != audit.DefaultSource {
		t.Errorf("Source = %q, want %q", e.Source, audit.DefaultSource)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	res, err := repo.List(ctx, audit.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if res.Total != 1 || len(res.Entries) != 1 {
		t.Fatalf("List() = %+v, want one entry", res)
	}
	got := res.Entries[0]
	if got.ID != e.ID || got.DeviceID != "1" || got.Operation != "turn_on" {
		t.Errorf("entry = %+v", got)
	}
	if !got.CreatedAt.Equal(e.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, e.CreatedAt)
	}
}

func TestCreate_Invalid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		entry *audit.Entry
	}{
		{"nil", nil},
		{"no operation", &audit.Entry{DeviceID: "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.Create(ctx, tt.entry); !errors.Is(err, audit.ErrInvalidEntry) {
				t.Errorf("Create() error = %v, want ErrInvalidEntry", err)
			}
		})
	}

	// Unknown operations are rejected by the table constraint.
	if err := repo.Create(ctx, &audit.Entry{DeviceID: "1", Operation: "explode"}); err == nil {
		t.Error("Create() with unknown operation should fail")
	}
}

func TestCreate_EmptyDeviceID(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Create(context.Background(), &audit.Entry{Operation: "get_status"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestList_FilterAndOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	seed := []audit.Entry{
		{DeviceID: "1", Operation: "turn_on", CreatedAt: base},
		{DeviceID: "2", Operation: "turn_off", CreatedAt: base.Add(time.Second)},
		{DeviceID: "1", Operation: "get_status", CreatedAt: base.Add(1500 * time.Millisecond)},
		{DeviceID: "1", Operation: "turn_off", CreatedAt: base.Add(2 * time.Second)},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		filter    audit.Filter
		wantTotal int
		wantOps   []string
	}{
		{"all newest first", audit.Filter{}, 4, []string{"turn_off", "get_status", "turn_off", "turn_on"}},
		{"by device", audit.Filter{DeviceID: "1"}, 3, []string{"turn_off", "get_status", "turn_on"}},
		{"by operation", audit.Filter{Operation: "turn_off"}, 2, []string{"turn_off", "turn_off"}},
		{"device and operation", audit.Filter{DeviceID: "2", Operation: "turn_off"}, 1, []string{"turn_off"}},
		{"paged", audit.Filter{Limit: 2, Offset: 1}, 4, []string{"get_status", "turn_off"}},
		{"no match", audit.Filter{DeviceID: "9"}, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if res.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", res.Total, tt.wantTotal)
			}
			ops := make([]string, 0, len(res.Entries))
			for _, e := range res.Entries {
				ops = append(ops, e.Operation)
			}
			if fmt.Sprint(ops) != fmt.Sprint(tt.wantOps) {
				t.Errorf("operations = %v, want %v", ops, tt.wantOps)
			}
		})
	}
}

func TestList_Clamp(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		filter     audit.Filter
		wantLimit  int
		wantOffset int
	}{
		{"defaults", audit.Filter{}, audit.DefaultLimit, 0},
		{"too large", audit.Filter{Limit: 1000}, audit.MaxLimit, 0},
		{"negative offset", audit.Filter{Limit: 10, Offset: -5}, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if res.Limit != tt.wantLimit || res.Offset != tt.wantOffset {
				t.Errorf("Limit/Offset = %d/%d, want %d/%d", res.Limit, res.Offset, tt.wantLimit, tt.wantOffset)
			}
			if res.Entries == nil {
				t.Error("Entries should be empty, not nil")
			}
		})
	}
}

package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Paging limits for List.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// DefaultSource is recorded when an Entry has no Source.
const DefaultSource = "hub"

// timestampLayout is fixed width so created_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrInvalidEntry is returned by Create for entries missing required fields.
var ErrInvalidEntry = errors.New("audit: invalid entry")

// Entry is one recorded device access.
type Entry struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"device_id"`
	Operation string    `json:"operation"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter selects entries for List. Zero fields match everything.
type Filter struct {
	DeviceID  string
	Operation string
	Limit     int // default 50, max 200
	Offset    int
}

// ListResult is one page of entries plus the total matching count.
type ListResult struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}

// Repository stores and queries access entries.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLiteRepository is a Repository over the device_access_log table.
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository creates a repository on an already migrated database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts e, filling in ID, Source and CreatedAt when empty.
// An empty DeviceID is allowed since proxies may wrap devices without one.
func (r *SQLiteRepository) Create(ctx context.Context, e *Entry) error {
	if e == nil || e.Operation == "" {
		return fmt.Errorf("%w: operation is required", ErrInvalidEntry)
	}
	if e.ID == "" {
		e.ID = "acc-" + uuid.NewString()[:8]
	}
	if e.Source == "" {
		e.Source = DefaultSource
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO device_access_log (id, device_id, operation, source, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.DeviceID, e.Operation, e.Source,
		e.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting access entry: %w", err)
	}
	return nil
}

// List returns entries matching filter, newest first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	filter = clamp(filter)
	where, args := filter.where()

	var total int
	countQuery := "SELECT COUNT(*) FROM device_access_log" + where //nolint:gosec // WHERE uses ? placeholders only
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting access entries: %w", err)
	}

	query := "SELECT id, device_id, operation, source, created_at FROM device_access_log" + //nolint:gosec // WHERE uses ? placeholders only
		where + " ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("querying access entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.DeviceID, &e.Operation, &e.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning access entry: %w", err)
		}
		e.CreatedAt, err = time.Parse(timestampLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing access entry timestamp %q: %w", createdAt, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating access entries: %w", err)
	}

	return &ListResult{
		Entries: entries,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

func clamp(f Filter) Filter {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultLimit
	case f.Limit > MaxLimit:
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func (f Filter) where() (string, []any) {
	var conditions []string
	var args []any

	if f.DeviceID != "" {
		conditions = append(conditions, "device_id = ?")
		args = append(args, f.DeviceID)
	}
	if f.Operation != "" {
		conditions = append(conditions, "operation = ?")
		args = append(args, f.Operation)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

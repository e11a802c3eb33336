package notify

import (
	"context"
	"time"

	"github.com/nerrad567/gray-logic-hub/internal/audit"
	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// auditTimeout bounds each journal write.
const auditTimeout = 2 * time.Second

// AuditRecorder journals each access event.
type AuditRecorder struct {
	repo    audit.Repository
	logger  Logger
	source  string
	timeout time.Duration
}

// NewAuditRecorder creates an AuditRecorder writing to repo.
func NewAuditRecorder(repo audit.Repository, logger Logger) *AuditRecorder {
	return &AuditRecorder{
		repo:    repo,
		logger:  orNoop(logger),
		source:  audit.DefaultSource,
		timeout: auditTimeout,
	}
}

// DeviceAccessed writes ev to the journal.
func (r *AuditRecorder) DeviceAccessed(ev device.AccessEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	entry := &audit.Entry{
		DeviceID:  ev.DeviceID,
		Operation: string(ev.Operation),
		Source:    r.source,
		CreatedAt: ev.Timestamp,
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Error("recording device access failed",
			"device_id", ev.DeviceID,
			"operation", ev.Operation,
			"error", err,
		)
	}
}

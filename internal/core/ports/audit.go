package ports

import (
	"context"
	"time"

	"github.com/bookhaven/catalog-system/internal/core/domain"
)

// AuditEventInput is the DTO handed from the services to the audit
// pipeline.
type AuditEventInput struct {
	Actor     string
	Action    string
	Target    string
	Outcome   string
	Timestamp time.Time
}

// AuditService persists one audit event.
type AuditService interface {
	Record(ctx context.Context, event AuditEventInput) error
}

// AuditRepository defines persistence for the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditSink is what the core services see: a fire-and-forget enqueue.
// The dispatcher in infrastructure/queue implements it.
type AuditSink interface {
	Enqueue(event AuditEventInput)
}

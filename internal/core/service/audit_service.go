package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists audit entries to
// the trail collection.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single audit event. Failures are surfaced to the
// dispatcher, which logs them; audit is never fatal to the request that
// produced the event.
func (s *auditService) Record(ctx context.Context, in ports.AuditEventInput) error {
	entry := &domain.AuditEntry{
		ID:        uuid.NewString(),
		Actor:     in.Actor,
		Action:    in.Action,
		Target:    in.Target,
		Outcome:   in.Outcome,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().
		Str("actor", in.Actor).
		Str("action", in.Action).
		Str("outcome", in.Outcome).
		Msg("audit event recorded")
	return nil
}

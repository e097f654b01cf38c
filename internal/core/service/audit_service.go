package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
	"github.com/pabloab/zapatillas-api/internal/pkg/metrics"
)

type auditService struct {
	repo      ports.AccountEventRepository
	publisher ports.AccountEventPublisher
	log       zerolog.Logger
}

// NewAuditService returns an AuditService. publisher may be nil.
func NewAuditService(repo ports.AccountEventRepository, publisher ports.AccountEventPublisher, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, publisher: publisher, log: log}
}

// Process persists the event and then forwards it to the broker. A broker
// failure is logged and does not fail the event.
func (s *auditService) Process(ctx context.Context, event domain.AccountEvent) error {
	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		metrics.AuditEventsTotal.WithLabelValues(string(event.Type), "store_failed").Inc()
		return fmt.Errorf("audit %s: %w", event.Type, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAccountEvent(ctx, &event); err != nil {
			metrics.AuditEventsTotal.WithLabelValues(string(event.Type), "publish_failed").Inc()
			s.log.Warn().Err(err).Str("username", event.Username).Str("type", string(event.Type)).Msg("failed to publish account event")
			return nil
		}
	}

	metrics.AuditEventsTotal.WithLabelValues(string(event.Type), "ok").Inc()
	s.log.Debug().Str("username", event.Username).Str("type", string(event.Type)).Msg("account event recorded")
	return nil
}

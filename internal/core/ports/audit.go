package ports

import (
	"context"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

// AccountEventRecorder accepts audit events without blocking the caller.
type AccountEventRecorder interface {
	Record(event domain.AccountEvent)
}

// AccountEventRepository persists the audit trail.
type AccountEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.AccountEvent) error
}

// AccountEventPublisher forwards audit events to an external broker.
type AccountEventPublisher interface {
	PublishAccountEvent(ctx context.Context, event *domain.AccountEvent) error
}

// AuditService processes one dequeued audit event.
type AuditService interface {
	Process(ctx context.Context, event domain.AccountEvent) error
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campus-suite/records-portal/internal/domain"
	"github.com/campus-suite/records-portal/internal/events"
	"github.com/campus-suite/records-portal/internal/repository"
)

// AuditRecorder persists every status transition with old/new value and
// actor. Transitions are deliberately unrestricted, so the audit trail is
// what makes staff corrections traceable.
type AuditRecorder struct {
	audits     repository.AuditRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditRecorder creates the recorder.
func NewAuditRecorder(audits repository.AuditRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{audits: audits, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to status-change events.
func (a *AuditRecorder) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventRequestStatusChanged, a.handleStatusChanged)
}

func (a *AuditRecorder) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RequestStatusChangedPayload)
	if !ok {
		return nil
	}
	entry := &domain.RequestAudit{
		RequestID: event.RequestID,
		OldStatus: payload.OldStatus,
		NewStatus: payload.NewStatus,
		StaffID:   event.Actor.StaffID,
	}
	if err := a.audits.Create(ctx, entry); err != nil {
		a.logger.Error("record status transition",
			zap.String("request_id", event.RequestID),
			zap.Error(err),
		)
		return err
	}
	a.logger.Info("status transition",
		zap.String("request_id", event.RequestID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)),
	)
	return nil
}

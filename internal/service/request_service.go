package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campus-suite/records-portal/internal/domain"
	"github.com/campus-suite/records-portal/internal/events"
	"github.com/campus-suite/records-portal/internal/mailer"
	"github.com/campus-suite/records-portal/internal/observability"
	"github.com/campus-suite/records-portal/internal/repository"
	apperrors "github.com/campus-suite/records-portal/pkg/util"
)

const subjectRequestReceived = "Document Request Received"

// RequestService coordinates the document-request workflow: validate,
// persist, then notify. Notification is best-effort; a delivery failure is
// logged and counted but never reverses or masks the persisted write.
type RequestService struct {
	requests   repository.RequestRepository
	mail       mailer.Mailer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	Mailer      mailer.Mailer
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Metrics     *observability.Metrics
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		mail:       deps.Mailer,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}
}

// Submit validates and persists a new document request, then emails the
// requester a confirmation.
func (s *RequestService) Submit(ctx context.Context, input domain.RequestInput) (*domain.DocumentRequest, error) {
	request, messages := domain.NewDocumentRequest(input)
	if messages != nil {
		return nil, apperrors.NewValidationError(messages)
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.deliver(ctx, request.Email, subjectRequestReceived, requestReceivedBody(request), request.ID)

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestSubmitted,
		RequestID: request.ID,
		Payload: events.RequestSubmittedPayload{
			StudentID:    request.StudentID,
			DocumentType: request.DocumentType,
			Email:        request.Email,
		},
	})
	return request, nil
}

// List returns every document request, newest first. Callers are expected to
// have passed the staff gate at the transport layer.
func (s *RequestService) List(ctx context.Context) ([]domain.DocumentRequest, error) {
	return s.requests.List(ctx)
}

// ChangeStatus applies a staff-directed status transition and emails the
// requester. Transitions are unrestricted; every one is published for audit.
func (s *RequestService) ChangeStatus(ctx context.Context, staffID string, requestID string, newStatus domain.RequestStatus) (*domain.DocumentRequest, error) {
	if !domain.ValidRequestStatus(newStatus) {
		return nil, apperrors.NewValidationError([]string{"Please provide a valid status"})
	}

	previous, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Request")
		}
		return nil, err
	}

	request, err := s.requests.UpdateStatus(ctx, requestID, newStatus)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Request")
		}
		return nil, err
	}

	subject := fmt.Sprintf("Document Request %s", request.Status)
	s.deliver(ctx, request.Email, subject, statusChangedBody(request), request.ID)

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: request.ID,
		Actor:     events.Actor{StaffID: &staffID},
		Payload: events.RequestStatusChangedPayload{
			OldStatus: previous.Status,
			NewStatus: request.Status,
		},
	})
	return request, nil
}

// deliver attempts the notification exactly once. The write already
// succeeded, so failures stay observable in logs and metrics only.
func (s *RequestService) deliver(ctx context.Context, to, subject, body, requestID string) {
	if err := s.mail.Send(ctx, to, subject, body); err != nil {
		s.logger.Error("notification delivery failed",
			zap.String("request_id", requestID),
			zap.String("recipient", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		s.metrics.RecordDeliveryFailure()
	}
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func requestReceivedBody(request *domain.DocumentRequest) string {
	return fmt.Sprintf(
		"Dear %s,\n\nWe have received your request for %s.\n\nRequest ID: %s\nStatus: Pending\n\nWe will process your request within 3-5 business days.\n\nThank you,\nAcademic Records Office",
		request.FullName,
		request.DocumentType.HumanReadable(),
		request.ID,
	)
}

func statusChangedBody(request *domain.DocumentRequest) string {
	var readyClause string
	if request.Status == domain.RequestStatusCompleted {
		if request.DeliveryMethod == domain.DeliveryMethodEmail {
			readyClause = "Your document is ready for download from our portal."
		} else {
			readyClause = "Your document is ready for pickup at the records office."
		}
	}
	return fmt.Sprintf(
		"Dear %s,\n\nThe status of your document request (ID: %s) has been updated to %s.\n\n%s\n\nThank you,\nAcademic Records Office",
		request.FullName,
		request.ID,
		request.Status,
		readyClause,
	)
}

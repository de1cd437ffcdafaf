package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-suite/records-portal/internal/domain"
	"github.com/campus-suite/records-portal/internal/events"
	mailerMocks "github.com/campus-suite/records-portal/internal/mailer/mocks"
	"github.com/campus-suite/records-portal/internal/observability"
	repoMocks "github.com/campus-suite/records-portal/internal/repository/mocks"
	apperrors "github.com/campus-suite/records-portal/pkg/util"
)

func validSubmission() domain.RequestInput {
	return domain.RequestInput{
		StudentID:      "S1",
		FullName:       "Ann Lee",
		Email:          "ann@example.com",
		Phone:          "555-0100",
		DocumentType:   "transcript",
		Purpose:        "visa",
		DeliveryMethod: "email",
	}
}

func newTestService(repo *repoMocks.MockRequestRepository, mail *mailerMocks.MockMailer, dispatcher events.Dispatcher) (*RequestService, *observability.Metrics) {
	metrics := observability.NewMetrics()
	svc := NewRequestService(RequestDependencies{
		RequestRepo: repo,
		Mailer:      mail,
		Dispatcher:  dispatcher,
		Logger:      zap.NewNop(),
		Metrics:     metrics,
	})
	return svc, metrics
}

func TestRequestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		svc, _ := newTestService(repo, mail, nil)

		before := time.Now()
		repo.On("Create", ctx, mock.Anything).Return(func(request *domain.DocumentRequest) {
			request.ID = "req-1"
			request.CreatedAt = time.Now()
		}, nil)
		mail.On("Send", ctx, "ann@example.com", "Document Request Received", mock.MatchedBy(func(body string) bool {
			return containsAll(body, "Dear Ann Lee", "an official transcript", "Request ID: req-1", "Status: Pending", "3-5 business days")
		})).Return(nil)

		request, err := svc.Submit(ctx, validSubmission())
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusPending, request.Status)
		assert.Equal(t, "req-1", request.ID)
		assert.WithinRange(t, request.CreatedAt, before, time.Now())

		repo.AssertExpectations(t)
		mail.AssertExpectations(t)
	})

	t.Run("validation failure persists nothing", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		svc, _ := newTestService(repo, mail, nil)

		input := validSubmission()
		input.Email = "not-an-email"

		request, err := svc.Submit(ctx, input)
		assert.Nil(t, request)

		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		assert.Contains(t, domainErr.Messages, "Please provide a valid email")

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delivery failure does not fail the write", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		svc, metrics := newTestService(repo, mail, nil)

		repo.On("Create", ctx, mock.Anything).Return(func(request *domain.DocumentRequest) {
			request.ID = "req-2"
		}, nil)
		mail.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp unreachable"))

		request, err := svc.Submit(ctx, validSubmission())
		require.NoError(t, err)
		assert.Equal(t, "req-2", request.ID)
		assert.Equal(t, int64(1), metrics.DeliveryFailures())
	})

	t.Run("store failure propagates without delivery attempt", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		svc, _ := newTestService(repo, mail, nil)

		repo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

		request, err := svc.Submit(ctx, validSubmission())
		assert.Nil(t, request)
		assert.Error(t, err)
		mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRequestService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	existing := func(status domain.RequestStatus, delivery domain.DeliveryMethod) *domain.DocumentRequest {
		return &domain.DocumentRequest{
			ID:             "req-1",
			StudentID:      "S1",
			FullName:       "Ann Lee",
			Email:          "ann@example.com",
			Phone:          "555-0100",
			DocumentType:   domain.DocumentTypeTranscript,
			Purpose:        domain.PurposeVisa,
			DeliveryMethod: delivery,
			Status:         status,
			CreatedAt:      time.Now(),
		}
	}

	t.Run("not found", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		svc, _ := newTestService(repo, mail, nil)

		repo.On("GetByID", ctx, "missing").Return(nil, pgx.ErrNoRows)

		request, err := svc.ChangeStatus(ctx, "staff-1", "missing", domain.RequestStatusProcessing)
		assert.Nil(t, request)

		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Equal(t, "Request not found", domainErr.Message)
		mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid status", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		svc, _ := newTestService(repo, mail, nil)

		request, err := svc.ChangeStatus(ctx, "staff-1", "req-1", "archived")
		assert.Nil(t, request)

		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("completed with pickup delivery names the records office", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		dispatcher := events.NewInMemoryDispatcher(nil)

		var published []events.Event
		dispatcher.Subscribe(events.EventRequestStatusChanged, func(_ context.Context, event events.Event) error {
			published = append(published, event)
			return nil
		})

		svc, _ := newTestService(repo, mail, dispatcher)

		repo.On("GetByID", ctx, "req-1").Return(existing(domain.RequestStatusProcessing, domain.DeliveryMethodPickup), nil)
		repo.On("UpdateStatus", ctx, "req-1", domain.RequestStatusCompleted).
			Return(existing(domain.RequestStatusCompleted, domain.DeliveryMethodPickup), nil)
		mail.On("Send", ctx, "ann@example.com", "Document Request completed", mock.MatchedBy(func(body string) bool {
			return containsAll(body, "pickup at the records office.") && !containsAll(body, "download from our portal.")
		})).Return(nil)

		request, err := svc.ChangeStatus(ctx, "staff-1", "req-1", domain.RequestStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusCompleted, request.Status)

		require.Len(t, published, 1)
		payload, ok := published[0].Payload.(events.RequestStatusChangedPayload)
		require.True(t, ok)
		assert.Equal(t, domain.RequestStatusProcessing, payload.OldStatus)
		assert.Equal(t, domain.RequestStatusCompleted, payload.NewStatus)
		require.NotNil(t, published[0].Actor.StaffID)
		assert.Equal(t, "staff-1", *published[0].Actor.StaffID)

		mail.AssertExpectations(t)
	})

	t.Run("completed with email delivery names the portal download", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		svc, _ := newTestService(repo, mail, nil)

		repo.On("GetByID", ctx, "req-1").Return(existing(domain.RequestStatusPending, domain.DeliveryMethodEmail), nil)
		repo.On("UpdateStatus", ctx, "req-1", domain.RequestStatusCompleted).
			Return(existing(domain.RequestStatusCompleted, domain.DeliveryMethodEmail), nil)
		mail.On("Send", ctx, "ann@example.com", "Document Request completed", mock.MatchedBy(func(body string) bool {
			return containsAll(body, "download from our portal.")
		})).Return(nil)

		_, err := svc.ChangeStatus(ctx, "staff-1", "req-1", domain.RequestStatusCompleted)
		require.NoError(t, err)
		mail.AssertExpectations(t)
	})

	t.Run("non-completed status omits the ready clause", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		svc, _ := newTestService(repo, mail, nil)

		repo.On("GetByID", ctx, "req-1").Return(existing(domain.RequestStatusPending, domain.DeliveryMethodPickup), nil)
		repo.On("UpdateStatus", ctx, "req-1", domain.RequestStatusRejected).
			Return(existing(domain.RequestStatusRejected, domain.DeliveryMethodPickup), nil)
		mail.On("Send", ctx, "ann@example.com", "Document Request rejected", mock.MatchedBy(func(body string) bool {
			return containsAll(body, "updated to rejected") && !containsAll(body, "ready for")
		})).Return(nil)

		_, err := svc.ChangeStatus(ctx, "staff-1", "req-1", domain.RequestStatusRejected)
		require.NoError(t, err)
		mail.AssertExpectations(t)
	})

	t.Run("idempotent on repeated status", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		svc, _ := newTestService(repo, mail, nil)

		repo.On("GetByID", ctx, "req-1").Return(existing(domain.RequestStatusProcessing, domain.DeliveryMethodEmail), nil)
		repo.On("UpdateStatus", ctx, "req-1", domain.RequestStatusProcessing).
			Return(existing(domain.RequestStatusProcessing, domain.DeliveryMethodEmail), nil)
		mail.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		first, err := svc.ChangeStatus(ctx, "staff-1", "req-1", domain.RequestStatusProcessing)
		require.NoError(t, err)
		second, err := svc.ChangeStatus(ctx, "staff-1", "req-1", domain.RequestStatusProcessing)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("delivery failure does not mask the update", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		svc, metrics := newTestService(repo, mail, nil)

		repo.On("GetByID", ctx, "req-1").Return(existing(domain.RequestStatusPending, domain.DeliveryMethodEmail), nil)
		repo.On("UpdateStatus", ctx, "req-1", domain.RequestStatusProcessing).
			Return(existing(domain.RequestStatusProcessing, domain.DeliveryMethodEmail), nil)
		mail.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp rejected"))

		request, err := svc.ChangeStatus(ctx, "staff-1", "req-1", domain.RequestStatusProcessing)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusProcessing, request.Status)
		assert.Equal(t, int64(1), metrics.DeliveryFailures())
	})
}

func TestRequestService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockRequestRepository)
	mail := new(mailerMocks.MockMailer)
	svc, _ := newTestService(repo, mail, nil)

	expected := []domain.DocumentRequest{{ID: "b"}, {ID: "a"}}
	repo.On("List", ctx).Return(expected, nil)

	requests, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, requests)
}

func containsAll(body string, parts ...string) bool {
	for _, part := range parts {
		if !strings.Contains(body, part) {
			return false
		}
	}
	return true
}

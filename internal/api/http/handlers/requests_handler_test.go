package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/campus-suite/records-portal/internal/api/http"
	"github.com/campus-suite/records-portal/internal/api/http/handlers"
	"github.com/campus-suite/records-portal/internal/auth"
	"github.com/campus-suite/records-portal/internal/domain"
	mailerMocks "github.com/campus-suite/records-portal/internal/mailer/mocks"
	"github.com/campus-suite/records-portal/internal/observability"
	repoMocks "github.com/campus-suite/records-portal/internal/repository/mocks"
	"github.com/campus-suite/records-portal/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func newTestApp(t *testing.T, repo *repoMocks.MockRequestRepository, mail *mailerMocks.MockMailer, staffRepo *repoMocks.MockStaffRepository) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	svc := service.NewRequestService(service.RequestDependencies{
		RequestRepo: repo,
		Mailer:      mail,
		Logger:      zap.NewNop(),
		Metrics:     observability.NewMetrics(),
	})
	handler := handlers.NewRequestsHandler(svc)

	tokens := auth.NewTokenManager("test-secret", 30)
	gate := auth.NewStaffGate(tokens, staffRepo)

	app := fiber.New()
	httpapi.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Post("/document-requests", handler.Submit)
	app.Get("/document-requests", gate.Handle, auth.RequireStaff(), handler.List)
	app.Put("/document-requests/:id", gate.Handle, auth.RequireStaff(), handler.UpdateStatus)
	return app, tokens
}

func staffToken(t *testing.T, tokens *auth.TokenManager, staffRepo *repoMocks.MockStaffRepository) string {
	t.Helper()
	token, _, err := tokens.GenerateToken("staff-1", domain.StaffRoleClerk)
	require.NoError(t, err)
	staffRepo.On("GetByID", mock.Anything, "staff-1").Return(&domain.StaffMember{
		ID:     "staff-1",
		Name:   "Records Clerk",
		Email:  "clerk@college.edu",
		Role:   domain.StaffRoleClerk,
		Active: true,
	}, nil)
	return token
}

func submitPayload() map[string]string {
	return map[string]string{
		"studentId":      "S1",
		"fullName":       "Ann Lee",
		"email":          "ann@example.com",
		"phone":          "555-0100",
		"documentType":   "transcript",
		"purpose":        "visa",
		"deliveryMethod": "email",
	}
}

func TestSubmitRequest(t *testing.T) {
	t.Run("valid submission returns 201", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		app, _ := newTestApp(t, repo, mail, new(repoMocks.MockStaffRepository))

		repo.On("Create", mock.Anything, mock.Anything).Return(func(request *domain.DocumentRequest) {
			request.ID = "req-1"
			request.CreatedAt = time.Now()
		}, nil)
		mail.On("Send", mock.Anything, "ann@example.com", "Document Request Received", mock.Anything).Return(nil)

		body, _ := json.Marshal(submitPayload())
		req := httptest.NewRequest(http.MethodPost, "/document-requests", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var env envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		assert.True(t, env.Success)

		var record map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &record))
		assert.Equal(t, "req-1", record["id"])
		assert.Equal(t, "pending", record["status"])
		mail.AssertExpectations(t)
	})

	t.Run("invalid email returns 400 with messages", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		app, _ := newTestApp(t, repo, mail, new(repoMocks.MockStaffRepository))

		payload := submitPayload()
		payload["email"] = "not-an-email"
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/document-requests", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var env envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		assert.False(t, env.Success)

		var messages []string
		require.NoError(t, json.Unmarshal(env.Error, &messages))
		assert.Contains(t, messages, "Please provide a valid email")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestListRequests(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		app, _ := newTestApp(t, new(repoMocks.MockRequestRepository), new(mailerMocks.MockMailer), new(repoMocks.MockStaffRepository))

		req := httptest.NewRequest(http.MethodGet, "/document-requests", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("staff sees all requests", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		staffRepo := new(repoMocks.MockStaffRepository)
		app, tokens := newTestApp(t, repo, new(mailerMocks.MockMailer), staffRepo)
		token := staffToken(t, tokens, staffRepo)

		repo.On("List", mock.Anything).Return([]domain.DocumentRequest{
			{ID: "newer", Status: domain.RequestStatusPending},
			{ID: "older", Status: domain.RequestStatusCompleted},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/document-requests", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var env envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		assert.True(t, env.Success)
		assert.Equal(t, 2, env.Count)
	})
}

func TestUpdateRequestStatus(t *testing.T) {
	t.Run("unknown id returns 404", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		staffRepo := new(repoMocks.MockStaffRepository)
		app, tokens := newTestApp(t, repo, new(mailerMocks.MockMailer), staffRepo)
		token := staffToken(t, tokens, staffRepo)

		repo.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)

		body, _ := json.Marshal(map[string]string{"status": "completed"})
		req := httptest.NewRequest(http.MethodPut, "/document-requests/missing", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var env envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		assert.False(t, env.Success)

		var message string
		require.NoError(t, json.Unmarshal(env.Error, &message))
		assert.Equal(t, "Request not found", message)
	})

	t.Run("valid transition returns the updated record", func(t *testing.T) {
		repo := new(repoMocks.MockRequestRepository)
		mail := new(mailerMocks.MockMailer)
		staffRepo := new(repoMocks.MockStaffRepository)
		app, tokens := newTestApp(t, repo, mail, staffRepo)
		token := staffToken(t, tokens, staffRepo)

		record := &domain.DocumentRequest{
			ID:             "req-1",
			FullName:       "Ann Lee",
			Email:          "ann@example.com",
			DocumentType:   domain.DocumentTypeTranscript,
			Purpose:        domain.PurposeVisa,
			DeliveryMethod: domain.DeliveryMethodPickup,
			Status:         domain.RequestStatusPending,
		}
		updated := *record
		updated.Status = domain.RequestStatusCompleted

		repo.On("GetByID", mock.Anything, "req-1").Return(record, nil)
		repo.On("UpdateStatus", mock.Anything, "req-1", domain.RequestStatusCompleted).Return(&updated, nil)
		mail.On("Send", mock.Anything, "ann@example.com", "Document Request completed", mock.Anything).Return(nil)

		body, _ := json.Marshal(map[string]string{"status": "completed"})
		req := httptest.NewRequest(http.MethodPut, "/document-requests/req-1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var env envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		assert.True(t, env.Success)

		var result map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Equal(t, "completed", result["status"])
		mail.AssertExpectations(t)
	})
}

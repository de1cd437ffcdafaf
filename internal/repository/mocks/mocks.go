package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/campus-suite/records-portal/internal/domain"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, request *domain.DocumentRequest) error {
	args := m.Called(ctx, request)
	if f, ok := args.Get(0).(func(*domain.DocumentRequest)); ok {
		f(request)
		return args.Error(1)
	}
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id string) (*domain.DocumentRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRequest), args.Error(1)
}

func (m *MockRequestRepository) List(ctx context.Context) ([]domain.DocumentRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.DocumentRequest, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRequest), args.Error(1)
}

func (m *MockRequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.RequestStatus]int), args.Error(1)
}

type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) Create(ctx context.Context, proposal *domain.Proposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *MockProposalRepository) List(ctx context.Context) ([]domain.Proposal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Proposal), args.Error(1)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffMember), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *domain.RequestAudit) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListByRequest(ctx context.Context, requestID string) ([]domain.RequestAudit, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequestAudit), args.Error(1)
}

package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/service"
)

type MockFineService struct {
	mock.Mock
}

func (m *MockFineService) Create(ctx context.Context, in service.CreateFineInput, actor domain.Actor) (*domain.Fine, error) {
	args := m.Called(ctx, in, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}
func (m *MockFineService) Read(ctx context.Context, reference string, mode domain.ViewMode) (any, error) {
	args := m.Called(ctx, reference, mode)
	return args.Get(0), args.Error(1)
}
func (m *MockFineService) Update(ctx context.Context, reference string, patch domain.FinePatch, actor domain.Actor) (*domain.Fine, bool, error) {
	args := m.Called(ctx, reference, patch, actor)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Fine), args.Bool(1), args.Error(2)
}
func (m *MockFineService) PermanentDelete(ctx context.Context, reference string) error {
	args := m.Called(ctx, reference)
	return args.Error(0)
}

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) List(ctx context.Context, q service.ListQuery) (*domain.FinePage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinePage), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ListByOwner(ctx context.Context, ownerTaxID string, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, ownerTaxID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerService) GetByReference(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) PayFine(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Reconcile(ctx context.Context) (*domain.ReconciliationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationReport), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Account), args.Error(2)
}

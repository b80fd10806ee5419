package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"traffic-fines-backend/internal/domain"
)

// MockFineRepo
type MockFineRepo struct {
	mock.Mock
}

func (m *MockFineRepo) Create(ctx context.Context, f *domain.Fine) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *MockFineRepo) GetByReference(ctx context.Context, reference string) (*domain.Fine, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}
func (m *MockFineRepo) Update(ctx context.Context, f *domain.Fine) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *MockFineRepo) Delete(ctx context.Context, reference string) error {
	args := m.Called(ctx, reference)
	return args.Error(0)
}
func (m *MockFineRepo) CountByOwner(ctx context.Context, ownerTaxID string) (int, error) {
	args := m.Called(ctx, ownerTaxID)
	return args.Int(0), args.Error(1)
}
func (m *MockFineRepo) List(ctx context.Context, filter domain.FineFilter, offset, limit int) ([]domain.Fine, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	return args.Get(0).([]domain.Fine), args.Int(1), args.Error(2)
}
func (m *MockFineRepo) ListAll(ctx context.Context) ([]domain.Fine, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Fine), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Create(ctx context.Context, e *domain.LedgerEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockLedgerRepo) GetByFineReference(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) UpdateByFineReference(ctx context.Context, e *domain.LedgerEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockLedgerRepo) DeleteByFineReference(ctx context.Context, reference string) error {
	args := m.Called(ctx, reference)
	return args.Error(0)
}
func (m *MockLedgerRepo) MarkPaid(ctx context.Context, reference string) error {
	args := m.Called(ctx, reference)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByOwner(ctx context.Context, ownerTaxID string, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, ownerTaxID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) ListAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// MockOwnerRepo
type MockOwnerRepo struct {
	mock.Mock
}

func (m *MockOwnerRepo) GetByTaxID(ctx context.Context, taxID string) (*domain.Owner, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}
func (m *MockOwnerRepo) SetHasFines(ctx context.Context, taxID string, hasFines bool) error {
	args := m.Called(ctx, taxID, hasFines)
	return args.Error(0)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

// MockAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) FineIssued(ctx context.Context, event domain.FineIssuedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

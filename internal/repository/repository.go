package repository

import (
	"context"

	"traffic-fines-backend/internal/domain"
)

// FineRepository is the canonical fine document store.
type FineRepository interface {
	Create(ctx context.Context, fine *domain.Fine) error
	GetByReference(ctx context.Context, reference string) (*domain.Fine, error)
	Update(ctx context.Context, fine *domain.Fine) error
	Delete(ctx context.Context, reference string) error
	CountByOwner(ctx context.Context, ownerTaxID string) (int, error)
	// List returns the matching fines newest first, equal timestamps in
	// insertion order, together with the total match count.
	List(ctx context.Context, filter domain.FineFilter, offset, limit int) ([]domain.Fine, int, error)
	ListAll(ctx context.Context) ([]domain.Fine, error)
}

// LedgerRepository is the accounting copy of every fine, keyed by fine reference.
type LedgerRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	GetByFineReference(ctx context.Context, reference string) (*domain.LedgerEntry, error)
	UpdateByFineReference(ctx context.Context, entry *domain.LedgerEntry) error
	DeleteByFineReference(ctx context.Context, reference string) error
	MarkPaid(ctx context.Context, reference string) error
	ListByOwner(ctx context.Context, ownerTaxID string, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
	ListAll(ctx context.Context) ([]domain.LedgerEntry, error)
}

type OwnerRepository interface {
	GetByTaxID(ctx context.Context, taxID string) (*domain.Owner, error)
	SetHasFines(ctx context.Context, taxID string, hasFines bool) error
}

type VehicleRepository interface {
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
}

type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}

package service

import (
	"context"

	"traffic-fines-backend/internal/domain"
)

// CreateFineInput is what an officer supplies when issuing a fine.
type CreateFineInput struct {
	VehiclePlate string
	Reason       string
	Description  *string
	Amount       *float64
}

// FineService is the fine lifecycle engine.
type FineService interface {
	Create(ctx context.Context, in CreateFineInput, actor domain.Actor) (*domain.Fine, error)
	Read(ctx context.Context, reference string, mode domain.ViewMode) (any, error)
	// Update applies patch, or deletes the fine when the patch asks for it
	// and the actor may. The bool reports a delete.
	Update(ctx context.Context, reference string, patch domain.FinePatch, actor domain.Actor) (*domain.Fine, bool, error)
	PermanentDelete(ctx context.Context, reference string) error
}

type OwnerFlagSynchronizer interface {
	Recompute(ctx context.Context, ownerTaxID string) error
}

type ListingService interface {
	List(ctx context.Context, q ListQuery) (*domain.FinePage, error)
}

type LedgerService interface {
	ListByOwner(ctx context.Context, ownerTaxID string, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
	GetByReference(ctx context.Context, reference string) (*domain.LedgerEntry, error)
	PayFine(ctx context.Context, reference string) (*domain.LedgerEntry, error)
}

type ReconciliationService interface {
	Reconcile(ctx context.Context) (*domain.ReconciliationReport, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
}

// FineNotifier hands a fine-issued event to the delivery channel. It must not
// block on delivery.
type FineNotifier interface {
	FineIssued(ctx context.Context, event domain.FineIssuedEvent) error
}

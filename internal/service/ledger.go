package service

import (
	"context"
	"fmt"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/logger"
	"traffic-fines-backend/internal/repository"
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
	fineRepo   repository.FineRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository, fineRepo repository.FineRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo, fineRepo: fineRepo}
}

func (s *ledgerService) ListByOwner(ctx context.Context, ownerTaxID string, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	if page <= 0 {
		page = defaultPage
	}
	if pageSize <= 0 {
		pageSize = defaultLimit
	}
	return s.ledgerRepo.ListByOwner(ctx, ownerTaxID, page, pageSize)
}

func (s *ledgerService) GetByReference(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	return s.ledgerRepo.GetByFineReference(ctx, reference)
}

// PayFine settles the ledger entry and mirrors the paid state onto the fine.
func (s *ledgerService) PayFine(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	logger.EnterMethod("ledgerService.PayFine", "reference", reference)

	if err := s.ledgerRepo.MarkPaid(ctx, reference); err != nil {
		logger.ExitMethodWithError("ledgerService.PayFine", err, "reference", reference)
		return nil, err
	}

	fine, err := s.fineRepo.GetByReference(ctx, reference)
	if err == nil && !fine.Paid {
		fine.Paid = true
		err = s.fineRepo.Update(ctx, fine)
	}
	if err != nil {
		logger.StoreDivergence("pay", reference, domain.ArtifactLedger, domain.ArtifactFine, err)
		return nil, &domain.InconsistencyError{
			Reference: reference,
			Op:        "pay",
			Written:   domain.ArtifactLedger,
			Missing:   domain.ArtifactFine,
			Stale:     true,
			Err:       err,
		}
	}

	entry, err := s.ledgerRepo.GetByFineReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("reload ledger entry: %w", err)
	}
	logger.ExitMethod("ledgerService.PayFine", "reference", reference)
	return entry, nil
}

package service

import (
	"context"
	"fmt"

	"traffic-fines-backend/internal/logger"
	"traffic-fines-backend/internal/repository"
)

type ownerFlagSynchronizer struct {
	fineRepo  repository.FineRepository
	ownerRepo repository.OwnerRepository
}

func NewOwnerFlagSynchronizer(fineRepo repository.FineRepository, ownerRepo repository.OwnerRepository) OwnerFlagSynchronizer {
	return &ownerFlagSynchronizer{fineRepo: fineRepo, ownerRepo: ownerRepo}
}

// Recompute sets the owner's has-fines flag from the number of fines that
// currently reference the owner. Calling it twice has no further effect.
func (s *ownerFlagSynchronizer) Recompute(ctx context.Context, ownerTaxID string) error {
	count, err := s.fineRepo.CountByOwner(ctx, ownerTaxID)
	if err != nil {
		return fmt.Errorf("count fines of owner %s: %w", ownerTaxID, err)
	}
	hasFines := count > 0
	if err := s.ownerRepo.SetHasFines(ctx, ownerTaxID, hasFines); err != nil {
		return fmt.Errorf("set has-fines of owner %s: %w", ownerTaxID, err)
	}
	logger.Debug("Owner flag recomputed", "owner", ownerTaxID, "fines", count, "has_fines", hasFines)
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/logger"
	"traffic-fines-backend/internal/repository"
)

const (
	minReasonLength      = 3
	minUpdatePlateLength = 7
	createdAtResolution  = time.Microsecond
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

type FineServiceOption func(*fineService)

// WithClock replaces the wall clock used for timestamps and window checks.
func WithClock(now func() time.Time) FineServiceOption {
	return func(s *fineService) { s.now = now }
}

type fineService struct {
	fineRepo     repository.FineRepository
	ledgerRepo   repository.LedgerRepository
	ownerRepo    repository.OwnerRepository
	vehicleRepo  repository.VehicleRepository
	flags        OwnerFlagSynchronizer
	notifier     FineNotifier
	now          func() time.Time
	newReference func() string
}

func NewFineService(
	fineRepo repository.FineRepository,
	ledgerRepo repository.LedgerRepository,
	ownerRepo repository.OwnerRepository,
	vehicleRepo repository.VehicleRepository,
	flags OwnerFlagSynchronizer,
	notifier FineNotifier,
	opts ...FineServiceOption,
) FineService {
	s := &fineService{
		fineRepo:     fineRepo,
		ledgerRepo:   ledgerRepo,
		ownerRepo:    ownerRepo,
		vehicleRepo:  vehicleRepo,
		flags:        flags,
		notifier:     notifier,
		now:          time.Now,
		newReference: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create issues a fine against the vehicle with the given plate. The owner
// flag is raised first, then the fine is stored, then its ledger entry.
func (s *fineService) Create(ctx context.Context, in CreateFineInput, actor domain.Actor) (*domain.Fine, error) {
	logger.EnterMethod("fineService.Create", "plate", in.VehiclePlate, "officer", actor.ID)

	if !domain.CanIssue(actor.Roles) {
		return nil, domain.ErrRoleDenied
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	vehicle, owner, err := s.resolveVehicle(ctx, in.VehiclePlate)
	if err != nil {
		return nil, err
	}

	if err := s.ownerRepo.SetHasFines(ctx, owner.TaxID, true); err != nil {
		logger.ExitMethodWithError("fineService.Create", err, "owner", owner.TaxID)
		return nil, fmt.Errorf("flag owner %s: %w", owner.TaxID, err)
	}

	createdAt := s.now().UTC().Truncate(createdAtResolution)
	fine := &domain.Fine{
		ReferenceNumber:      s.newReference(),
		Owner:                domain.SnapshotOwner(owner),
		Vehicle:              domain.SnapshotVehicle(vehicle),
		Officer:              domain.OfficerSnapshot{ID: actor.ID, Name: actor.Name},
		Reason:               in.Reason,
		Amount:               domain.DefaultFineAmount,
		CreatedAt:            createdAt,
		ModificationDeadline: createdAt.Add(domain.ModificationWindow),
	}
	if in.Description != nil {
		fine.Description = *in.Description
	}
	if in.Amount != nil {
		fine.Amount = *in.Amount
	}

	if err := s.fineRepo.Create(ctx, fine); err != nil {
		logger.ExitMethodWithError("fineService.Create", err, "reference", fine.ReferenceNumber)
		return nil, fmt.Errorf("store fine: %w", err)
	}

	if err := s.ledgerRepo.Create(ctx, domain.LedgerEntryFor(fine)); err != nil {
		return nil, s.diverged(opCreate, fine, false, err)
	}

	s.notify(ctx, fine)

	logger.ExitMethod("fineService.Create", "reference", fine.ReferenceNumber)
	return fine, nil
}

func (s *fineService) Read(ctx context.Context, reference string, mode domain.ViewMode) (any, error) {
	fine, err := s.fineRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	switch mode {
	case domain.ViewOwner:
		return domain.NewOwnerFineView(fine), nil
	case domain.ViewAdministration:
		return domain.NewAdministrationFineView(fine), nil
	case domain.ViewMinimal:
		return domain.NewMinimalFineView(fine), nil
	}
	return nil, domain.NewValidationError("view", fmt.Sprintf("unknown view %q", mode))
}

func (s *fineService) Update(ctx context.Context, reference string, patch domain.FinePatch, actor domain.Actor) (*domain.Fine, bool, error) {
	logger.EnterMethod("fineService.Update", "reference", reference, "actor", actor.ID)

	if err := validatePatch(patch); err != nil {
		return nil, false, err
	}

	fine, err := s.fineRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	switch domain.CanMutate(actor.Roles, now, fine.ModificationDeadline) {
	case domain.MutationWindowExpired:
		return nil, false, domain.ErrWindowExpired
	case domain.MutationRoleDenied:
		return nil, false, domain.ErrRoleDenied
	}

	if patch.Delete && domain.RoutesToDelete(actor.Roles, now, fine.ModificationDeadline) {
		if err := s.PermanentDelete(ctx, reference); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	previousOwner := fine.Owner.TaxID
	if patch.VehiclePlate != nil {
		vehicle, owner, err := s.resolveVehicle(ctx, *patch.VehiclePlate)
		if err != nil {
			return nil, false, err
		}
		if err := s.ownerRepo.SetHasFines(ctx, owner.TaxID, true); err != nil {
			return nil, false, fmt.Errorf("flag owner %s: %w", owner.TaxID, err)
		}
		fine.Owner = domain.SnapshotOwner(owner)
		fine.Vehicle = domain.SnapshotVehicle(vehicle)
	}
	if patch.Reason != nil {
		fine.Reason = *patch.Reason
	}
	if patch.Description != nil {
		fine.Description = *patch.Description
	}
	if patch.Amount != nil {
		fine.Amount = *patch.Amount
	}

	if err := s.fineRepo.Update(ctx, fine); err != nil {
		logger.ExitMethodWithError("fineService.Update", err, "reference", reference)
		if previousOwner != fine.Owner.TaxID {
			// The new owner was flagged for a fine that never moved.
			if rerr := s.flags.Recompute(ctx, fine.Owner.TaxID); rerr != nil {
				logger.Warn("New owner flag not restored", "owner", fine.Owner.TaxID, "reference", reference, "error", rerr)
			}
		}
		return nil, false, fmt.Errorf("store fine: %w", err)
	}

	if previousOwner != fine.Owner.TaxID {
		// The fine is saved by now; a failed recompute is logged only.
		if err := s.flags.Recompute(ctx, previousOwner); err != nil {
			logger.Warn("Previous owner flag not recomputed", "owner", previousOwner, "reference", reference, "error", err)
		}
	}

	if err := s.ledgerRepo.UpdateByFineReference(ctx, domain.LedgerEntryFor(fine)); err != nil {
		return nil, false, s.diverged(opUpdate, fine, true, err)
	}

	logger.ExitMethod("fineService.Update", "reference", reference)
	return fine, false, nil
}

// PermanentDelete removes the ledger entry, then the fine, then recomputes the
// owner's flag.
func (s *fineService) PermanentDelete(ctx context.Context, reference string) error {
	logger.EnterMethod("fineService.PermanentDelete", "reference", reference)

	fine, err := s.fineRepo.GetByReference(ctx, reference)
	if err != nil {
		return err
	}

	if err := s.ledgerRepo.DeleteByFineReference(ctx, reference); err != nil {
		if !errors.Is(err, domain.ErrLedgerNotFound) {
			logger.ExitMethodWithError("fineService.PermanentDelete", err, "reference", reference)
			return fmt.Errorf("delete ledger entry: %w", err)
		}
		logger.Warn("Ledger entry already absent", "reference", reference, "owner", fine.Owner.TaxID)
	}

	if err := s.fineRepo.Delete(ctx, reference); err != nil {
		return s.diverged(opDelete, fine, false, err)
	}

	if err := s.flags.Recompute(ctx, fine.Owner.TaxID); err != nil {
		logger.ExitMethodWithError("fineService.PermanentDelete", err, "reference", reference)
		return err
	}

	logger.ExitMethod("fineService.PermanentDelete", "reference", reference)
	return nil
}

// resolveVehicle loads the vehicle and its registered owner.
func (s *fineService) resolveVehicle(ctx context.Context, plate string) (*domain.Vehicle, *domain.Owner, error) {
	vehicle, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		return nil, nil, err
	}
	if vehicle.OwnerTaxID == "" {
		return nil, nil, domain.ErrOwnerNotFound
	}
	owner, err := s.ownerRepo.GetByTaxID(ctx, vehicle.OwnerTaxID)
	if err != nil {
		return nil, nil, err
	}
	return vehicle, owner, nil
}

// diverged records a fine/ledger split and builds the error returned for it.
// In every case the fine store holds the current record; stale means the
// ledger still has the previous version rather than no entry.
func (s *fineService) diverged(op string, fine *domain.Fine, stale bool, err error) error {
	logger.StoreDivergence(op, fine.ReferenceNumber, domain.ArtifactFine, domain.ArtifactLedger, err, "stale", stale, "owner", fine.Owner.TaxID)
	return &domain.InconsistencyError{
		Reference: fine.ReferenceNumber,
		Op:        op,
		Written:   domain.ArtifactFine,
		Missing:   domain.ArtifactLedger,
		Stale:     stale,
		Err:       err,
	}
}

func (s *fineService) notify(ctx context.Context, fine *domain.Fine) {
	if s.notifier == nil {
		return
	}
	event := domain.FineIssuedEvent{
		OwnerName:       fine.Owner.Name,
		OwnerEmail:      fine.Owner.Email,
		ReferenceNumber: fine.ReferenceNumber,
		CreatedAt:       fine.CreatedAt,
		Reason:          fine.Reason,
		Amount:          fine.Amount,
	}
	if err := s.notifier.FineIssued(ctx, event); err != nil {
		logger.Error("Fine notification not handed off", "reference", fine.ReferenceNumber, "error", err)
	}
}

func validateCreate(in CreateFineInput) error {
	if strings.TrimSpace(in.VehiclePlate) == "" {
		return domain.NewValidationError("vehicle", "plate is required")
	}
	if err := validateReason(in.Reason); err != nil {
		return err
	}
	return validateAmount(in.Amount)
}

func validatePatch(p domain.FinePatch) error {
	if p.VehiclePlate != nil && utf8.RuneCountInString(*p.VehiclePlate) < minUpdatePlateLength {
		return domain.NewValidationError("vehicle", fmt.Sprintf("plate must be at least %d characters", minUpdatePlateLength))
	}
	if p.Reason != nil {
		if err := validateReason(*p.Reason); err != nil {
			return err
		}
	}
	return validateAmount(p.Amount)
}

func validateReason(reason string) error {
	if utf8.RuneCountInString(reason) < minReasonLength {
		return domain.NewValidationError("reason", fmt.Sprintf("must be at least %d characters", minReasonLength))
	}
	return nil
}

func validateAmount(amount *float64) error {
	if amount != nil && *amount < 0 {
		return domain.NewValidationError("finesImport", "must not be negative")
	}
	return nil
}

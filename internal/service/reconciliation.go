package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/logger"
	"traffic-fines-backend/internal/repository"
)

// amountTolerance absorbs float rounding between the two stores.
const amountTolerance = 0.005

type reconciliationService struct {
	fineRepo   repository.FineRepository
	ledgerRepo repository.LedgerRepository
	now        func() time.Time
}

func NewReconciliationService(fineRepo repository.FineRepository, ledgerRepo repository.LedgerRepository) ReconciliationService {
	return &reconciliationService{fineRepo: fineRepo, ledgerRepo: ledgerRepo, now: time.Now}
}

// Reconcile matches fines and ledger entries by reference number and reports
// every one-sided record and every field that disagrees. It repairs nothing.
func (s *reconciliationService) Reconcile(ctx context.Context) (*domain.ReconciliationReport, error) {
	report := &domain.ReconciliationReport{
		StartedAt:     s.now().UTC(),
		Discrepancies: make([]domain.Discrepancy, 0),
	}

	fines, err := s.fineRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list fines: %w", err)
	}
	entries, err := s.ledgerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list ledger entries: %w", err)
	}
	report.FinesChecked = len(fines)
	report.LedgerChecked = len(entries)

	ledgerByRef := make(map[string]domain.LedgerEntry, len(entries))
	for _, e := range entries {
		ledgerByRef[e.FineReference] = e
	}

	for i := range fines {
		f := &fines[i]
		e, ok := ledgerByRef[f.ReferenceNumber]
		if !ok {
			report.Discrepancies = append(report.Discrepancies, domain.Discrepancy{
				Type:      domain.DiscrepancyMissingLedger,
				Reference: f.ReferenceNumber,
			})
			continue
		}
		delete(ledgerByRef, f.ReferenceNumber)

		if fields := mismatchedFields(f, &e); len(fields) > 0 {
			report.Discrepancies = append(report.Discrepancies, domain.Discrepancy{
				Type:      domain.DiscrepancyFieldMismatch,
				Reference: f.ReferenceNumber,
				Fields:    fields,
			})
			continue
		}
		report.Matched++
	}

	for ref := range ledgerByRef {
		report.Discrepancies = append(report.Discrepancies, domain.Discrepancy{
			Type:      domain.DiscrepancyOrphanLedger,
			Reference: ref,
		})
	}

	sort.Slice(report.Discrepancies, func(i, j int) bool {
		a, b := report.Discrepancies[i], report.Discrepancies[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Reference < b.Reference
	})

	for _, d := range report.Discrepancies {
		logger.Discrepancy(string(d.Type), d.Reference, "fields", d.Fields)
	}
	logger.Info("Reconciliation finished",
		"fines", report.FinesChecked,
		"ledger", report.LedgerChecked,
		"matched", report.Matched,
		"discrepancies", len(report.Discrepancies),
	)

	return report, nil
}

func mismatchedFields(f *domain.Fine, e *domain.LedgerEntry) []string {
	var fields []string
	if f.Owner.TaxID != e.OwnerTaxID {
		fields = append(fields, "owner")
	}
	if f.Reason != e.Reason {
		fields = append(fields, "reason")
	}
	if math.Abs(f.Amount-e.Amount) > amountTolerance {
		fields = append(fields, "amount")
	}
	if f.Paid != e.Paid {
		fields = append(fields, "paid")
	}
	return fields
}

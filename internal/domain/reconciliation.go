package domain

import "time"

type DiscrepancyType string

const (
	DiscrepancyMissingLedger DiscrepancyType = "FINE_WITHOUT_LEDGER"
	DiscrepancyOrphanLedger  DiscrepancyType = "LEDGER_WITHOUT_FINE"
	DiscrepancyFieldMismatch DiscrepancyType = "FIELD_MISMATCH"
)

type Discrepancy struct {
	Type      DiscrepancyType `json:"type"`
	Reference string          `json:"reference"`
	Fields    []string        `json:"fields,omitempty"`
}

type ReconciliationReport struct {
	StartedAt     time.Time     `json:"started_at"`
	FinesChecked  int           `json:"fines_checked"`
	LedgerChecked int           `json:"ledger_checked"`
	Matched       int           `json:"matched"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

func (r *ReconciliationReport) Clean() bool {
	return len(r.Discrepancies) == 0
}

package domain

import "time"

// LedgerEntry is the accounting-side copy of a fine, queryable by owner.
type LedgerEntry struct {
	ID            int64     `json:"id"`
	OwnerTaxID    string    `json:"ownerTaxId"`
	FineReference string    `json:"fineId"`
	Paid          bool      `json:"isPaid"`
	CreatedAt     time.Time `json:"createdAt"`
	Reason        string    `json:"reason"`
	Amount        float64   `json:"finesImport"`
}

// LedgerEntryFor derives the ledger projection of a fine.
func LedgerEntryFor(f *Fine) *LedgerEntry {
	return &LedgerEntry{
		OwnerTaxID:    f.Owner.TaxID,
		FineReference: f.ReferenceNumber,
		Paid:          f.Paid,
		CreatedAt:     f.CreatedAt,
		Reason:        f.Reason,
		Amount:        f.Amount,
	}
}

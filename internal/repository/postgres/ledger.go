package postgres

import (
	"context"
	"database/sql"
	"errors"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/logger"
	"traffic-fines-backend/internal/repository"
)

const ledgerColumns = `id, user_id, fine_id, is_paid, created_at, reason, fines_import`

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, e *domain.LedgerEntry) error {
	logger.DatabaseCall("INSERT", "fines_history", "fine_id", e.FineReference)
	query := `INSERT INTO fines_history (user_id, fine_id, is_paid, created_at, reason, fines_import)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, e.OwnerTaxID, e.FineReference, e.Paid, e.CreatedAt, e.Reason, e.Amount).Scan(&e.ID)
	logger.DatabaseResult("INSERT", 1, err, "fine_id", e.FineReference)
	return err
}

func (r *ledgerRepository) GetByFineReference(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM fines_history WHERE fine_id = $1`
	e, err := scanLedgerEntry(r.db.QueryRowContext(ctx, query, reference))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrLedgerNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ledgerRepository) UpdateByFineReference(ctx context.Context, e *domain.LedgerEntry) error {
	logger.DatabaseCall("UPDATE", "fines_history", "fine_id", e.FineReference)
	query := `UPDATE fines_history SET user_id = $1, is_paid = $2, reason = $3, fines_import = $4 WHERE fine_id = $5`
	res, err := r.db.ExecContext(ctx, query, e.OwnerTaxID, e.Paid, e.Reason, e.Amount, e.FineReference)
	return r.expectOne(res, err, "UPDATE", e.FineReference)
}

func (r *ledgerRepository) DeleteByFineReference(ctx context.Context, reference string) error {
	logger.DatabaseCall("DELETE", "fines_history", "fine_id", reference)
	res, err := r.db.ExecContext(ctx, `DELETE FROM fines_history WHERE fine_id = $1`, reference)
	return r.expectOne(res, err, "DELETE", reference)
}

func (r *ledgerRepository) MarkPaid(ctx context.Context, reference string) error {
	logger.DatabaseCall("UPDATE", "fines_history", "fine_id", reference, "is_paid", true)
	res, err := r.db.ExecContext(ctx, `UPDATE fines_history SET is_paid = true WHERE fine_id = $1`, reference)
	return r.expectOne(res, err, "UPDATE", reference)
}

func (r *ledgerRepository) ListByOwner(ctx context.Context, ownerTaxID string, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	offset := int64(page-1) * int64(pageSize)
	query := `SELECT ` + ledgerColumns + ` FROM fines_history WHERE user_id = $1 ORDER BY created_at DESC, id ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerTaxID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	err = r.db.QueryRowContext(ctx, `SELECT count(*) FROM fines_history WHERE user_id = $1`, ownerTaxID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}
	return entries, count, nil
}

func (r *ledgerRepository) ListAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ledgerColumns+` FROM fines_history ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLedgerEntries(rows)
}

func (r *ledgerRepository) expectOne(res sql.Result, err error, op, reference string) error {
	if err != nil {
		logger.DatabaseResult(op, 0, err, "fine_id", reference)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult(op, n, err, "fine_id", reference)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrLedgerNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLedgerEntry(row rowScanner) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	if err := row.Scan(&e.ID, &e.OwnerTaxID, &e.FineReference, &e.Paid, &e.CreatedAt, &e.Reason, &e.Amount); err != nil {
		return nil, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}

func collectLedgerEntries(rows *sql.Rows) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/logger"
	"traffic-fines-backend/internal/repository"
)

type ownerRepository struct {
	db *sql.DB
}

func NewOwnerRepository(db *sql.DB) repository.OwnerRepository {
	return &ownerRepository{db: db}
}

func (r *ownerRepository) GetByTaxID(ctx context.Context, taxID string) (*domain.Owner, error) {
	o := &domain.Owner{}
	query := `SELECT id, dni, name, lastname1, lastname2, direction, zipcode, town, email, has_fines, is_deleted
	          FROM users WHERE dni = $1`
	err := r.db.QueryRowContext(ctx, query, taxID).Scan(&o.ID, &o.TaxID, &o.Name, &o.LastName1, &o.LastName2,
		&o.Address, &o.PostalCode, &o.Town, &o.Email, &o.HasFines, &o.IsDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOwnerNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// SetHasFines writes the derived has-fines flag of an owner.
func (r *ownerRepository) SetHasFines(ctx context.Context, taxID string, hasFines bool) error {
	logger.DatabaseCall("UPDATE", "users", "dni", taxID, "has_fines", hasFines)
	query := `UPDATE users SET has_fines = $1, updated_at = $2 WHERE dni = $3`
	res, err := r.db.ExecContext(ctx, query, hasFines, time.Now().UTC(), taxID)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "dni", taxID)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err, "dni", taxID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrOwnerNotFound
	}
	return nil
}

package postgres

import (
	"database/sql"

	"traffic-fines-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles every Postgres-backed repository over one connection pool.
type Store struct {
	db *sql.DB
	repository.LedgerRepository
	repository.OwnerRepository
	repository.VehicleRepository
	repository.AccountRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		LedgerRepository:  NewLedgerRepository(db),
		OwnerRepository:   NewOwnerRepository(db),
		VehicleRepository: NewVehicleRepository(db),
		AccountRepository: NewAccountRepository(db),
	}
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT v.id, v.linces_plate, v.chassis, v.mark, v.model, v.year, v.colour, v.type_vehicle,
	                 v.registration_document, v.insurance, v.active, COALESCE(u.dni, '')
	          FROM vehicles v LEFT JOIN users u ON u.id = v.user_id
	          WHERE v.linces_plate = $1`
	err := r.db.QueryRowContext(ctx, query, plate).Scan(&v.ID, &v.Plate, &v.Chassis, &v.Make, &v.Model, &v.Year,
		&v.Colour, &v.Category, &v.RegistrationDocument, &v.Insurance, &v.Active, &v.OwnerTaxID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

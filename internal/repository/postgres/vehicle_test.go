package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/repository/postgres"
)

func TestVehicleRepository_GetByPlate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewVehicleRepository(db)
	ctx := context.Background()
	cols := []string{"id", "linces_plate", "chassis", "mark", "model", "year", "colour", "type_vehicle", "registration_document", "insurance", "active", "dni"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM vehicles v LEFT JOIN users u").
			WithArgs("1234ABC").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("v-1", "1234ABC", "VIN1", "Seat", "Ibiza", 2019, "red", "car", true, true, true, "11111111A"))

		v, err := repo.GetByPlate(ctx, "1234ABC")
		require.NoError(t, err)
		assert.Equal(t, "11111111A", v.OwnerTaxID)
		assert.Equal(t, 2019, v.Year)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM vehicles").
			WithArgs("0000XXX").
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetByPlate(ctx, "0000XXX")
		assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

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

func TestOwnerRepository_GetByTaxID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewOwnerRepository(db)
	ctx := context.Background()
	cols := []string{"id", "dni", "name", "lastname1", "lastname2", "direction", "zipcode", "town", "email", "has_fines", "is_deleted"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE dni = \\$1").
			WithArgs("11111111A").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("u-1", "11111111A", "Ana", "Garcia", "Lopez", "Calle 1", "28001", "Madrid", "ana@example.com", false, false))

		o, err := repo.GetByTaxID(ctx, "11111111A")
		require.NoError(t, err)
		assert.Equal(t, "Ana", o.Name)
		assert.Equal(t, "28001", o.PostalCode)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetByTaxID(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrOwnerNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnerRepository_SetHasFines(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewOwnerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET has_fines = \\$1").
			WithArgs(true, sqlmock.AnyArg(), "11111111A").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetHasFines(ctx, "11111111A", true))
	})

	t.Run("Unknown owner", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET has_fines").
			WithArgs(false, sqlmock.AnyArg(), "nobody").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetHasFines(ctx, "nobody", false), domain.ErrOwnerNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

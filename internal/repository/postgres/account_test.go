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

func TestAccountRepository_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewAccountRepository(db)
	ctx := context.Background()
	cols := []string{"id", "kind", "username", "password", "dni", "name", "roles"}

	t.Run("Officer", func(t *testing.T) {
		mock.ExpectQuery("FROM police p LEFT JOIN user_roles").
			WithArgs("agent7").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("p-7", "OFFICER", "agent7", "$2a$hash", "33333333C", "Agent", "{POLICE,UNKNOWN}"))

		a, err := repo.GetByUsername(ctx, "agent7")
		require.NoError(t, err)
		assert.Equal(t, domain.AccountKindOfficer, a.Kind)
		assert.Equal(t, []domain.Role{domain.RolePolice}, a.Roles)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("FROM police p").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/security"
	"traffic-fines-backend/internal/service"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := security.NewTokenManager("test-secret", time.Hour)
	officer := &domain.Account{
		ID:           "7",
		Kind:         domain.AccountKindOfficer,
		Username:     "agent7",
		PasswordHash: string(hash),
		TaxID:        "99999999Z",
		Name:         "Marta",
		Roles:        []domain.Role{domain.RolePolice},
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("GetByUsername", ctx, "agent7").Return(officer, nil)

		token, account, err := service.NewAuthService(repo, tokens).Login(ctx, "agent7", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "7", account.ID)

		claims, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "7", claims.AccountID)
		assert.True(t, claims.Actor().Roles.Has(domain.RolePolice))
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("GetByUsername", ctx, "agent7").Return(officer, nil)

		_, _, err := service.NewAuthService(repo, tokens).Login(ctx, "agent7", "guess")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Unknown user", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, _, err := service.NewAuthService(repo, tokens).Login(ctx, "ghost", "s3cret")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Store failure", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("GetByUsername", ctx, "agent7").Return(nil, errors.New("connection reset"))

		_, _, err := service.NewAuthService(repo, tokens).Login(ctx, "agent7", "s3cret")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/logger"
	"traffic-fines-backend/internal/repository"
	"traffic-fines-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type authService struct {
	accountRepo  repository.AccountRepository
	tokenManager security.TokenManager
}

func NewAuthService(accountRepo repository.AccountRepository, tokenManager security.TokenManager) AuthService {
	return &authService{accountRepo: accountRepo, tokenManager: tokenManager}
}

// Login checks the password of an owner or officer account and issues an
// access token carrying its roles.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Login rejected", "username", username)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateAccessToken(account)
	if err != nil {
		return "", nil, err
	}
	logger.Info("Login succeeded", "account", account.ID, "kind", account.Kind)
	return token, account, nil
}

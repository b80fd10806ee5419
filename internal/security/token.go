package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"traffic-fines-backend/internal/domain"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const TokenTypeAccess TokenType = "access"

const issuer = "traffic-fines"

// ActorClaims carries the identity the API resolves into a domain.Actor.
type ActorClaims struct {
	AccountID string             `json:"id"`
	Kind      domain.AccountKind `json:"kind"`
	TaxID     string             `json:"dni"`
	Name      string             `json:"name"`
	Type      TokenType          `json:"type"`
	Roles     []string           `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts the claims into the caller identity used by the services.
// Unknown role names are dropped.
func (c *ActorClaims) Actor() domain.Actor {
	roles := make(domain.RoleSet, 0, len(c.Roles))
	for _, s := range c.Roles {
		if r, ok := domain.ParseRole(s); ok {
			roles = append(roles, r)
		}
	}
	return domain.Actor{ID: c.AccountID, TaxID: c.TaxID, Name: c.Name, Roles: roles}
}

type TokenManager interface {
	GenerateAccessToken(account *domain.Account) (string, error)
	ValidateToken(tokenString string) (*ActorClaims, error)
}

type tokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *tokenManager) GenerateAccessToken(account *domain.Account) (string, error) {
	roles := make([]string, len(account.Roles))
	for i, r := range account.Roles {
		roles[i] = string(r)
	}
	now := m.now()
	claims := ActorClaims{
		AccountID: account.ID,
		Kind:      account.Kind,
		TaxID:     account.TaxID,
		Name:      account.Name,
		Type:      TokenTypeAccess,
		Roles:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{"api-access"},
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*ActorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ActorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ActorClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != TokenTypeAccess {
		return nil, ErrWrongTokenType
	}
	if claims.AccountID == "" {
		claims.AccountID = claims.Subject
	}
	return claims, nil
}

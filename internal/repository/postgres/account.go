package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/repository"
)

// ErrAccountNotFound is returned when no owner or officer has the username.
var ErrAccountNotFound = fmt.Errorf("%w: account was not found", domain.ErrNotFound)

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// GetByUsername looks the username up among officers first, then owners.
// Deleted accounts are never returned.
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT p.identification::text, 'OFFICER', p.username, p.password, p.dni, p.name,
	                 COALESCE(array_agg(ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}')
	          FROM police p LEFT JOIN user_roles ur ON ur.police_id = p.identification
	          WHERE p.username = $1 AND p.is_deleted = false
	          GROUP BY p.identification
	          UNION ALL
	          SELECT u.id::text, 'OWNER', u.username, u.password, u.dni, u.name,
	                 COALESCE(array_agg(ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}')
	          FROM users u LEFT JOIN user_roles ur ON ur.user_id = u.id
	          WHERE u.username = $1 AND u.is_deleted = false
	          GROUP BY u.id
	          LIMIT 1`

	a := &domain.Account{}
	var kind string
	var roles []string
	err := r.db.QueryRowContext(ctx, query, username).Scan(&a.ID, &kind, &a.Username, &a.PasswordHash, &a.TaxID, &a.Name, pq.Array(&roles))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Kind = domain.AccountKind(kind)
	for _, s := range roles {
		if role, ok := domain.ParseRole(s); ok {
			a.Roles = append(a.Roles, role)
		}
	}
	return a, nil
}

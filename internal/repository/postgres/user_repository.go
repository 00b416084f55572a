package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, display_name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		user.Email, user.PasswordHash, user.DisplayName, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT id, email, password_hash, display_name, created_at
		FROM users
		WHERE email = $1
	`
	if err := sqlx.GetContext(ctx, r.db, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

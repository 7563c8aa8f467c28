package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nectarnook/catalog-api/internal/core/domain"
)

const usersTable = "users"

const uniqueViolation = "23505"

// AuthRepository is the PostgreSQL implementation of ports.AuthRepository.
type AuthRepository struct {
	db *sql.DB
}

func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := psql.Select("id", "username", "password_hash", "is_admin").
		From(usersTable).
		Where(squirrel.Eq{"username": username}).
		RunWith(r.db).
		QueryRowContext(ctx)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user inside one transaction: the username is checked
// for uniqueness before the insert, and the UNIQUE constraint backstops
// concurrent registrations that race past the check.
func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create user: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	err = psql.Select("COUNT(*)").
		From(usersTable).
		Where(squirrel.Eq{"username": user.Username}).
		RunWith(tx).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("create user: check username: %w", err)
	}
	if count > 0 {
		return nil, domain.ErrUserExists
	}

	var id int64
	err = psql.Insert(usersTable).
		SetMap(map[string]interface{}{
			"username":      user.Username,
			"password_hash": user.PasswordHash,
			"is_admin":      user.IsAdmin,
		}).
		Suffix("RETURNING id").
		RunWith(tx).
		QueryRowContext(ctx).
		Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create user: commit: %w", err)
	}

	created := *user
	created.ID = id
	return &created, nil
}

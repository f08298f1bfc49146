package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/schoolcloud/identity/internal/common"
	"github.com/schoolcloud/identity/internal/dbx"
	"github.com/schoolcloud/identity/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (email, role, school_id, dob, enc, salt, pwh, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (email) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query,
		user.Email, user.Role.String(), user.SchoolID, user.DOB, user.Encryption,
		user.Salt, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert user: %v", common.ErrorStorage, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: insert user: %v", common.ErrorStorage, err)
	}
	if affected == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT email, role, school_id, dob, enc, salt, pwh, created_at FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	var role string
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.Email, &role, &user.SchoolID, &user.DOB, &user.Encryption,
		&user.Salt, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: select user: %v", common.ErrorStorage, err)
	}

	user.Role = models.Role(role)
	return user, nil
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, email string, role models.Role) error {
	query :=
		`UPDATE users SET role = $2
		 WHERE email = $1
		 `
	return r.update(ctx, query, email, role.String())
}

func (r *PostgresRepository) UpdateEncryption(ctx context.Context, email, policy string) error {
	query :=
		`UPDATE users SET enc = $2
		 WHERE email = $1
		 `
	return r.update(ctx, query, email, policy)
}

func (r *PostgresRepository) update(ctx context.Context, query, email, value string) error {
	res, err := r.db.ExecContext(ctx, query, email, value)
	if err != nil {
		return fmt.Errorf("%w: update user: %v", common.ErrorStorage, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update user: %v", common.ErrorStorage, err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

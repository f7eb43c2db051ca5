package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"vcardqr/internal/entity"
	"vcardqr/pkg/postgres"
	"vcardqr/pkg/types/errs"
)

const (
	// Table
	usersTable = "users"

	// Columns
	userIDColumn           = "id"
	userUsernameColumn     = "username"
	userPasswordHashColumn = "password_hash"
	userIsAdminColumn      = "is_admin"
	userCreatedAtColumn    = "created_at"
	userUpdatedAtColumn    = "updated_at"
)

const uniqueViolationCode = "23505"

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pg *postgres.Postgres) *UserRepo {
	return &UserRepo{pg}
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	sql, args, err := r.Builder.
		Insert(usersTable).
		Columns(
			userIDColumn,
			userUsernameColumn,
			userPasswordHashColumn,
			userIsAdminColumn,
			userCreatedAtColumn,
			userUpdatedAtColumn,
		).
		Values(
			user.ID,
			user.Username,
			user.PasswordHash,
			user.IsAdmin,
			user.CreatedAt,
			user.UpdatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("UserRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("UserRepo - Create: %w", errs.ErrUsernameTaken)
		}
		return fmt.Errorf("UserRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.getOne(ctx, squirrel.Eq{userIDColumn: id}, "GetByID")
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, squirrel.Eq{userUsernameColumn: username}, "GetByUsername")
}

func (r *UserRepo) getOne(ctx context.Context, where squirrel.Eq, op string) (*entity.User, error) {
	sql, args, err := r.Builder.
		Select(
			userIDColumn,
			userUsernameColumn,
			userPasswordHashColumn,
			userIsAdminColumn,
			userCreatedAtColumn,
			userUpdatedAtColumn,
		).
		From(usersTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("UserRepo - %s - r.Builder.ToSql: %w", op, err)
	}

	executor := r.GetExecutor(ctx)

	var user entity.User
	err = executor.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("UserRepo - %s: %w", op, errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("UserRepo - %s - executor.QueryRow: %w", op, err)
	}

	return &user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	sql, args, err := r.Builder.
		Select(
			userIDColumn,
			userUsernameColumn,
			userPasswordHashColumn,
			userIsAdminColumn,
			userCreatedAtColumn,
			userUpdatedAtColumn,
		).
		From(usersTable).
		OrderBy(userCreatedAtColumn + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("UserRepo - List - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("UserRepo - List - executor.Query: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var user entity.User
		err = rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.IsAdmin,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("UserRepo - List - rows.Scan: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("UserRepo - List - rows.Err: %w", err)
	}

	return users, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.Builder.
		Select("COUNT(*)").
		From(usersTable).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("UserRepo - Count - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var count int64
	err = executor.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("UserRepo - Count - executor.QueryRow: %w", err)
	}

	return count, nil
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	sql, args, err := r.Builder.
		Update(usersTable).
		Set(userUsernameColumn, user.Username).
		Set(userIsAdminColumn, user.IsAdmin).
		Set(userUpdatedAtColumn, user.UpdatedAt).
		Where(squirrel.Eq{userIDColumn: user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepo - Update - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("UserRepo - Update: %w", errs.ErrUsernameTaken)
		}
		return fmt.Errorf("UserRepo - Update - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UserRepo - Update: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	sql, args, err := r.Builder.
		Update(usersTable).
		Set(userPasswordHashColumn, passwordHash).
		Set(userUpdatedAtColumn, squirrel.Expr("NOW()")).
		Where(squirrel.Eq{userIDColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepo - UpdatePassword - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("UserRepo - UpdatePassword - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UserRepo - UpdatePassword: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.Builder.
		Delete(usersTable).
		Where(squirrel.Eq{userIDColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("UserRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UserRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}

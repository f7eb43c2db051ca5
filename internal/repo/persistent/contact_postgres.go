package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"vcardqr/internal/entity"
	"vcardqr/pkg/postgres"
	"vcardqr/pkg/types/errs"
)

const (
	// Table
	contactsTable = "contacts"

	// Columns
	contactIDColumn         = "id"
	contactFirstNameColumn  = "first_name"
	contactLastNameColumn   = "last_name"
	contactMobileColumn     = "mobile"
	contactWorkColumn       = "work"
	contactEmailColumn      = "email"
	contactCompanyColumn    = "company"
	contactRoleColumn       = "role"
	contactStreetColumn     = "street"
	contactCityColumn       = "city"
	contactStateColumn      = "state"
	contactWebsiteColumn    = "website"
	contactColorColumn      = "color"
	contactArchiveKeyColumn = "archive_key"
	contactCreatedAtColumn  = "created_at"
)

type ContactRepo struct {
	*postgres.Postgres
}

func NewContactRepo(pg *postgres.Postgres) *ContactRepo {
	return &ContactRepo{pg}
}

func (r *ContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	sql, args, err := r.Builder.
		Insert(contactsTable).
		Columns(
			contactIDColumn,
			contactFirstNameColumn,
			contactLastNameColumn,
			contactMobileColumn,
			contactWorkColumn,
			contactEmailColumn,
			contactCompanyColumn,
			contactRoleColumn,
			contactStreetColumn,
			contactCityColumn,
			contactStateColumn,
			contactWebsiteColumn,
			contactColorColumn,
			contactArchiveKeyColumn,
			contactCreatedAtColumn,
		).
		Values(
			contact.ID,
			contact.FirstName,
			contact.LastName,
			contact.Mobile,
			contact.Work,
			contact.Email,
			contact.Company,
			contact.Role,
			contact.Street,
			contact.City,
			contact.State,
			contact.Website,
			contact.Color,
			contact.ArchiveKey,
			contact.CreatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("ContactRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ContactRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	sql, args, err := r.Builder.
		Select(
			contactIDColumn,
			contactFirstNameColumn,
			contactLastNameColumn,
			contactMobileColumn,
			contactWorkColumn,
			contactEmailColumn,
			contactCompanyColumn,
			contactRoleColumn,
			contactStreetColumn,
			contactCityColumn,
			contactStateColumn,
			contactWebsiteColumn,
			contactColorColumn,
			contactArchiveKeyColumn,
			contactCreatedAtColumn,
		).
		From(contactsTable).
		Where(squirrel.Eq{contactIDColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ContactRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var contact entity.Contact
	err = executor.QueryRow(ctx, sql, args...).Scan(
		&contact.ID,
		&contact.FirstName,
		&contact.LastName,
		&contact.Mobile,
		&contact.Work,
		&contact.Email,
		&contact.Company,
		&contact.Role,
		&contact.Street,
		&contact.City,
		&contact.State,
		&contact.Website,
		&contact.Color,
		&contact.ArchiveKey,
		&contact.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ContactRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("ContactRepo - GetByID - executor.QueryRow: %w", err)
	}

	return &contact, nil
}

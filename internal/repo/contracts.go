package repo

import (
	"context"

	"github.com/google/uuid"

	"vcardqr/internal/entity"
)

type (
	ContactRepo interface {
		Create(ctx context.Context, contact *entity.Contact) error
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	}

	UserRepo interface {
		Create(ctx context.Context, user *entity.User) error
		GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
		GetByUsername(ctx context.Context, username string) (*entity.User, error)
		List(ctx context.Context) ([]*entity.User, error)
		Count(ctx context.Context) (int64, error)
		Update(ctx context.Context, user *entity.User) error
		UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	OutboxCardRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error
		IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		DeleteOldProcessedAndFailed(ctx context.Context) (int64, error)
	}

	// ArchiveRepo keeps rendered card images in object storage.
	ArchiveRepo interface {
		UploadBytes(ctx context.Context, key string, data []byte, contentType string, size int64) error
		Delete(ctx context.Context, key string) error
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)

package usecase

import (
	"context"

	"github.com/google/uuid"

	"vcardqr/internal/dto"
	"vcardqr/internal/entity"
)

type (
	CardUseCase interface {
		GenerateCard(ctx context.Context, card dto.Card) (*entity.EncodedCard, error)
		GetCard(ctx context.Context, id uuid.UUID) (*entity.EncodedCard, error)
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		CleanupOutbox(ctx context.Context) error
	}

	UserUseCase interface {
		EnsureDefaultAdmin(ctx context.Context) error
		Authenticate(ctx context.Context, username, password string) (string, error)
		ParseToken(token string) (*entity.TokenClaims, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
		ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error
		ListUsers(ctx context.Context) ([]*entity.User, error)
		CreateUser(ctx context.Context, username, password string, isAdmin bool) (*entity.User, error)
		UpdateUser(ctx context.Context, id uuid.UUID, username, password string, isAdmin bool) error
		DeleteUser(ctx context.Context, actorID, id uuid.UUID) error
	}
)

package card

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vcardqr/internal/dto"
	"vcardqr/internal/entity"
	"vcardqr/internal/infrastructure"
	"vcardqr/internal/repo"
	"vcardqr/pkg/logger"
)

const archiveContentType = "image/png"

type CardUseCase struct {
	contactRepo repo.ContactRepo
	outboxRepo  repo.OutboxCardRepo
	archiveRepo repo.ArchiveRepo
	transactor  repo.Transactor
	encoder     infrastructure.CardEncoder

	logger logger.Interface
}

func New(
	contactRepo repo.ContactRepo,
	outboxRepo repo.OutboxCardRepo,
	archiveRepo repo.ArchiveRepo,
	transactor repo.Transactor,
	enc infrastructure.CardEncoder,
	l logger.Interface,
) *CardUseCase {
	return &CardUseCase{
		contactRepo: contactRepo,
		outboxRepo:  outboxRepo,
		archiveRepo: archiveRepo,
		transactor:  transactor,
		encoder:     enc,
		logger:      l,
	}
}

// GenerateCard encodes the contact into a QR data URI, archives the PNG in
// object storage and records the contact plus an outbox event in one
// transaction. Encoding runs first so an oversized payload fails before
// anything is written.
func (uc *CardUseCase) GenerateCard(ctx context.Context, card dto.Card) (*entity.EncodedCard, error) {
	contact := entity.Contact{
		ID:        uuid.New(),
		FirstName: card.FirstName,
		LastName:  card.LastName,
		Mobile:    card.Mobile,
		Work:      card.Work,
		Email:     card.Email,
		Company:   card.Company,
		Role:      card.Role,
		Street:    card.Street,
		City:      card.City,
		State:     card.State,
		Website:   card.Website,
		Color:     card.Color,
		CreatedAt: time.Now(),
	}

	// 1. encode
	encoded, err := uc.encoder.Encode(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("CardUseCase - GenerateCard - uc.encoder.Encode: %w", err)
	}

	// 2. archive the rendered PNG
	contact.ArchiveKey = fmt.Sprintf("cards/%s.png", contact.ID)

	err = uc.archiveRepo.UploadBytes(ctx, contact.ArchiveKey, encoded.PNG, archiveContentType, int64(len(encoded.PNG)))
	if err != nil {
		return nil, fmt.Errorf("CardUseCase - GenerateCard - uc.archiveRepo.UploadBytes: %w", err)
	}

	// 3. contact row + outbox event in one transaction
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.contactRepo.Create(ctx, &contact); err != nil {
			return fmt.Errorf("CardUseCase - GenerateCard - uc.contactRepo.Create: %w", err)
		}

		event, err := uc.createOutboxEvent(&contact)
		if err != nil {
			return fmt.Errorf("CardUseCase - GenerateCard - uc.createOutboxEvent: %w", err)
		}
		if err := uc.outboxRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("CardUseCase - GenerateCard - uc.outboxRepo.Create: %w", err)
		}

		return nil
	})

	// transaction failed, remove the archived object
	if err != nil {
		deleteErr := uc.archiveRepo.Delete(ctx, contact.ArchiveKey)
		if deleteErr != nil {
			uc.logger.Error(deleteErr, "CardUseCase - GenerateCard - uc.archiveRepo.Delete")
		}
		return nil, fmt.Errorf("CardUseCase - GenerateCard - uc.transactor.WithinTransaction: %w", err)
	}

	return encoded, nil
}

// GetCard re-runs the encode pipeline for a stored contact. Encoding is
// deterministic, so the result matches what GenerateCard returned.
func (uc *CardUseCase) GetCard(ctx context.Context, id uuid.UUID) (*entity.EncodedCard, error) {
	contact, err := uc.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("CardUseCase - GetCard - uc.contactRepo.GetByID: %w", err)
	}

	encoded, err := uc.encoder.Encode(ctx, *contact)
	if err != nil {
		return nil, fmt.Errorf("CardUseCase - GetCard - uc.encoder.Encode: %w", err)
	}

	return encoded, nil
}

func (uc *CardUseCase) GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	events, err := uc.outboxRepo.GetPendingEvents(ctx, maxRetries, limit)
	if err != nil {
		return nil, fmt.Errorf("CardUseCase - GetPendingEvents - uc.outboxRepo.GetPendingEvents: %w", err)
	}

	return events, nil
}

func (uc *CardUseCase) MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.MarkAsProcessingBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("CardUseCase - MarkAsProcessingBatch - uc.outboxRepo.MarkAsProcessingBatch: %w", err)
	}

	return nil
}

func (uc *CardUseCase) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.MarkAsProcessedBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("CardUseCase - MarkAsProcessedBatch - uc.outboxRepo.MarkAsProcessedBatch: %w", err)
	}

	return nil
}

func (uc *CardUseCase) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.IncrementRetryCountBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("CardUseCase - IncrementRetryCountBatch - uc.outboxRepo.IncrementRetryCountBatch: %w", err)
	}

	return nil
}

func (uc *CardUseCase) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	err := uc.outboxRepo.MarkMaxRetriesAsFailed(ctx, maxRetries)
	if err != nil {
		return fmt.Errorf("CardUseCase - MarkMaxRetriesAsFailed - uc.outboxRepo.MarkMaxRetriesAsFailed: %w", err)
	}

	return nil
}

func (uc *CardUseCase) CleanupOutbox(ctx context.Context) error {
	count, err := uc.outboxRepo.DeleteOldProcessedAndFailed(ctx)
	if err != nil {
		return fmt.Errorf("CardUseCase - CleanupOutbox - uc.outboxRepo.DeleteOldProcessedAndFailed: %w", err)
	}

	if count > 0 {
		uc.logger.Info("deleted old events, count = %d", count)
	}

	return nil
}

func eventIDs(events []*entity.OutboxEvent) uuid.UUIDs {
	var IDs uuid.UUIDs

	for _, event := range events {
		IDs = append(IDs, event.ID)
	}

	return IDs
}

package infrastructure

import (
	"context"

	"vcardqr/internal/entity"
)

type (
	// CardEncoder runs the pure encode pipeline for one contact.
	CardEncoder interface {
		Encode(ctx context.Context, contact entity.Contact) (*entity.EncodedCard, error)
	}

	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}
)

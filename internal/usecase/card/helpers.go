package card

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vcardqr/internal/entity"
)

func (uc *CardUseCase) createOutboxEvent(contact *entity.Contact) (*entity.OutboxEvent, error) {
	payload := map[string]interface{}{
		"id":          contact.ID,
		"archive_key": contact.ArchiveKey,
		"first_name":  contact.FirstName,
		"last_name":   contact.LastName,
		"created_at":  contact.CreatedAt,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("CardUseCase - createOutboxEvent - json.Marshal: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: contact.ID,
		Payload:     b,
		Status:      entity.Pending,
		CreatedAt:   time.Now(),
		RetryCount:  0,
	}, nil
}

// Package encoder implements the contact-card encode pipeline: vCard
// serialization, QR symbol generation, pixel compositing and PNG/data-URI
// container encoding. Every stage is a pure function of its inputs; the
// same contact always yields byte-identical output.
package encoder

import (
	"context"
	"fmt"

	"vcardqr/internal/entity"
)

type CardEncoder struct {
}

func New() *CardEncoder {
	return &CardEncoder{}
}

// Encode runs the full pipeline: contact -> vCard text -> module matrix ->
// pixel buffer -> PNG bytes + data URI. Serialization and color resolution
// are total; the only failures are an oversized payload and a container
// codec fault.
func (e *CardEncoder) Encode(ctx context.Context, contact entity.Contact) (*entity.EncodedCard, error) {
	card := VCard(contact)
	fg := ResolveColor(contact.Color)

	matrix, err := EncodeSymbol(card)
	if err != nil {
		return nil, fmt.Errorf("CardEncoder - Encode - EncodeSymbol: %w", err)
	}

	img := Rasterize(matrix, fg)

	encoded, err := EncodeContainer(img)
	if err != nil {
		return nil, fmt.Errorf("CardEncoder - Encode - EncodeContainer: %w", err)
	}

	return encoded, nil
}

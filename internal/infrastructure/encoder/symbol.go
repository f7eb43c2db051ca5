package encoder

import (
	"errors"

	qrgen "github.com/skip2/go-qrcode"

	"vcardqr/pkg/types/errs"
)

// EncodeSymbol converts serialized card text into a square boolean module
// matrix (true = dark) at medium error-correction level. Version and mask
// selection are the library's, and are deterministic for a given input.
// The quiet zone is left to the compositor, so the border is disabled here.
func EncodeSymbol(card string) ([][]bool, error) {
	qr, err := qrgen.New(card, qrgen.Medium)
	if err != nil {
		// The only failure mode for well-formed text is exceeding the
		// capacity of the largest symbol version.
		return nil, errors.Join(errs.ErrPayloadTooLarge, err)
	}

	qr.DisableBorder = true

	return qr.Bitmap(), nil
}

package encoder

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"vcardqr/internal/entity"
	"vcardqr/pkg/types/errs"
)

// DataURIPrefix declares the container format and transport encoding of
// the final string, making it usable directly as an image source.
const DataURIPrefix = "data:image/png;base64,"

// EncodeContainer serializes the pixel buffer losslessly into a PNG and
// wraps the bytes in a base64 data URI.
func EncodeContainer(img image.Image) (*entity.EncodedCard, error) {
	var buf bytes.Buffer

	err := imaging.Encode(&buf, img, imaging.PNG)
	if err != nil {
		return nil, errors.Join(errs.ErrContainerEncode, err)
	}

	png := buf.Bytes()

	return &entity.EncodedCard{
		PNG:     png,
		DataURI: DataURIPrefix + base64.StdEncoding.EncodeToString(png),
	}, nil
}

package encoder

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"

	"vcardqr/internal/entity"
)

func decodeDataURI(t *testing.T, dataURI string) []byte {
	t.Helper()

	if !strings.HasPrefix(dataURI, DataURIPrefix) {
		t.Fatalf("missing data URI prefix: %q", dataURI[:min(len(dataURI), 40)])
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURI, DataURIPrefix))
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}

	return raw
}

func TestEncodeRoundTrip(t *testing.T) {
	contact := entity.Contact{
		FirstName: "Jane",
		LastName:  "Smith",
		Mobile:    "+1-555-0001",
		Email:     "jane@example.com",
		Company:   "Acme",
	}

	encoded, err := New().Encode(context.Background(), contact)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	raw := decodeDataURI(t, encoded.DataURI)
	if !bytes.Equal(raw, encoded.PNG) {
		t.Error("data URI payload differs from PNG bytes")
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a valid PNG: %v", err)
	}

	// Pixel dimensions match (side + 2q) * s.
	matrix, err := EncodeSymbol(VCard(contact))
	if err != nil {
		t.Fatalf("EncodeSymbol failed: %v", err)
	}
	want := (len(matrix) + 2*quietZone) * moduleScale
	if img.Bounds().Dx() != want || img.Bounds().Dy() != want {
		t.Errorf("image is %dx%d, want %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), want, want)
	}

	// The symbol scans back to the exact serialized card.
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("gozxing.NewBinaryBitmapFromImage failed: %v", err)
	}
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("QR decode failed: %v", err)
	}
	if result.GetText() != VCard(contact) {
		t.Errorf("scanned text mismatch:\ngot:  %q\nwant: %q", result.GetText(), VCard(contact))
	}
}

func TestEncodeIdempotent(t *testing.T) {
	contact := entity.Contact{FirstName: "John", LastName: "Doe", Color: "#336699"}

	enc := New()

	first, err := enc.Encode(context.Background(), contact)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	second, err := enc.Encode(context.Background(), contact)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if !bytes.Equal(first.PNG, second.PNG) {
		t.Error("identical input produced different PNG bytes")
	}
	if first.DataURI != second.DataURI {
		t.Error("identical input produced different data URIs")
	}
}

func TestEncodeForegroundColor(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want color.NRGBA
	}{
		{"default_black", "", color.NRGBA{A: 255}},
		{"red", "#FF0000", color.NRGBA{R: 255, A: 255}},
		{"malformed_falls_back", "#ZZZZZZ", color.NRGBA{A: 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			contact := entity.Contact{FirstName: "John", LastName: "Doe", Color: tc.spec}

			encoded, err := New().Encode(context.Background(), contact)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			img, err := png.Decode(bytes.NewReader(decodeDataURI(t, encoded.DataURI)))
			if err != nil {
				t.Fatalf("png.Decode failed: %v", err)
			}

			// The top-left finder pattern corner is always a dark module;
			// sample the center of its pixel block.
			p := quietZone*moduleScale + moduleScale/2
			got := color.NRGBAModel.Convert(img.At(p, p)).(color.NRGBA)
			if got != tc.want {
				t.Errorf("dark module pixel = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEncodePayloadTooLarge(t *testing.T) {
	contact := entity.Contact{
		FirstName: "John",
		LastName:  "Doe",
		Company:   strings.Repeat("x", 4000),
	}

	_, err := New().Encode(context.Background(), contact)
	if err == nil {
		t.Fatal("expected error for oversized payload")
	}
}

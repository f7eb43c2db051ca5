package encoder

import (
	"encoding/hex"
	"image/color"
	"strings"
)

// defaultForeground is opaque black, used whenever the color spec is
// absent or malformed. Color is cosmetic and must never block generation.
var defaultForeground = color.NRGBA{A: 255}

// ResolveColor parses a "#RRGGBB" spec (the leading marker is optional)
// into an opaque color. It is total: anything that is not exactly six hex
// digits resolves to black.
func ResolveColor(spec string) color.NRGBA {
	h := strings.TrimPrefix(spec, "#")
	if len(h) != 6 {
		return defaultForeground
	}

	b, err := hex.DecodeString(h)
	if err != nil {
		return defaultForeground
	}

	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 255}
}

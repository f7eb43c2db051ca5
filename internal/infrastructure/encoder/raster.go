package encoder

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	// quietZone is the blank border around the symbol, in module units.
	quietZone = 4
	// moduleScale is the side of the pixel block drawn per module.
	moduleScale = 8
)

// Rasterize maps a module matrix onto a pixel buffer: white background,
// dark modules painted with the foreground color as moduleScale-sized
// blocks. Light modules and the quiet zone are never painted, so the
// result is always color-on-white.
func Rasterize(matrix [][]bool, fg color.NRGBA) *image.NRGBA {
	side := len(matrix)
	dim := (side + 2*quietZone) * moduleScale

	img := imaging.New(dim, dim, color.White)

	for y, row := range matrix {
		for x, dark := range row {
			if !dark {
				continue
			}

			x0 := (x + quietZone) * moduleScale
			y0 := (y + quietZone) * moduleScale

			for py := y0; py < y0+moduleScale; py++ {
				for px := x0; px < x0+moduleScale; px++ {
					img.SetNRGBA(px, py, fg)
				}
			}
		}
	}

	return img
}

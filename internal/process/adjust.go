// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package process

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Adjust applies the page transforms in order: contrast by percent, additive
// brighten on each color channel, then grayscale. The result has a single
// luminance channel; alpha is dropped.
func Adjust(img image.Image, contrast float64, brighten int) *image.Gray {
	out := imaging.AdjustContrast(img, contrast)
	out = Brighten(out, brighten)
	return toGray(imaging.Grayscale(out))
}

// Brighten adds amount to the R, G and B channels of every pixel, clamping to
// 0..255. Alpha is left alone.
func Brighten(img image.Image, amount int) *image.NRGBA {
	if amount == 0 {
		return imaging.Clone(img)
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clampChannel(int(c.R) + amount),
			G: clampChannel(int(c.G) + amount),
			B: clampChannel(int(c.B) + amount),
			A: c.A,
		}
	})
}

func clampChannel(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// toGray copies the red channel of a grayscale NRGBA image (R == G == B) into
// a single-channel image.
func toGray(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+b.Dx()*4]
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()]
		for x := range dstRow {
			dstRow[x] = srcRow[x*4]
		}
	}
	return dst
}

package render

import (
	"fmt"
	"image"
	"image/color"
)

// Image converts a w*h cell buffer into an RGBA image using palette.
func Image(cells []uint8, w, h int, palette []color.RGBA) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil, fmt.Errorf("render: %d cells do not fill a %dx%d image", len(cells), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillPaletteRGBA(img.Pix, cells, palette)
	return img, nil
}

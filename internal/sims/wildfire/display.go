package wildfire

import "image/color"

var wildfirePalette = []color.RGBA{
	Green:   {R: 0, G: 255, B: 0, A: 255},
	Burning: {R: 255, G: 0, B: 0, A: 255},
	Empty:   {R: 0, G: 0, B: 0, A: 255},
}

// Palette exposes the color palette indexed by State.
func (e *Engine) Palette() []color.RGBA {
	return wildfirePalette
}

package term

import (
	"bytes"

	"github.com/logrusorgru/aurora"

	"wildfire/internal/sims/wildfire"
)

// Fillers holds the glyph drawn for each vegetation state.
type Fillers [3]string

// ColorFillers renders green and burning cells as coloured blocks.
func ColorFillers() Fillers {
	var f Fillers
	f[wildfire.Green] = aurora.Green("█").String()
	f[wildfire.Burning] = aurora.Red("█").BgBrightRed().String()
	f[wildfire.Empty] = " "
	return f
}

// renderField draws the top-left maxW*maxH window of a w*h cell buffer, one
// glyph per cell. It reports whether the grid was cropped.
func renderField(cells []uint8, w, h, maxW, maxH int, fill Fillers) (string, bool) {
	cropped := w > maxW || h > maxH
	rows := min(h, maxH)
	cols := min(w, maxW)
	var b bytes.Buffer
	for y := 0; y < rows; y++ {
		if y != 0 {
			b.WriteByte('\n')
		}
		row := cells[y*w : y*w+cols]
		for _, c := range row {
			if int(c) >= len(fill) {
				c = uint8(wildfire.Empty)
			}
			b.WriteString(fill[c])
		}
	}
	return b.String(), cropped
}

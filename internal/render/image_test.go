package render

import (
	"image/color"
	"testing"
)

func TestImageUsesPalette(t *testing.T) {
	palette := []color.RGBA{
		{R: 0, G: 255, B: 0, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
	}
	img, err := Image([]uint8{0, 1, 1, 7}, 2, 2, palette)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != palette[0] {
		t.Fatalf("pixel (0,0) = %v", got)
	}
	if got := img.RGBAAt(1, 0); got != palette[1] {
		t.Fatalf("pixel (1,0) = %v", got)
	}
	if got := img.RGBAAt(1, 1); got != palette[1] {
		t.Fatalf("out-of-range value should clamp to the last color, got %v", got)
	}
}

func TestImageRejectsShortBuffer(t *testing.T) {
	if _, err := Image([]uint8{0, 1, 2}, 2, 2, nil); err == nil {
		t.Fatal("expected size mismatch error")
	}
}

func TestFillBinaryRGBA(t *testing.T) {
	buf := make([]byte, 8)
	fillBinaryRGBA(buf, []uint8{1, 0}, color.White, color.Black)
	want := []byte{255, 255, 255, 255, 0, 0, 0, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, expected %d", i, buf[i], want[i])
		}
	}
}

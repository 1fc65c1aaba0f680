package texture

import (
	"image"
	"image/color"
	"testing"
)

func TestPrepareFlipsVertically(t *testing.T) {
	// Two rows: red on top, blue on the bottom.
	src := image.NewRGBA(image.Rect(0, 0, 1, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	src.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})

	flipped := Prepare(src)

	if got := flipped.RGBAAt(0, 0); got.B != 255 {
		t.Fatalf("row 0 should be the former bottom row (blue), got %+v", got)
	}
	if got := flipped.RGBAAt(0, 1); got.R != 255 {
		t.Fatalf("row 1 should be the former top row (red), got %+v", got)
	}
}

func TestPrepareNormalizesNonZeroOrigin(t *testing.T) {
	// Subimages can carry a non-zero origin; Prepare must not read
	// outside it or shift content.
	base := image.NewRGBA(image.Rect(0, 0, 4, 4))
	base.SetRGBA(2, 2, color.RGBA{G: 255, A: 255})
	sub := base.SubImage(image.Rect(2, 2, 3, 3))

	out := Prepare(sub)

	if got := out.Bounds().Size(); got.X != 1 || got.Y != 1 {
		t.Fatalf("unexpected size %v", got)
	}
	b := out.Bounds()
	if got := out.RGBAAt(b.Min.X, b.Min.Y); got.G != 255 {
		t.Fatalf("content lost, got %+v", got)
	}
}

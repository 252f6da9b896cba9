package render

import (
	"image"
	"image/color"
	"testing"

	"inspector/internal/models"
)

func TestDrawStrokesMarksPath(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	col := color.RGBA{0, 0, 255, 255}

	strokes := []models.Stroke{
		{Points: []models.Point{{X: 5, Y: 5}, {X: 5, Y: 25}}},
	}
	DrawStrokes(img, strokes, 1, col)

	for y := 5; y <= 25; y++ {
		if img.RGBAAt(5, y) != col {
			t.Fatalf("pixel (5,%d) not drawn", y)
		}
	}
	if img.RGBAAt(20, 20) == col {
		t.Error("pixel off the stroke path was drawn")
	}
}

func TestDrawStrokesClipsToBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	strokes := []models.Stroke{
		{Points: []models.Point{{X: -50, Y: -50}, {X: 100, Y: 100}}},
		{Points: []models.Point{{X: 3, Y: 3}}},
	}

	// Must not panic on out-of-bounds points or single-point strokes.
	DrawStrokes(img, strokes, 4, color.RGBA{255, 0, 0, 255})
}

func TestEraseAt(t *testing.T) {
	strokes := []models.Stroke{
		{Points: []models.Point{{X: 10, Y: 10}, {X: 20, Y: 20}}},
		{Points: []models.Point{{X: 100, Y: 100}, {X: 110, Y: 100}}},
	}

	// A hit near the first stroke removes only that stroke.
	got := EraseAt(strokes, models.Point{X: 11, Y: 11}, 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 stroke left, got %d", len(got))
	}
	if got[0].Points[0].X != 100 {
		t.Error("wrong stroke erased")
	}

	// Outside the tolerance nothing is removed.
	strokes = []models.Stroke{
		{Points: []models.Point{{X: 10, Y: 10}}},
	}
	got = EraseAt(strokes, models.Point{X: 16, Y: 10}, 5)
	if len(got) != 1 {
		t.Errorf("stroke outside tolerance was erased")
	}
}

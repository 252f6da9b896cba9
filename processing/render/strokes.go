package render

import (
	"image"
	"image/color"
	"math"

	"inspector/internal/models"
)

// DrawStrokes rasterizes the freehand strokes onto img at image resolution.
func DrawStrokes(img *image.RGBA, strokes []models.Stroke, width int, col color.RGBA) {
	if width <= 0 {
		width = 2
	}

	for _, s := range strokes {
		for i := 1; i < len(s.Points); i++ {
			drawLine(img, s.Points[i-1], s.Points[i], width, col)
		}
		if len(s.Points) == 1 {
			drawDot(img, s.Points[0], width, col)
		}
	}
}

// drawLine walks the segment from a to b and stamps a width-sized dot at
// each step.
func drawLine(img *image.RGBA, a, b models.Point, width int, col color.RGBA) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		drawDot(img, a, width, col)
		return
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		drawDot(img, models.Point{X: a.X + dx*t, Y: a.Y + dy*t}, width, col)
	}
}

func drawDot(img *image.RGBA, p models.Point, width int, col color.RGBA) {
	bounds := img.Bounds()
	cx := int(math.Round(p.X))
	cy := int(math.Round(p.Y))
	r := width / 2

	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// EraseAt removes every stroke that has a point within tol of at, both in
// image coordinates. Returns the remaining strokes.
func EraseAt(strokes []models.Stroke, at models.Point, tol float64) []models.Stroke {
	kept := strokes[:0]
	for _, s := range strokes {
		hit := false
		for _, p := range s.Points {
			if math.Abs(p.X-at.X) < tol && math.Abs(p.Y-at.Y) < tol {
				hit = true
				break
			}
		}
		if !hit {
			kept = append(kept, s)
		}
	}
	return kept
}

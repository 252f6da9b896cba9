package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inspector/internal/models"
)

const tolerance = 1e-9

func TestViewportRoundTrip(t *testing.T) {
	viewports := []Viewport{
		{Zoom: 1},
		{Zoom: 0.37, OffsetX: 12.5, OffsetY: -40},
		{Zoom: 8.25, OffsetX: -310.75, OffsetY: 99.1},
	}
	points := []models.Point{
		{X: 0, Y: 0},
		{X: 123.456, Y: 789.012},
		{X: -15.5, Y: 3000},
	}

	for _, v := range viewports {
		for _, p := range points {
			back := v.ToImage(v.ToScreen(p))
			assert.InDelta(t, p.X, back.X, tolerance)
			assert.InDelta(t, p.Y, back.Y, tolerance)

			fwd := v.ToScreen(v.ToImage(p))
			assert.InDelta(t, p.X, fwd.X, tolerance)
			assert.InDelta(t, p.Y, fwd.Y, tolerance)
		}
	}
}

func TestZoomAtKeepsAnchorFixed(t *testing.T) {
	v := Viewport{Zoom: 1, OffsetX: 20, OffsetY: 30}
	anchor := models.Point{X: 250, Y: 180}
	before := v.ToImage(anchor)

	v.ZoomAt(anchor, 1.1, 0.05, 32)
	after := v.ToImage(anchor)

	assert.InDelta(t, before.X, after.X, 1e-6)
	assert.InDelta(t, before.Y, after.Y, 1e-6)
	assert.InDelta(t, 1.1, v.Zoom, tolerance)
}

func TestZoomAtClamps(t *testing.T) {
	v := Viewport{Zoom: 1}
	for i := 0; i < 100; i++ {
		v.ZoomAt(models.Point{}, 2, 0.05, 32)
	}
	assert.Equal(t, 32.0, v.Zoom)

	for i := 0; i < 100; i++ {
		v.ZoomAt(models.Point{}, 0.5, 0.05, 32)
	}
	assert.Equal(t, 0.05, v.Zoom)
}

func TestFitContainsAndCenters(t *testing.T) {
	v := Fit(1000, 500, 400, 400)

	assert.InDelta(t, 0.4, v.Zoom, tolerance)
	// Width fills the view, height is centered.
	assert.InDelta(t, 0.0, v.OffsetX, tolerance)
	assert.InDelta(t, (400.0-500*0.4)/2, v.OffsetY, tolerance)

	// Degenerate input falls back to identity zoom.
	assert.Equal(t, 1.0, Fit(0, 0, 100, 100).Zoom)
}

func TestPan(t *testing.T) {
	v := Viewport{Zoom: 2, OffsetX: 5, OffsetY: 5}
	v.Pan(10, -3)
	assert.Equal(t, 15.0, v.OffsetX)
	assert.Equal(t, 2.0, v.OffsetY)
}

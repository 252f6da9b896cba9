// Package render turns parsed annotations and view state into pixels: it
// composes box overlays onto images, rasterizes freehand strokes, maps
// between screen and image coordinates, and exports annotated copies.
package render

import (
	"inspector/internal/models"
)

// Viewport maps image coordinates to screen coordinates:
// screen = image*Zoom + Offset. ToScreen and ToImage are exact inverses up
// to floating point rounding.
type Viewport struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

// ToScreen maps an image-space point to screen space.
func (v Viewport) ToScreen(p models.Point) models.Point {
	return models.Point{
		X: p.X*v.Zoom + v.OffsetX,
		Y: p.Y*v.Zoom + v.OffsetY,
	}
}

// ToImage maps a screen-space point back to image space.
func (v Viewport) ToImage(p models.Point) models.Point {
	return models.Point{
		X: (p.X - v.OffsetX) / v.Zoom,
		Y: (p.Y - v.OffsetY) / v.Zoom,
	}
}

// Pan shifts the view by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomAt scales the zoom by factor, clamped to [min, max], while keeping the
// image point under the screen-space anchor fixed in place.
func (v *Viewport) ZoomAt(anchor models.Point, factor, min, max float64) {
	newZoom := v.Zoom * factor
	if newZoom < min {
		newZoom = min
	}
	if newZoom > max {
		newZoom = max
	}
	if newZoom == v.Zoom {
		return
	}

	applied := newZoom / v.Zoom
	v.OffsetX = anchor.X - (anchor.X-v.OffsetX)*applied
	v.OffsetY = anchor.Y - (anchor.Y-v.OffsetY)*applied
	v.Zoom = newZoom
}

// Fit returns the viewport that contains the whole image inside the view,
// centered, preserving aspect ratio.
func Fit(imgWidth, imgHeight int, viewWidth, viewHeight float64) Viewport {
	if imgWidth <= 0 || imgHeight <= 0 || viewWidth <= 0 || viewHeight <= 0 {
		return Viewport{Zoom: 1}
	}

	zoom := viewWidth / float64(imgWidth)
	if z := viewHeight / float64(imgHeight); z < zoom {
		zoom = z
	}

	return Viewport{
		Zoom:    zoom,
		OffsetX: (viewWidth - float64(imgWidth)*zoom) / 2,
		OffsetY: (viewHeight - float64(imgHeight)*zoom) / 2,
	}
}

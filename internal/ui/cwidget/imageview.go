package cwidget

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"inspector/internal/models"
	"inspector/processing/render"
)

// Mode selects how pointer drags on the ImageView behave.
type Mode int

const (
	ModePan Mode = iota
	ModeDraw
	ModeErase
)

func (m Mode) String() string {
	switch m {
	case ModeDraw:
		return "Draw"
	case ModeErase:
		return "Erase"
	default:
		return "Pan"
	}
}

// ImageView displays one composed image inside a pannable, zoomable
// viewport and captures freehand strokes for visual markup. Strokes are
// kept in widget state only; nothing here touches the filesystem.
type ImageView struct {
	widget.BaseWidget

	bg  *canvas.Rectangle
	img *canvas.Image

	viewport render.Viewport
	mode     Mode

	minZoom  float64
	maxZoom  float64
	zoomStep float64

	base    *image.RGBA // image with annotation boxes burned in
	strokes []models.Stroke
	current *models.Stroke

	strokeColor    color.RGBA
	strokeWidth    int
	eraseTolerance float64 // screen pixels

	// OnViewChanged reports the new zoom factor after pan/zoom input.
	OnViewChanged func(zoom float64)
}

// ViewOptions carries the interaction settings the config provides.
type ViewOptions struct {
	MinZoom        float64
	MaxZoom        float64
	ZoomStep       float64
	StrokeColor    color.RGBA
	StrokeWidth    int
	EraseTolerance float64
}

func NewImageView(opts ViewOptions) *ImageView {
	v := &ImageView{
		bg:             canvas.NewRectangle(color.RGBA{64, 64, 64, 255}),
		viewport:       render.Viewport{Zoom: 1},
		mode:           ModePan,
		minZoom:        opts.MinZoom,
		maxZoom:        opts.MaxZoom,
		zoomStep:       opts.ZoomStep,
		strokeColor:    opts.StrokeColor,
		strokeWidth:    opts.StrokeWidth,
		eraseTolerance: opts.EraseTolerance,
	}

	v.img = canvas.NewImageFromImage(nil)
	v.img.FillMode = canvas.ImageFillStretch
	v.img.ScaleMode = canvas.ImageScaleFastest

	v.ExtendBaseWidget(v)
	return v
}

// SetImage replaces the displayed image and resets strokes and viewport.
func (v *ImageView) SetImage(base *image.RGBA) {
	v.base = base
	v.strokes = nil
	v.current = nil
	v.img.Image = base
	v.FitToView()
}

// FitToView recomputes the contain-fit viewport for the current image.
func (v *ImageView) FitToView() {
	if v.base != nil {
		size := v.Size()
		bounds := v.base.Bounds()
		v.viewport = render.Fit(bounds.Dx(), bounds.Dy(), float64(size.Width), float64(size.Height))
	}
	v.Refresh()
	v.notifyView()
}

// SetMode switches between pan, draw and erase.
func (v *ImageView) SetMode(m Mode) {
	v.mode = m
}

func (v *ImageView) Mode() Mode {
	return v.mode
}

func (v *ImageView) Zoom() float64 {
	return v.viewport.Zoom
}

// Strokes returns the strokes drawn on the current image.
func (v *ImageView) Strokes() []models.Stroke {
	return v.strokes
}

// ClearStrokes drops all markup from the current image.
func (v *ImageView) ClearStrokes() {
	v.strokes = nil
	v.current = nil
	v.redrawStrokes()
}

// SetStrokeWidth adjusts the pen width for subsequent strokes.
func (v *ImageView) SetStrokeWidth(w int) {
	if w > 0 {
		v.strokeWidth = w
	}
}

// SetEraseTolerance adjusts the erase hit distance in screen pixels.
func (v *ImageView) SetEraseTolerance(tol float64) {
	if tol > 0 {
		v.eraseTolerance = tol
	}
}

// Dragged pans the view, extends the active stroke, or erases strokes
// under the cursor, depending on the mode.
func (v *ImageView) Dragged(e *fyne.DragEvent) {
	if v.base == nil {
		return
	}

	switch v.mode {
	case ModePan:
		v.viewport.Pan(float64(e.Dragged.DX), float64(e.Dragged.DY))
		v.Refresh()
		v.notifyView()

	case ModeDraw:
		if v.current == nil {
			start := v.toImage(fyne.NewPos(e.Position.X-e.Dragged.DX, e.Position.Y-e.Dragged.DY))
			v.current = &models.Stroke{Points: []models.Point{start}}
		}
		v.current.Points = append(v.current.Points, v.toImage(e.Position))
		v.redrawStrokes()

	case ModeErase:
		at := v.toImage(e.Position)
		tol := v.eraseTolerance / v.viewport.Zoom
		if kept := render.EraseAt(v.strokes, at, tol); len(kept) != len(v.strokes) {
			v.strokes = kept
			v.redrawStrokes()
		}
	}
}

// DragEnd commits the stroke being drawn.
func (v *ImageView) DragEnd() {
	if v.current != nil {
		v.strokes = append(v.strokes, *v.current)
		v.current = nil
		v.redrawStrokes()
	}
}

// Scrolled zooms anchored at the cursor position.
func (v *ImageView) Scrolled(e *fyne.ScrollEvent) {
	if v.base == nil {
		return
	}

	factor := v.zoomStep
	if e.Scrolled.DY < 0 {
		factor = 1 / v.zoomStep
	}

	anchor := models.Point{X: float64(e.Position.X), Y: float64(e.Position.Y)}
	v.viewport.ZoomAt(anchor, factor, v.minZoom, v.maxZoom)
	v.Refresh()
	v.notifyView()
}

func (v *ImageView) toImage(pos fyne.Position) models.Point {
	return v.viewport.ToImage(models.Point{X: float64(pos.X), Y: float64(pos.Y)})
}

func (v *ImageView) notifyView() {
	if v.OnViewChanged != nil {
		v.OnViewChanged(v.viewport.Zoom)
	}
}

// redrawStrokes rebuilds the displayed image from the composed base plus
// the strokes, at image resolution so markup scales with the zoom.
func (v *ImageView) redrawStrokes() {
	if v.base == nil {
		return
	}

	pending := v.strokes
	if v.current != nil {
		pending = append(append([]models.Stroke{}, v.strokes...), *v.current)
	}

	if len(pending) == 0 {
		v.img.Image = v.base
	} else {
		display := image.NewRGBA(v.base.Bounds())
		copy(display.Pix, v.base.Pix)
		render.DrawStrokes(display, pending, v.strokeWidth, v.strokeColor)
		v.img.Image = display
	}

	v.img.Refresh()
}

func (v *ImageView) CreateRenderer() fyne.WidgetRenderer {
	return &imageViewRenderer{view: v}
}

type imageViewRenderer struct {
	view *ImageView
}

func (r *imageViewRenderer) Layout(size fyne.Size) {
	r.view.bg.Resize(size)
	r.position()
}

// position places the image canvas object according to the viewport.
func (r *imageViewRenderer) position() {
	v := r.view
	if v.base == nil {
		v.img.Resize(fyne.NewSize(0, 0))
		return
	}

	bounds := v.base.Bounds()
	w := float32(float64(bounds.Dx()) * v.viewport.Zoom)
	h := float32(float64(bounds.Dy()) * v.viewport.Zoom)

	v.img.Move(fyne.NewPos(float32(v.viewport.OffsetX), float32(v.viewport.OffsetY)))
	v.img.Resize(fyne.NewSize(w, h))
}

func (r *imageViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(640, 480)
}

func (r *imageViewRenderer) Refresh() {
	r.position()
	canvas.Refresh(r.view.bg)
	canvas.Refresh(r.view.img)
}

func (r *imageViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.bg, r.view.img}
}

func (r *imageViewRenderer) Destroy() {}

package render

import (
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"inspector/internal/models"
)

// Options controls how annotation overlays are drawn.
type Options struct {
	Thickness   int               // box outline thickness in pixels
	LabelColors map[string]string // per-label color name overrides
}

var colorsByName = map[string]color.RGBA{
	"red":     {255, 0, 0, 255},
	"green":   {0, 255, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"orange":  {255, 165, 0, 255},
	"white":   {255, 255, 255, 255},
}

// palette assigns stable, distinguishable colors to labels without overrides.
var palette = []color.RGBA{
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 255, 255, 255},
	{255, 255, 0, 255},
	{255, 0, 255, 255},
	{255, 165, 0, 255},
	{0, 128, 255, 255},
	{128, 255, 0, 255},
}

// ColorByName resolves a color name from the config, falling back to red.
func ColorByName(name string) color.RGBA {
	if c, ok := colorsByName[name]; ok {
		return c
	}
	return colorsByName["red"]
}

// ColorFor picks the color for a label: a configured override when present,
// otherwise a palette entry chosen by label hash so the same label always
// gets the same color.
func ColorFor(label string, overrides map[string]string) color.RGBA {
	if name, ok := overrides[label]; ok {
		if c, ok := colorsByName[name]; ok {
			return c
		}
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Compose copies img into a fresh RGBA and draws each annotation onto the
// copy as a colored box outline with its label text. The source image is
// never modified.
func Compose(img image.Image, annotations []models.Annotation, opts Options) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	thickness := opts.Thickness
	if thickness <= 0 {
		thickness = 3
	}

	for _, a := range annotations {
		col := ColorFor(a.Label, opts.LabelColors)
		drawRect(rgba, a.Box, thickness, col)
		drawLabel(rgba, a.Label, a.Box, col)
	}

	return rgba
}

// drawRect draws a box outline of the given thickness, clamped to the image
// bounds.
func drawRect(img *image.RGBA, box models.Box, thickness int, col color.Color) {
	bounds := img.Bounds()

	setPixel := func(x, y int) {
		if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			img.Set(x, y, col)
		}
	}

	for t := 0; t < thickness; t++ {
		for x := box.X1; x <= box.X2; x++ {
			setPixel(x, box.Y1+t)
			setPixel(x, box.Y2-t)
		}
		for y := box.Y1; y <= box.Y2; y++ {
			setPixel(box.X1+t, y)
			setPixel(box.X2-t, y)
		}
	}
}

// drawLabel draws the label text just above the box, or below its top edge
// when the box touches the top of the image.
func drawLabel(img *image.RGBA, label string, box models.Box, col color.Color) {
	if label == "" {
		return
	}

	face := basicfont.Face7x13
	y := box.Y1 - 6
	if y < face.Height {
		y = box.Y1 + face.Height + 5
	}

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(box.X1, y),
	}
	d.DrawString(label)
}

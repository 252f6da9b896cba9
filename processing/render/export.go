package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"inspector/internal/models"
)

// LoadImage decodes the image at path, honoring EXIF orientation.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot load image %q: %w", path, err)
	}
	return img, nil
}

// Export burns the strokes into a copy of img and saves the result to path
// as PNG or JPEG, chosen by the file extension. Annotation source files are
// never involved; this writes a brand new image file only.
func Export(path string, img image.Image, strokes []models.Stroke, strokeWidth int, strokeColor color.RGBA) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
	default:
		return fmt.Errorf("unsupported export format %q", filepath.Ext(path))
	}

	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	DrawStrokes(out, strokes, strokeWidth, strokeColor)

	return imaging.Save(out, path)
}

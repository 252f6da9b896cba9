package render

import (
	"crypto/sha256"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspector/internal/models"
	"inspector/processing/annotate"
)

func sha256OfFile(t *testing.T, path string) [32]byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return sha256.Sum256(data)
}

// A full review session must leave the annotation file byte-identical:
// parsing, composing, stroking and exporting never write back.
func TestSessionNeverMutatesAnnotationFile(t *testing.T) {
	dir := t.TempDir()

	imgPath := filepath.Join(dir, "frame.png")
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, createTestImage(64, 48)))
	require.NoError(t, f.Close())

	labelPath := filepath.Join(dir, "frame.txt")
	require.NoError(t, os.WriteFile(labelPath, []byte("0 0.5 0.5 0.5 0.5\n"), 0644))
	hashBefore := sha256OfFile(t, labelPath)

	img, err := LoadImage(imgPath)
	require.NoError(t, err)

	annotations, err := annotate.ParseFile(labelPath, 64, 48, []string{"part"})
	require.NoError(t, err)
	require.Len(t, annotations, 1)

	composed := Compose(img, annotations, Options{Thickness: 2})

	strokes := []models.Stroke{
		{Points: []models.Point{{X: 1, Y: 1}, {X: 30, Y: 20}, {X: 60, Y: 5}}},
	}
	outPath := filepath.Join(dir, "annotated.png")
	require.NoError(t, Export(outPath, composed, strokes, 2, ColorByName("blue")))

	// The export produced a decodable image...
	exported, err := LoadImage(outPath)
	require.NoError(t, err)
	assert.Equal(t, 64, exported.Bounds().Dx())
	assert.Equal(t, 48, exported.Bounds().Dy())

	// ...and the annotation file is untouched.
	assert.Equal(t, hashBefore, sha256OfFile(t, labelPath))
}

func TestExportRejectsUnknownExtension(t *testing.T) {
	err := Export(filepath.Join(t.TempDir(), "out.bmp"), createTestImage(8, 8), nil, 1, ColorByName("blue"))
	assert.Error(t, err)
}

func TestLoadImageMissing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestScanFlatFolder(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b.jpg")
	touch(t, root, "a.png")
	touch(t, root, "c.jpeg")
	touch(t, root, "a.txt")
	touch(t, root, "b.xml")
	touch(t, root, "notes.md")

	ds, err := Scan(root)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	// Entries are ordered by image filename.
	assert.Equal(t, "a.png", filepath.Base(ds.Entries[0].ImagePath))
	assert.Equal(t, "b.jpg", filepath.Base(ds.Entries[1].ImagePath))
	assert.Equal(t, "c.jpeg", filepath.Base(ds.Entries[2].ImagePath))

	assert.Equal(t, "a.txt", filepath.Base(ds.Entries[0].LabelPath))
	assert.Equal(t, "b.xml", filepath.Base(ds.Entries[1].LabelPath))
	// Unlabeled images stay in the dataset.
	assert.Empty(t, ds.Entries[2].LabelPath)
}

func TestScanImagesLabelsLayout(t *testing.T) {
	root := t.TempDir()
	imagesDir := filepath.Join(root, "images")
	labelsDir := filepath.Join(root, "labels")
	require.NoError(t, os.Mkdir(imagesDir, 0755))
	require.NoError(t, os.Mkdir(labelsDir, 0755))

	touch(t, imagesDir, "0001.jpg")
	touch(t, labelsDir, "0001.json")
	touch(t, labelsDir, "0001.txt")
	require.NoError(t, os.WriteFile(filepath.Join(root, "classes.txt"), []byte("car\nwheel\n"), 0644))

	ds, err := Scan(root)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())

	// JSON outranks TXT when both exist for one stem.
	assert.Equal(t, "0001.json", filepath.Base(ds.Entries[0].LabelPath))
	assert.Equal(t, []string{"car", "wheel"}, ds.Classes)
}

func TestScanPairsExtensionCaseInsensitively(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "shot.JPG")
	touch(t, root, "shot.TXT")

	ds, err := Scan(root)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "shot.TXT", filepath.Base(ds.Entries[0].LabelPath))
}

func TestScanMissingFolder(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCursorStaysInBounds(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.jpg")
	touch(t, root, "b.jpg")
	touch(t, root, "c.jpg")

	ds, err := Scan(root)
	require.NoError(t, err)

	// Hammer Prev at the lower bound.
	for i := 0; i < 10; i++ {
		ds.Prev()
	}
	assert.Equal(t, 0, ds.Index())

	// Hammer Next at the upper bound.
	for i := 0; i < 10; i++ {
		ds.Next()
	}
	assert.Equal(t, 2, ds.Index())

	require.NoError(t, ds.Goto(1))
	assert.Equal(t, 1, ds.Index())

	assert.Error(t, ds.Goto(-1))
	assert.Error(t, ds.Goto(3))
	assert.Equal(t, 1, ds.Index(), "rejected Goto must not move the cursor")

	cur, err := ds.Current()
	require.NoError(t, err)
	assert.Equal(t, "b.jpg", filepath.Base(cur.ImagePath))
}

func TestCurrentOnEmptyDataset(t *testing.T) {
	ds := &Dataset{}
	_, err := ds.Current()
	assert.Error(t, err)

	ds.Next()
	ds.Prev()
	assert.Equal(t, 0, ds.Index())
}

func TestWatcherFiresOnCreate(t *testing.T) {
	root := t.TempDir()

	changed := make(chan struct{}, 1)
	w, err := Watch([]string{root}, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	touch(t, root, "new.jpg")

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the new file")
	}
}

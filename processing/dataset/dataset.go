// Package dataset pairs image files with annotation files by filename stem
// and tracks the viewer's position within the paired list.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"inspector/internal/logging"
	"inspector/processing/annotate"
)

// Image extensions the viewer displays.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Label extensions in lookup priority order.
var labelExts = []string{".json", ".xml", ".txt"}

// Entry is one image of the dataset with its optional annotation file.
type Entry struct {
	ImagePath string
	LabelPath string // empty when no annotation file was found
}

// Dataset is the ordered list of paired entries plus the navigation cursor.
type Dataset struct {
	Entries []Entry
	Classes []string
	Root    string

	// ImagesDir and LabelsDir are the resolved directories the entries came
	// from; equal to Root for a flat layout.
	ImagesDir string
	LabelsDir string

	index int
}

// Scan builds a Dataset from the folder at root. When root contains both an
// "images" and a "labels" subdirectory those are used, otherwise root itself
// holds both kinds of files. A classes.txt or classes.names file at root
// provides YOLO class names. Images without a matching annotation file are
// kept with an empty label path.
func Scan(root string) (*Dataset, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("cannot read directory %q: %v", root, err)
	}

	imagesDir, labelsDir := root, root
	if isDir(filepath.Join(root, "images")) && isDir(filepath.Join(root, "labels")) {
		imagesDir = filepath.Join(root, "images")
		labelsDir = filepath.Join(root, "labels")
	}

	images, err := imageFilesInDir(imagesDir)
	if err != nil {
		return nil, err
	}
	sort.Strings(images)

	labels, err := labelFilesByStem(labelsDir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(images))
	for _, img := range images {
		stem := stemOf(img)
		entry := Entry{ImagePath: filepath.Join(imagesDir, img)}
		if byExt, ok := labels[stem]; ok {
			for _, ext := range labelExts {
				if name, ok := byExt[ext]; ok {
					entry.LabelPath = filepath.Join(labelsDir, name)
					break
				}
			}
		}
		entries = append(entries, entry)
	}

	var classes []string
	for _, name := range []string{"classes.txt", "classes.names"} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			classes = annotate.LoadClasses(path)
			break
		}
	}

	logging.Logger.Info("scanned dataset folder",
		zap.String("root", root),
		zap.Int("images", len(entries)),
		zap.Int("classes", len(classes)))

	return &Dataset{
		Entries:   entries,
		Classes:   classes,
		Root:      root,
		ImagesDir: imagesDir,
		LabelsDir: labelsDir,
	}, nil
}

// Len is the number of entries.
func (d *Dataset) Len() int {
	return len(d.Entries)
}

// Index is the current zero-based cursor position.
func (d *Dataset) Index() int {
	return d.index
}

// Current returns the entry under the cursor.
func (d *Dataset) Current() (Entry, error) {
	if len(d.Entries) == 0 {
		return Entry{}, fmt.Errorf("dataset is empty")
	}
	return d.Entries[d.index], nil
}

// Next advances the cursor unless it is already on the last entry.
// The cursor never leaves [0, Len-1].
func (d *Dataset) Next() {
	if d.index < len(d.Entries)-1 {
		d.index++
	}
}

// Prev moves the cursor back unless it is already on the first entry.
func (d *Dataset) Prev() {
	if d.index > 0 {
		d.index--
	}
}

// Goto moves the cursor to the zero-based index i.
func (d *Dataset) Goto(i int) error {
	if i < 0 || i >= len(d.Entries) {
		return fmt.Errorf("index %d out of range [1, %d]", i+1, len(d.Entries))
	}
	d.index = i
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// stemOf is the base name of path without its extension.
func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// imageFilesInDir lists the displayable image file names directly in dirPath.
// Extensions match case-insensitively.
func imageFilesInDir(dirPath string) ([]string, error) {
	items, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access %q: %w", dirPath, err)
	}

	files := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(item.Name()))] {
			files = append(files, item.Name())
		}
	}

	return files, nil
}

// labelFilesByStem maps the stem of every annotation file in dirPath to its
// available files, keyed by lowercased extension. First file wins when two
// files differ only by extension case.
func labelFilesByStem(dirPath string) (map[string]map[string]string, error) {
	items, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access %q: %w", dirPath, err)
	}

	byStem := make(map[string]map[string]string)
	for _, item := range items {
		if item.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(item.Name()))
		known := false
		for _, le := range labelExts {
			if ext == le {
				known = true
				break
			}
		}
		if !known {
			continue
		}

		stem := stemOf(item.Name())
		if byStem[stem] == nil {
			byStem[stem] = make(map[string]string)
		}
		if _, exists := byStem[stem][ext]; !exists {
			byStem[stem][ext] = item.Name()
		}
	}

	return byStem, nil
}

// Package annotate reads object-detection annotation files into the
// in-memory representation used by the viewer. Supported formats are YOLO
// text files, Pascal VOC XML and Create-ML style JSON. All readers are
// strictly read-only: no function in this package ever writes to an
// annotation file.
package annotate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"inspector/internal/models"
)

// ParseFile parses the annotation file at path, dispatching on the file
// extension. The image dimensions are required to decode normalized YOLO
// coordinates; classNames is optional and only used for YOLO class ids.
func ParseFile(path string, imgWidth, imgHeight int, classNames []string) ([]models.Annotation, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return FromYOLO(path, imgWidth, imgHeight, classNames)
	case ".xml":
		return FromVOC(path)
	case ".json":
		return FromJSON(path)
	default:
		return nil, fmt.Errorf("unsupported annotation file format %q", filepath.Ext(path))
	}
}

// readLines returns a slice of lines read from the file at path.
func readLines(path string) (lines []string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file %q: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %q as lines: %w", path, err)
	}

	return lines, nil
}

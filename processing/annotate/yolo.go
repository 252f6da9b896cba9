package annotate

// YOLO specific functionality.

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"inspector/internal/logging"
	"inspector/internal/models"
)

// FromYOLO reads and parses a YOLO label file. Each line holds one box as
// "class_id cx cy w h" with coordinates normalized to [0, 1]; they are
// decoded against the given image dimensions. Malformed lines are skipped
// with a warning instead of failing the whole file.
//
// Class ids resolve to classNames[id] when in range, otherwise to the
// placeholder "Class <id>".
func FromYOLO(path string, imgWidth, imgHeight int, classNames []string) ([]models.Annotation, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	annotations := make([]models.Annotation, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		a, err := parseYOLOLine(line, imgWidth, imgHeight, classNames)
		if err != nil {
			logging.Logger.Warn("skipping malformed YOLO line",
				zap.String("file", path), zap.Int("line", i+1), zap.Error(err))
			continue
		}
		annotations = append(annotations, a)
	}

	return annotations, nil
}

// parseYOLOLine decodes a single normalized YOLO box into a pixel box.
func parseYOLOLine(line string, imgWidth, imgHeight int, classNames []string) (models.Annotation, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return models.Annotation{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}

	classID, err := strconv.Atoi(fields[0])
	if err != nil {
		return models.Annotation{}, fmt.Errorf("invalid class id %q: %w", fields[0], err)
	}

	var vals [4]float64
	for i := 1; i < 5 && err == nil; i++ {
		vals[i-1], err = strconv.ParseFloat(fields[i], 64)
	}
	if err != nil {
		return models.Annotation{}, fmt.Errorf("unexpected values in %q: %w", line, err)
	}

	xCenter := vals[0] * float64(imgWidth)
	yCenter := vals[1] * float64(imgHeight)
	boxWidth := vals[2] * float64(imgWidth)
	boxHeight := vals[3] * float64(imgHeight)

	label := fmt.Sprintf("Class %d", classID)
	if classID >= 0 && classID < len(classNames) {
		label = classNames[classID]
	}

	return models.Annotation{
		Label: label,
		Box: models.Box{
			X1: int(xCenter - boxWidth/2),
			Y1: int(yCenter - boxHeight/2),
			X2: int(xCenter + boxWidth/2),
			Y2: int(yCenter + boxHeight/2),
		},
	}, nil
}

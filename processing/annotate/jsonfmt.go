package annotate

// Create-ML style JSON specific functionality.

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"inspector/internal/logging"
	"inspector/internal/models"
)

// jsonCoordinates places the box by its top-left corner.
type jsonCoordinates struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

// jsonAnnotation is a single annotation within a JSON label file.
type jsonAnnotation struct {
	Label       string           `json:"label"`
	Coordinates *jsonCoordinates `json:"coordinates"`
}

// jsonAnnotatedImage is one image entry in a JSON label file.
type jsonAnnotatedImage struct {
	Annotations []jsonAnnotation `json:"annotations"`
}

// FromJSON reads and parses the JSON annotation file at path. The expected
// shape is a list of image entries, each with an "annotations" array of
// {label, coordinates:{x, y, width, height}} objects; only the first entry
// is used, matching the one-file-per-image dataset layout. Annotations
// with missing coordinate fields are skipped with a warning.
func FromJSON(path string) ([]models.Annotation, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []jsonAnnotatedImage
	if err := json.Unmarshal(enc, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse JSON input from %q: %w", path, err)
	}
	if len(entries) == 0 {
		logging.Logger.Warn("JSON annotation file holds no image entries",
			zap.String("file", path))
		return nil, nil
	}

	annotations := make([]models.Annotation, 0, len(entries[0].Annotations))
	for _, a := range entries[0].Annotations {
		c := a.Coordinates
		if c == nil || c.X == nil || c.Y == nil || c.Width == nil || c.Height == nil {
			logging.Logger.Warn("skipping JSON annotation with missing coordinates",
				zap.String("file", path), zap.String("label", a.Label))
			continue
		}

		label := a.Label
		if label == "" {
			label = "No Label"
		}

		annotations = append(annotations, models.Annotation{
			Label: label,
			Box: models.Box{
				X1: int(*c.X),
				Y1: int(*c.Y),
				X2: int(*c.X + *c.Width),
				Y2: int(*c.Y + *c.Height),
			},
		})
	}

	return annotations, nil
}

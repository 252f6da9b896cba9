package annotate

// Pascal VOC specific functionality.

import (
	"encoding/xml"
	"fmt"
	"os"

	"inspector/internal/models"
)

// FromVOC reads and parses the Pascal VOC XML annotation file at path.
// Coordinates may carry decimals in the wild; they are parsed as floats
// and truncated to pixels.
func FromVOC(path string) ([]models.Annotation, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fi.Close()

	var data struct {
		XMLName xml.Name `xml:"annotation"`
		Objects []struct {
			Name   string `xml:"name"`
			BndBox *struct {
				XMin float64 `xml:"xmin"`
				YMin float64 `xml:"ymin"`
				XMax float64 `xml:"xmax"`
				YMax float64 `xml:"ymax"`
			} `xml:"bndbox"`
		} `xml:"object"`
	}
	if err := xml.NewDecoder(fi).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse VOC input from %q: %w", path, err)
	}

	annotations := make([]models.Annotation, 0, len(data.Objects))
	for _, obj := range data.Objects {
		if obj.BndBox == nil {
			continue
		}

		label := obj.Name
		if label == "" {
			label = "No Label"
		}

		annotations = append(annotations, models.Annotation{
			Label: label,
			Box: models.Box{
				X1: int(obj.BndBox.XMin),
				Y1: int(obj.BndBox.YMin),
				X2: int(obj.BndBox.XMax),
				Y2: int(obj.BndBox.YMax),
			},
		})
	}

	return annotations, nil
}

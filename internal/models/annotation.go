package models

// Box is an axis-aligned pixel rectangle with inclusive corners.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width is the horizontal extent of the box.
func (b Box) Width() int {
	return b.X2 - b.X1
}

// Height is the vertical extent of the box.
func (b Box) Height() int {
	return b.Y2 - b.Y1
}

// Annotation is one labelled bounding box read from an annotation file.
// Annotations are read-only relative to their source file.
type Annotation struct {
	Label string `json:"label"`
	Box   Box    `json:"box"`
}

// Point is a position in image coordinates.
type Point struct {
	X float64
	Y float64
}

// Stroke is a freehand polyline drawn by the user for visual markup.
// Strokes live in view state only and are never written back to the
// annotation file.
type Stroke struct {
	Points []Point
}

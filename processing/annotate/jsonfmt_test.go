package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspector/internal/models"
)

const sampleJSON = `[
  {
    "image": "frame_0001.jpg",
    "annotations": [
      {"label": "scratch", "coordinates": {"x": 10, "y": 20, "width": 30, "height": 40}},
      {"label": "dent", "coordinates": {"x": 100.7, "y": 50.2, "width": 25.5, "height": 12.5}},
      {"label": "broken", "coordinates": {"x": 5, "y": 5}},
      {"coordinates": {"x": 1, "y": 2, "width": 3, "height": 4}}
    ]
  }
]`

func TestFromJSON(t *testing.T) {
	path := writeTempFile(t, "frame_0001.json", sampleJSON)

	got, err := FromJSON(path)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// x,y is the top-left corner; width/height extend it.
	assert.Equal(t, models.Annotation{Label: "scratch", Box: models.Box{X1: 10, Y1: 20, X2: 40, Y2: 60}}, got[0])
	assert.Equal(t, models.Box{X1: 100, Y1: 50, X2: 126, Y2: 62}, got[1].Box)
	assert.Equal(t, "No Label", got[2].Label)
}

func TestFromJSONEmptyAndMalformed(t *testing.T) {
	empty := writeTempFile(t, "empty.json", "[]")
	got, err := FromJSON(empty)
	require.NoError(t, err)
	assert.Empty(t, got)

	bad := writeTempFile(t, "bad.json", "{not json")
	_, err = FromJSON(bad)
	assert.Error(t, err)
}

func TestParseFileDispatch(t *testing.T) {
	yolo := writeTempFile(t, "a.TXT", "0 0.5 0.5 0.5 0.5\n")
	got, err := ParseFile(yolo, 100, 100, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	xml := writeTempFile(t, "a.xml", sampleVOC)
	got, err = ParseFile(xml, 640, 480, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	js := writeTempFile(t, "a.json", sampleJSON)
	got, err = ParseFile(js, 640, 480, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = ParseFile(writeTempFile(t, "a.csv", "x"), 1, 1, nil)
	assert.Error(t, err)
}

func TestLoadClasses(t *testing.T) {
	path := writeTempFile(t, "classes.txt", "car\n\nwheel\n  truck  \n")
	assert.Equal(t, []string{"car", "wheel", "truck"}, LoadClasses(path))

	assert.Nil(t, LoadClasses(""))
	assert.Nil(t, LoadClasses("/does/not/exist.names"))
}

package store

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadROIs(t *testing.T) {
	path := writeCSV(t, "roi.csv", `Camera_Id,Coordinates,Direction
101,"[[0, 0], [100, 0], [100, 100], [0, 100]]",North
101,"[[200, 0], [300, 0], [300, 100], [200, 100]]",South/East
102,"[[10, 10], [20, 10], [20, 20], [10, 20]]",West
`)

	table, err := LoadROIs(path)
	require.NoError(t, err)

	rois := table.ForCamera(101)
	require.Len(t, rois, 2)
	assert.Equal(t, "North", rois[0].Direction)
	assert.Equal(t, []image.Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}, rois[0].Polygon)
	assert.Equal(t, "South/East", rois[1].Direction)

	require.Len(t, table.ForCamera(102), 1)
	assert.Empty(t, table.ForCamera(999))
}

func TestLoadROIsSkipsMalformedRows(t *testing.T) {
	path := writeCSV(t, "roi.csv", `Camera_Id,Coordinates,Direction
101,"[[0, 0], [100, 0], [100, 100], [0, 100]]",North
abc,"[[0, 0], [1, 0], [1, 1], [0, 1]]",South
101,"not a polygon",East
101,"[[0, 0, 0], [1, 0], [1, 1]]",West
`)

	table, err := LoadROIs(path)
	require.NoError(t, err)
	assert.Len(t, table.ForCamera(101), 1)
}

func TestLoadROIsKeepsShortPolygon(t *testing.T) {
	// Degenerate polygons stay in the table; the masker rejects them when
	// the region is actually processed.
	path := writeCSV(t, "roi.csv", `Camera_Id,Coordinates,Direction
101,"[[0, 0], [100, 0], [50, 100]]",North
`)

	table, err := LoadROIs(path)
	require.NoError(t, err)
	require.Len(t, table.ForCamera(101), 1)
	assert.Len(t, table.ForCamera(101)[0].Polygon, 3)
}

func TestLoadROIsMissingColumn(t *testing.T) {
	path := writeCSV(t, "roi.csv", `Camera_Id,Direction
101,North
`)
	_, err := LoadROIs(path)
	assert.Error(t, err)
}

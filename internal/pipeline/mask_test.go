package pipeline

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func whiteMat(rows, cols int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), rows, cols, gocv.MatTypeCV8UC3)
}

func pixelIsZero(t *testing.T, m gocv.Mat, x, y int) bool {
	t.Helper()
	v := m.GetVecbAt(y, x)
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

func TestMaskRegionDimensionsAndContent(t *testing.T) {
	img := whiteMat(100, 100)
	defer img.Close()

	polygon := []image.Point{{10, 10}, {50, 10}, {50, 50}, {10, 50}}
	masked, err := MaskRegion(img, polygon)
	require.NoError(t, err)
	defer masked.Close()

	assert.Equal(t, img.Rows(), masked.Rows())
	assert.Equal(t, img.Cols(), masked.Cols())

	// inside the polygon pixels survive
	assert.False(t, pixelIsZero(t, masked, 30, 30))
	// outside they are exactly zero
	assert.True(t, pixelIsZero(t, masked, 70, 70))
	assert.True(t, pixelIsZero(t, masked, 0, 0))
	assert.True(t, pixelIsZero(t, masked, 99, 99))
	assert.True(t, pixelIsZero(t, masked, 5, 30))
}

func TestMaskRegionDoesNotTouchInput(t *testing.T) {
	img := whiteMat(60, 60)
	defer img.Close()

	masked, err := MaskRegion(img, []image.Point{{10, 10}, {20, 10}, {20, 20}, {10, 20}})
	require.NoError(t, err)
	defer masked.Close()

	// source keeps its pixels outside the polygon
	assert.False(t, pixelIsZero(t, img, 50, 50))
}

func TestMaskRegionNonConvexPolygon(t *testing.T) {
	img := whiteMat(100, 100)
	defer img.Close()

	// L-shape leaves the notch at the top right uncovered
	polygon := []image.Point{{10, 10}, {50, 10}, {50, 50}, {90, 50}, {90, 90}, {10, 90}}
	masked, err := MaskRegion(img, polygon)
	require.NoError(t, err)
	defer masked.Close()

	assert.False(t, pixelIsZero(t, masked, 30, 30))
	assert.False(t, pixelIsZero(t, masked, 70, 70))
	assert.True(t, pixelIsZero(t, masked, 70, 30))
}

func TestMaskRegionTooFewPoints(t *testing.T) {
	img := whiteMat(50, 50)
	defer img.Close()

	_, err := MaskRegion(img, []image.Point{{0, 0}, {10, 0}, {5, 10}})
	assert.ErrorIs(t, err, ErrInvalidRegion)
}

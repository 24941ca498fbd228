package pipeline

import (
	"errors"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var ErrInvalidRegion = errors.New("region polygon needs at least 4 points")

// MaskRegion returns a copy of img with every pixel outside the filled
// polygon zeroed. The output has the same dimensions as the input and the
// caller owns the returned Mat. Polygon coordinates are raw pixel
// coordinates, assumed valid for img's resolution.
func MaskRegion(img gocv.Mat, polygon []image.Point) (gocv.Mat, error) {
	if len(polygon) < 4 {
		return gocv.Mat{}, ErrInvalidRegion
	}

	mask := gocv.Zeros(img.Rows(), img.Cols(), img.Type())
	defer mask.Close()

	pts := gocv.NewPointsVectorFromPoints([][]image.Point{polygon})
	defer pts.Close()
	gocv.FillPoly(&mask, pts, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	masked := gocv.NewMat()
	gocv.BitwiseAnd(img, mask, &masked)
	return masked, nil
}

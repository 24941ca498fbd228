// Package detector defines the external vehicle-detection capability and
// its Triton inference-server implementation.
package detector

import (
	"context"

	"gocv.io/x/gocv"

	"roadwatch/internal/model"
)

// Detector returns the bounding boxes of vehicles found in img. confidence
// is the minimum detection score to keep and overlap the suppression
// threshold for overlapping candidates. Implementations must not retain img
// after Detect returns.
type Detector interface {
	Detect(ctx context.Context, img gocv.Mat, confidence, overlap float64) ([]model.Box, error)
}

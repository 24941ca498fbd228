package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gocv.io/x/gocv"

	"roadwatch/internal/model"
)

// artifactWriter persists the per-ROI diagnostics: an annotated copy of the
// masked region and an append-only jam log, both under a per-direction
// subdirectory of the corpus root. The annotated image is overwritten on
// every run for a given camera/direction; the log only ever grows.
type artifactWriter struct {
	root string
	mu   sync.Mutex
}

// sanitizeDirection keeps direction labels usable as path components.
func sanitizeDirection(direction string) string {
	return strings.ReplaceAll(direction, "/", "_")
}

func (w *artifactWriter) Write(img gocv.Mat, boxes []model.Box, cameraId int, direction string, jam bool) error {
	direction = sanitizeDirection(direction)
	dir := filepath.Join(w.root, direction)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	// Draw on an owned clone, never on the detector's input.
	annotated := img.Clone()
	defer annotated.Close()
	for _, b := range boxes {
		gocv.Rectangle(&annotated, image.Rect(b.X1, b.Y1, b.X2, b.Y2), color.RGBA{G: 255, A: 255}, 2)
	}

	imgPath := filepath.Join(dir, fmt.Sprintf("%s_%d_bbox.jpg", direction, cameraId))
	if !gocv.IMWrite(imgPath, annotated) {
		return fmt.Errorf("write annotated image %s", imgPath)
	}

	return w.appendJamLine(dir, direction, cameraId, jam)
}

func (w *artifactWriter) appendJamLine(dir, direction string, cameraId int, jam bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	logPath := filepath.Join(dir, fmt.Sprintf("%s_%d_jam_info.txt", direction, cameraId))
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open jam log: %w", err)
	}
	defer f.Close()

	jamFlag := 0
	if jam {
		jamFlag = 1
	}
	if _, err := fmt.Fprintf(f, "Camera_ID: %d, Direction: %s, Jam: %d\n", cameraId, direction, jamFlag); err != nil {
		return fmt.Errorf("append jam log: %w", err)
	}
	return nil
}

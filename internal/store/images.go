// Package store loads the pipeline's read-only reference data (ROI table,
// camera coordinates), enumerates the image corpus and exports the
// observation table.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"roadwatch/internal/model"
)

var ErrInvalidImageName = errors.New("image name does not match {CameraID}_{...}_{YYYYMMDDHHMMSS}.jpg")

const timestampLayout = "20060102150405"

// ParseImageName extracts the camera id and capture time encoded in a corpus
// file name. The name must carry at least three fields separated by "_": a
// decimal camera id first and a 14-digit YYYYMMDDHHMMSS timestamp third.
// Anything else fails with ErrInvalidImageName.
func ParseImageName(name string) (model.ImageIdentity, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(base, "_")
	if len(parts) < 3 {
		return model.ImageIdentity{}, fmt.Errorf("%q: %w", name, ErrInvalidImageName)
	}

	cameraId, err := strconv.Atoi(parts[0])
	if err != nil || cameraId < 0 {
		return model.ImageIdentity{}, fmt.Errorf("%q: bad camera id: %w", name, ErrInvalidImageName)
	}

	if len(parts[2]) != 14 {
		return model.ImageIdentity{}, fmt.Errorf("%q: bad timestamp: %w", name, ErrInvalidImageName)
	}
	ts, err := time.Parse(timestampLayout, parts[2])
	if err != nil {
		return model.ImageIdentity{}, fmt.Errorf("%q: bad timestamp: %w", name, ErrInvalidImageName)
	}

	return model.ImageIdentity{CameraId: cameraId, Timestamp: ts}, nil
}

// ListImages returns the full paths of all .jpg files directly under dir,
// in lexical order. Artifact subdirectories written by earlier runs live
// below dir and are not descended into.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read images dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".jpg") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

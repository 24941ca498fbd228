package store

import (
	"encoding/csv"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"roadwatch/internal/model"
)

// ROITable indexes ROI rows by camera id, preserving file order per camera.
type ROITable map[int][]model.ROI

// ForCamera returns the ROI rows defined for cameraId, in file order.
func (t ROITable) ForCamera(cameraId int) []model.ROI {
	return t[cameraId]
}

// LoadROIs reads the ROI table CSV. Expected columns: Camera_Id,
// Coordinates (a stringified [[x,y],...] list), Direction. Malformed rows
// are logged and skipped so one bad row cannot take down the batch.
// Polygons with fewer than four points are kept as-is; the masker rejects
// them when the region is processed.
func LoadROIs(path string) (ROITable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ROI table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read ROI header: %w", err)
	}

	idCol, err := columnIndex(header, "Camera_Id", "CameraId")
	if err != nil {
		return nil, err
	}
	coordsCol, err := columnIndex(header, "Coordinates")
	if err != nil {
		return nil, err
	}
	dirCol, err := columnIndex(header, "Direction")
	if err != nil {
		return nil, err
	}

	table := make(ROITable)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logrus.Warnf("ROI table line %d: %v, skipping", line, err)
			continue
		}

		cameraId, err := strconv.Atoi(row[idCol])
		if err != nil {
			logrus.Warnf("ROI table line %d: bad camera id %q, skipping", line, row[idCol])
			continue
		}

		polygon, err := parsePolygon(row[coordsCol])
		if err != nil {
			logrus.Warnf("ROI table line %d: %v, skipping", line, err)
			continue
		}

		table[cameraId] = append(table[cameraId], model.ROI{
			CameraId:  cameraId,
			Polygon:   polygon,
			Direction: row[dirCol],
		})
	}
	return table, nil
}

// parsePolygon decodes a stringified [[x,y],...] coordinate list. The column
// is valid JSON, so it is decoded rather than split by hand.
func parsePolygon(s string) ([]image.Point, error) {
	var pairs [][]float64
	if err := json.Unmarshal([]byte(s), &pairs); err != nil {
		return nil, fmt.Errorf("bad polygon %q: %w", s, err)
	}

	polygon := make([]image.Point, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("bad polygon %q: point with %d coordinates", s, len(p))
		}
		polygon = append(polygon, image.Pt(int(p[0]), int(p[1])))
	}
	return polygon, nil
}

func columnIndex(header []string, names ...string) (int, error) {
	for i, col := range header {
		for _, name := range names {
			if col == name {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("column %q not found in header %v", names[0], header)
}

package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"roadwatch/internal/model"
)

// LoadCameraCoords reads the camera coordinate table CSV. The camera id
// comes from the CameraID column; latitude and longitude are the two
// rightmost columns, whatever else the table carries. Malformed rows are
// logged and skipped.
func LoadCameraCoords(path string) (map[int]model.CameraCoord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open camera table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read camera header: %w", err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("camera table needs at least 3 columns, got %d", len(header))
	}

	idCol, err := columnIndex(header, "CameraID", "Camera_Id")
	if err != nil {
		return nil, err
	}
	latCol := len(header) - 2
	lonCol := len(header) - 1

	coords := make(map[int]model.CameraCoord)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logrus.Warnf("camera table line %d: %v, skipping", line, err)
			continue
		}

		cameraId, err := strconv.Atoi(row[idCol])
		if err != nil {
			logrus.Warnf("camera table line %d: bad camera id %q, skipping", line, row[idCol])
			continue
		}
		lat, err := strconv.ParseFloat(row[latCol], 64)
		if err != nil {
			logrus.Warnf("camera table line %d: bad latitude %q, skipping", line, row[latCol])
			continue
		}
		lon, err := strconv.ParseFloat(row[lonCol], 64)
		if err != nil {
			logrus.Warnf("camera table line %d: bad longitude %q, skipping", line, row[lonCol])
			continue
		}

		coords[cameraId] = model.CameraCoord{CameraId: cameraId, Latitude: lat, Longitude: lon}
	}
	return coords, nil
}

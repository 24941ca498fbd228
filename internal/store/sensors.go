package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"roadwatch/internal/geo"
)

// Sensor is one geolocated roadside sensor (e.g. a traffic-speed sensor)
// cameras can be reconciled against.
type Sensor struct {
	Id    string
	Point geo.Point
}

// LoadSensors reads a sensor-location CSV: the first column is the sensor
// id, the two rightmost columns are latitude and longitude. Malformed rows
// are logged and skipped.
func LoadSensors(path string) ([]Sensor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sensor table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read sensor header: %w", err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("sensor table needs at least 3 columns, got %d", len(header))
	}
	latCol := len(header) - 2
	lonCol := len(header) - 1

	var sensors []Sensor
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logrus.Warnf("sensor table line %d: %v, skipping", line, err)
			continue
		}

		lat, err := strconv.ParseFloat(row[latCol], 64)
		if err != nil {
			logrus.Warnf("sensor table line %d: bad latitude %q, skipping", line, row[latCol])
			continue
		}
		lon, err := strconv.ParseFloat(row[lonCol], 64)
		if err != nil {
			logrus.Warnf("sensor table line %d: bad longitude %q, skipping", line, row[lonCol])
			continue
		}

		sensors = append(sensors, Sensor{Id: row[0], Point: geo.Point{Lat: lat, Lon: lon}})
	}
	return sensors, nil
}

package model

import (
	"image"
	"strconv"
	"time"
)

// Box is one detection in pixel space, (X1,Y1) top-left, (X2,Y2) bottom-right.
type Box struct {
	X1         int     `json:"x1"`
	Y1         int     `json:"y1"`
	X2         int     `json:"x2"`
	Y2         int     `json:"y2"`
	Confidence float32 `json:"confidence"`
	ClassId    int     `json:"classId"`
}

// ROI is one lane/direction polygon for a camera, in raw pixel coordinates
// of that camera's frames. A camera may have several ROIs, one per direction.
type ROI struct {
	CameraId  int
	Polygon   []image.Point
	Direction string
}

// CameraCoord is the geolocation of a camera.
type CameraCoord struct {
	CameraId  int
	Latitude  float64
	Longitude float64
}

// ImageIdentity is the camera id and capture time encoded in an image
// file name of the form {CameraID}_{...}_{YYYYMMDDHHMMSS}.jpg.
type ImageIdentity struct {
	CameraId  int
	Timestamp time.Time
}

// Observation is one output row of the pipeline, exactly one per processed
// (image, ROI) pair. Observations are append-only and never mutated.
type Observation struct {
	CameraId     int
	Direction    string
	VehicleCount int
	Density      float64
	Timestamp    time.Time
	Latitude     float64
	Longitude    float64
	IsWeekday    bool
	IsPeak       bool
	Jam          bool
}

// ObservationColumns is the header of the exported observation table.
var ObservationColumns = []string{
	"Camera_Id",
	"Direction",
	"Vehicle_Count",
	"Density",
	"Date",
	"Time",
	"Latitude",
	"Longitude",
	"Is_Weekday",
	"Is_Peak",
	"Jam",
}

// CSVRecord renders the observation as one row under ObservationColumns.
// Boolean flags are encoded as 0/1.
func (o *Observation) CSVRecord() []string {
	return []string{
		strconv.Itoa(o.CameraId),
		o.Direction,
		strconv.Itoa(o.VehicleCount),
		strconv.FormatFloat(o.Density, 'f', -1, 64),
		o.Timestamp.Format("2006-01-02"),
		o.Timestamp.Format("15:04:05"),
		strconv.FormatFloat(o.Latitude, 'f', -1, 64),
		strconv.FormatFloat(o.Longitude, 'f', -1, 64),
		boolFlag(o.IsWeekday),
		boolFlag(o.IsPeak),
		boolFlag(o.Jam),
	}
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

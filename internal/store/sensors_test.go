package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSensors(t *testing.T) {
	path := writeCSV(t, "sensors.csv", `LinkID,RoadName,AvgLat,AvgLon
S12,PIE,1.3400,103.8100
S13,AYE,1.3000,103.7000
`)

	sensors, err := LoadSensors(path)
	require.NoError(t, err)
	require.Len(t, sensors, 2)
	assert.Equal(t, "S12", sensors[0].Id)
	assert.Equal(t, 1.34, sensors[0].Point.Lat)
	assert.Equal(t, 103.81, sensors[0].Point.Lon)
}

func TestLoadSensorsSkipsMalformedRows(t *testing.T) {
	path := writeCSV(t, "sensors.csv", `LinkID,AvgLat,AvgLon
S12,1.3400,103.8100
S13,north,103.7000
`)

	sensors, err := LoadSensors(path)
	require.NoError(t, err)
	assert.Len(t, sensors, 1)
}

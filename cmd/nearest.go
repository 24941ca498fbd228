package cmd

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"roadwatch/internal/config"
	"roadwatch/internal/geo"
	"roadwatch/internal/store"
)

var sensorFile string

// nearest reconciles the camera table against an external sensor-location
// table, printing each camera's closest sensor and the distance to it.
var nearestCommand = &cobra.Command{
	Use:   "nearest",
	Short: "Match each camera to its nearest sensor location",
	Run: func(cmd *cobra.Command, args []string) {
		runNearest()
	},
}

func init() {
	nearestCommand.Flags().StringVarP(&sensorFile, "sensors", "s", "", "Path to sensor-location CSV (id first, lat/lon as the two rightmost columns)")
	nearestCommand.MarkFlagRequired("sensors")
}

func runNearest() {
	conf, err := config.InitConfig(configFile)
	if err != nil {
		logrus.Fatal("initConfig error, ", err.Error())
	}

	cameras, err := store.LoadCameraCoords(conf.CameraFile)
	if err != nil {
		logrus.Fatalf("load cameras error, %s", err.Error())
	}
	sensors, err := store.LoadSensors(sensorFile)
	if err != nil {
		logrus.Fatalf("load sensors error, %s", err.Error())
	}

	points := make([]geo.Point, len(sensors))
	for i, s := range sensors {
		points[i] = s.Point
	}

	cameraIds := make([]int, 0, len(cameras))
	for id := range cameras {
		cameraIds = append(cameraIds, id)
	}
	sort.Ints(cameraIds)

	for _, id := range cameraIds {
		cam := cameras[id]
		idx, _, dist, err := geo.Closest(points, geo.Point{Lat: cam.Latitude, Lon: cam.Longitude})
		if err != nil {
			logrus.Fatalf("closest match error, %s", err.Error())
		}
		fmt.Printf("camera %d -> sensor %s, %.1fm\n", id, sensors[idx].Id, dist)
	}
}

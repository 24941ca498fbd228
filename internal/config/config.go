package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"roadwatch/internal/classify"
)

type TritonConfig struct {
	ServerAddr string `yaml:"serverAddr" validate:"required"`
	ModelName  string `yaml:"modelName" validate:"required"`
}

type DetectConfig struct {
	Confidence   float64 `yaml:"confidence" validate:"gt=0,lte=1"`
	Overlap      float64 `yaml:"overlap" validate:"gt=0,lte=1"`
	TimeoutSec   int     `yaml:"timeoutSec" validate:"gte=0"`
	SkipFailures bool    `yaml:"skipFailures"`
}

// DensityConfig carries the physical calibration for density/jam scoring.
// The defaults replicate an assumed 0.3-unit lane-segment area; they should
// be recalibrated per deployment.
type DensityConfig struct {
	AreaFactor   float64 `yaml:"areaFactor" validate:"gt=0"`
	JamThreshold float64 `yaml:"jamThreshold" validate:"gt=0"`
}

type WindowConfig struct {
	Start string `yaml:"start" validate:"required"`
	End   string `yaml:"end" validate:"required"`
}

type Config struct {
	ImagesDir   string         `yaml:"imagesDir" validate:"required"`
	ROIFile     string         `yaml:"roiFile" validate:"required"`
	CameraFile  string         `yaml:"cameraFile" validate:"required"`
	OutputFile  string         `yaml:"outputFile" validate:"required"`
	Workers     int            `yaml:"workers" validate:"gte=1"`
	Triton      TritonConfig   `yaml:"triton"`
	Detect      DetectConfig   `yaml:"detect"`
	Density     DensityConfig  `yaml:"density"`
	PeakWindows []WindowConfig `yaml:"peakWindows" validate:"min=1,dive"`
}

func DefaultConfig() *Config {
	return &Config{
		ImagesDir:  "./images",
		ROIFile:    "./roi.csv",
		CameraFile: "./cameras.csv",
		OutputFile: "./observations.csv",
		Workers:    1,
		Triton: TritonConfig{
			ServerAddr: "localhost:8001",
			ModelName:  "vehicle",
		},
		Detect: DetectConfig{
			Confidence:   0.5,
			Overlap:      0.8,
			TimeoutSec:   30,
			SkipFailures: true,
		},
		Density: DensityConfig{
			AreaFactor:   0.3,
			JamThreshold: 23.33,
		},
		PeakWindows: []WindowConfig{
			{Start: "08:00", End: "10:00"},
			{Start: "18:00", End: "20:30"},
		},
	}
}

// Schedule builds the peak classifier from the configured windows.
func (c *Config) Schedule() (classify.Schedule, error) {
	windows := make([]classify.Window, 0, len(c.PeakWindows))
	for _, w := range c.PeakWindows {
		win, err := classify.ParseWindow(w.Start, w.End)
		if err != nil {
			return classify.Schedule{}, err
		}
		windows = append(windows, win)
	}
	return classify.Schedule{Windows: windows}, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if _, err := c.Schedule(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

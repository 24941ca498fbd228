package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"roadwatch/internal/config"
	"roadwatch/internal/detector"
	"roadwatch/internal/pipeline"
	"roadwatch/internal/store"
)

var countCommand = &cobra.Command{
	Use:   "count",
	Short: "Run the vehicle-count batch over the image corpus",
	Run: func(cmd *cobra.Command, args []string) {
		runCount()
	},
}

func runCount() {
	conf, err := config.InitConfig(configFile)
	if err != nil {
		logrus.Fatal("initConfig error, ", err.Error())
	}
	logrus.Infof("config: %+v", conf)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logrus.Info("signal received, stopping batch")
		cancel()
	}()

	det, err := detector.NewTriton(ctx, conf.Triton.ServerAddr, conf.Triton.ModelName)
	if err != nil {
		logrus.Fatalf("newTriton error, %s", err.Error())
	}

	p, err := pipeline.New(conf, det)
	if err != nil {
		logrus.Fatalf("newPipeline error, %s", err.Error())
	}

	res, err := p.Run(ctx)
	if err != nil {
		logrus.Fatalf("pipeline run error, %s", err.Error())
	}

	if err := store.WriteObservations(conf.OutputFile, res.Observations); err != nil {
		logrus.Fatalf("write observations error, %s", err.Error())
	}
	if err := writeManifest(conf.OutputFile, res); err != nil {
		logrus.Errorf("write manifest error, %s", err.Error())
	}

	logrus.Infof("wrote %d observations to %s", len(res.Observations), conf.OutputFile)
}

// writeManifest drops the run counters next to the observation table.
func writeManifest(outputFile string, res *pipeline.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	path := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + "_manifest.json"
	return os.WriteFile(path, data, 0644)
}

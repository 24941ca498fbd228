// Package pipeline runs the traffic-density batch: for every corpus image
// and every ROI of its camera it masks the region, invokes the detector,
// scores density/jam, persists diagnostics and emits one observation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"roadwatch/internal/classify"
	"roadwatch/internal/config"
	"roadwatch/internal/detector"
	"roadwatch/internal/model"
	"roadwatch/internal/store"
	"roadwatch/pkg/log"
)

var ErrMissingReferenceData = errors.New("no ROI or coordinate row for camera")

// DetectionError wraps a detector failure with the camera/direction it
// happened on.
type DetectionError struct {
	CameraId  int
	Direction string
	Err       error
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("detect camera %d direction %s: %v", e.CameraId, e.Direction, e.Err)
}

func (e *DetectionError) Unwrap() error { return e.Err }

// Result is what one batch run produced, plus skip counters for the
// run manifest.
type Result struct {
	RunId            string    `json:"runId"`
	StartedAt        time.Time `json:"startedAt"`
	FinishedAt       time.Time `json:"finishedAt"`
	Images           int       `json:"images"`
	SkippedImages    int       `json:"skippedImages"`
	InvalidNames     int       `json:"invalidNames"`
	MissingReference int       `json:"missingReference"`
	SkippedROIs      int       `json:"skippedRois"`
	FailedDetections int       `json:"failedDetections"`

	Observations []model.Observation `json:"-"`
}

type tally struct {
	skippedImages    int
	invalidNames     int
	missingReference int
	skippedROIs      int
	failedDetections int
}

// Pipeline owns the read-only reference tables for the duration of a run
// and fans images out to a bounded worker pool.
type Pipeline struct {
	conf      *config.Config
	det       detector.Detector
	rois      store.ROITable
	coords    map[int]model.CameraCoord
	density   classify.Density
	schedule  classify.Schedule
	artifacts *artifactWriter
	logger    *logrus.Entry
	runId     string
}

func New(conf *config.Config, det detector.Detector) (*Pipeline, error) {
	rois, err := store.LoadROIs(conf.ROIFile)
	if err != nil {
		return nil, err
	}
	coords, err := store.LoadCameraCoords(conf.CameraFile)
	if err != nil {
		return nil, err
	}
	schedule, err := conf.Schedule()
	if err != nil {
		return nil, err
	}

	runId := uuid.NewString()
	return &Pipeline{
		conf:   conf,
		det:    det,
		rois:   rois,
		coords: coords,
		density: classify.Density{
			AreaFactor:   conf.Density.AreaFactor,
			JamThreshold: conf.Density.JamThreshold,
		},
		schedule:  schedule,
		artifacts: &artifactWriter{root: conf.ImagesDir},
		logger:    log.NewLogger().WithField(log.CtxRunId, runId),
		runId:     runId,
	}, nil
}

// Run processes every image in the corpus and returns the assembled
// observation table. Per-image and per-ROI failures are logged, counted
// and skipped; a detector failure aborts the run only when
// detect.skipFailures is disabled. With workers=1 observation order
// follows corpus order; with more workers records stay grouped per image.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	paths, err := store.ListImages(p.conf.ImagesDir)
	if err != nil {
		return nil, err
	}

	res := &Result{RunId: p.runId, StartedAt: time.Now(), Images: len(paths)}
	p.logger.Infof("starting batch over %d images with %d workers", len(paths), p.conf.Workers)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	jobs := make(chan string)
	workers := p.conf.Workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				obs, t, err := p.processImage(runCtx, path)

				mu.Lock()
				res.SkippedImages += t.skippedImages
				res.InvalidNames += t.invalidNames
				res.MissingReference += t.missingReference
				res.SkippedROIs += t.skippedROIs
				res.FailedDetections += t.failedDetections
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					cancel()
					continue
				}
				res.Observations = append(res.Observations, obs...)
				mu.Unlock()
			}
		}()
	}

	for _, path := range paths {
		if runCtx.Err() != nil {
			break
		}
		select {
		case jobs <- path:
		case <-runCtx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.FinishedAt = time.Now()
	p.logger.Infof("batch done: %d observations from %d images (%d skipped)",
		len(res.Observations), res.Images, res.SkippedImages)
	return res, nil
}

func (p *Pipeline) processImage(ctx context.Context, path string) ([]model.Observation, tally, error) {
	var t tally
	name := filepath.Base(path)
	logger := p.logger.WithField("image", name)

	identity, err := store.ParseImageName(name)
	if err != nil {
		logger.Warnf("skipping image: %v", err)
		t.invalidNames++
		t.skippedImages++
		return nil, t, nil
	}

	rois := p.rois.ForCamera(identity.CameraId)
	coord, hasCoord := p.coords[identity.CameraId]
	if len(rois) == 0 || !hasCoord {
		logger.Warnf("skipping image: %v: camera %d", ErrMissingReferenceData, identity.CameraId)
		t.missingReference++
		t.skippedImages++
		return nil, t, nil
	}

	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		logger.Warnf("skipping image: decode failed")
		t.skippedImages++
		return nil, t, nil
	}
	defer img.Close()

	isWeekday := classify.IsWeekday(identity.Timestamp)
	isPeak := p.schedule.IsPeak(identity.Timestamp)

	var out []model.Observation
	for _, roi := range rois {
		if err := ctx.Err(); err != nil {
			return nil, t, err
		}

		masked, err := MaskRegion(img, roi.Polygon)
		if err != nil {
			logger.Warnf("skipping region %s: %v", roi.Direction, err)
			t.skippedROIs++
			continue
		}

		boxes, err := p.detect(ctx, masked)
		if err != nil {
			masked.Close()
			derr := &DetectionError{CameraId: identity.CameraId, Direction: roi.Direction, Err: err}
			if !p.conf.Detect.SkipFailures {
				return nil, t, derr
			}
			logger.Warnf("skipping region: %v", derr)
			t.failedDetections++
			t.skippedROIs++
			continue
		}

		count := len(boxes)
		density, jam := p.density.Classify(count)

		if err := p.artifacts.Write(masked, boxes, identity.CameraId, roi.Direction, jam); err != nil {
			// diagnostics only, the observation still counts
			logger.WithError(err).Errorf("write artifacts for direction %s", roi.Direction)
		}
		masked.Close()

		out = append(out, model.Observation{
			CameraId:     identity.CameraId,
			Direction:    roi.Direction,
			VehicleCount: count,
			Density:      density,
			Timestamp:    identity.Timestamp,
			Latitude:     coord.Latitude,
			Longitude:    coord.Longitude,
			IsWeekday:    isWeekday,
			IsPeak:       isPeak,
			Jam:          jam,
		})
	}
	return out, t, nil
}

// detect bounds one detector invocation so a stalled call fails that ROI
// instead of blocking the whole batch.
func (p *Pipeline) detect(ctx context.Context, masked gocv.Mat) ([]model.Box, error) {
	if p.conf.Detect.TimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(p.conf.Detect.TimeoutSec)*time.Second)
		defer cancel()
	}
	return p.det.Detect(ctx, masked, p.conf.Detect.Confidence, p.conf.Detect.Overlap)
}

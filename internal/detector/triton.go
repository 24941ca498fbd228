package detector

import (
	"context"
	"errors"
	"fmt"

	"github.com/Trendyol/go-triton-client/base"
	tritonGrpc "github.com/Trendyol/go-triton-client/client/grpc"
	"gocv.io/x/gocv"

	"roadwatch/internal/model"
)

// Triton runs vehicle detection against a Triton inference server. The
// model takes a FRAME uint8 tensor plus scalar CONFIDENCE/IOU thresholds
// and returns DETECTIONS as [N, 6] float rows of x1, y1, x2, y2, score,
// class id.
type Triton struct {
	cli       base.Client
	modelName string
}

func NewTriton(ctx context.Context, serverAddr, modelName string) (*Triton, error) {
	cli, err := tritonGrpc.NewClient(
		serverAddr,
		false, // verbose logging
		30,    // connection timeout in seconds
		30,    // network timeout in seconds
		false, // use ssl
		true,  // insecure connection
		nil,   // existing grpc connection
		nil,   // logger
	)
	if err != nil {
		return nil, err
	}

	if isLive, err := cli.IsServerLive(ctx, nil); err != nil {
		return nil, err
	} else if !isLive {
		return nil, errors.New("triton server is not live")
	}

	if isReady, err := cli.IsServerReady(ctx, nil); err != nil {
		return nil, err
	} else if !isReady {
		return nil, errors.New("triton server is not ready")
	}

	if isReady, err := cli.IsModelReady(ctx, modelName, "1", nil); err != nil {
		return nil, err
	} else if !isReady {
		return nil, fmt.Errorf("triton model %s is not ready", modelName)
	}

	return &Triton{cli: cli, modelName: modelName}, nil
}

func (t *Triton) Detect(ctx context.Context, img gocv.Mat, confidence, overlap float64) ([]model.Box, error) {
	frameInput := tritonGrpc.NewInferInput("FRAME", "BYTES", []int64{int64(img.Rows()), int64(img.Cols()), 3}, nil)
	if err := frameInput.SetData(img.ToBytes(), true); err != nil {
		return nil, fmt.Errorf("set FRAME input data: %v", err)
	}
	frameInput.SetDatatype("UINT8")

	confInput := tritonGrpc.NewInferInput("CONFIDENCE", "FP32", []int64{1}, nil)
	if err := confInput.SetData([]float32{float32(confidence)}, true); err != nil {
		return nil, fmt.Errorf("set CONFIDENCE input data: %v", err)
	}

	iouInput := tritonGrpc.NewInferInput("IOU", "FP32", []int64{1}, nil)
	if err := iouInput.SetData([]float32{float32(overlap)}, true); err != nil {
		return nil, fmt.Errorf("set IOU input data: %v", err)
	}

	outputs := []base.InferOutput{
		tritonGrpc.NewInferOutput("DETECTIONS", map[string]any{"binary_data": false}),
	}

	response, err := t.cli.Infer(
		ctx,
		t.modelName,
		"1",
		[]base.InferInput{frameInput, confInput, iouInput},
		outputs,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("inference failed: %v", err)
	}

	detections, err := response.AsFloat32Slice("DETECTIONS")
	if err != nil {
		return nil, fmt.Errorf("get detection data: %v", err)
	}

	var boxes []model.Box
	// detections has shape [N, 6]: x1, y1, x2, y2, confidence, class_id
	for i := 0; i+5 < len(detections); i += 6 {
		score := detections[i+4]
		// the model already thresholds, this guards against loose configs
		if float64(score) < confidence {
			continue
		}
		boxes = append(boxes, model.Box{
			X1:         int(detections[i]),
			Y1:         int(detections[i+1]),
			X2:         int(detections[i+2]),
			Y2:         int(detections[i+3]),
			Confidence: score,
			ClassId:    int(detections[i+5]),
		})
	}
	return boxes, nil
}

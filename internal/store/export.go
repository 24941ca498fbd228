package store

import (
	"encoding/csv"
	"fmt"
	"os"

	"roadwatch/internal/model"
)

// WriteObservations writes the observation table to path as CSV, one row
// per observation under model.ObservationColumns, preserving order.
func WriteObservations(path string, observations []model.Observation) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(model.ObservationColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range observations {
		if err := writer.Write(observations[i].CSVRecord()); err != nil {
			return fmt.Errorf("write observation: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

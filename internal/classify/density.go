// Package classify turns raw pipeline measurements into the categorical
// fields of an observation: density/jam and weekday/peak flags.
package classify

// Density converts a vehicle count over a fixed-area ROI into a density
// value and a binary jam verdict. AreaFactor is the assumed lane-segment
// area and JamThreshold the congestion cutoff; both are calibration
// parameters tied to the camera's ROI geometry and come from configuration.
type Density struct {
	AreaFactor   float64
	JamThreshold float64
}

// Classify returns the density for count vehicles and whether it crosses
// the jam threshold.
func (d Density) Classify(count int) (float64, bool) {
	density := float64(count) / d.AreaFactor
	return density, density >= d.JamThreshold
}

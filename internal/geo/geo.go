// Package geo holds the great-circle distance and nearest-point helpers used
// to reconcile cameras with other geolocated reference data.
package geo

import (
	"errors"
	"math"
)

// Mean Earth radius in meters.
const earthRadiusMeters = 6.371e6

var ErrNoCandidates = errors.New("closest match: empty candidate set")

// Point is a location in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceMeters returns the great-circle (haversine) distance in meters
// between two points given in decimal degrees.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := radians(lat1)
	rlat2 := radians(lat2)
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)

	// Rounding can push a marginally past 1 for near-antipodal pairs,
	// which would make Asin return NaN.
	c := 2 * math.Asin(math.Min(1, math.Sqrt(a)))
	return c * earthRadiusMeters
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Closest scans candidates for the point nearest to ref and returns its
// position, the point itself and the distance in meters. Ties keep the
// first occurrence. An empty candidate set yields ErrNoCandidates.
func Closest(candidates []Point, ref Point) (int, Point, float64, error) {
	if len(candidates) == 0 {
		return -1, Point{}, 0, ErrNoCandidates
	}

	bestIdx := 0
	bestDist := DistanceMeters(ref.Lat, ref.Lon, candidates[0].Lat, candidates[0].Lon)
	for i := 1; i < len(candidates); i++ {
		d := DistanceMeters(ref.Lat, ref.Lon, candidates[i].Lat, candidates[i].Lon)
		if d < bestDist {
			bestIdx = i
			bestDist = d
		}
	}
	return bestIdx, candidates[bestIdx], bestDist, nil
}

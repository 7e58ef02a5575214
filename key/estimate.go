package key

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Krumhansl-Kessler probe-tone profiles, tonic first.
var (
	majorProfile = []float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = []float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

func shiftProfile(profile []float64, tonic int) []float64 {
	shifted := make([]float64, 12)
	for i := 0; i < 12; i++ {
		shifted[i] = profile[(i-tonic+12)%12]
	}
	return shifted
}

// Estimate correlates a pitch-class weight histogram with the 24 major and
// minor key profiles and returns the best key with its correlation. A flat
// or empty histogram has no key.
func Estimate(weights [12]float64) (Context, float64) {
	x := weights[:]
	best, bestScore := None(), math.Inf(-1)
	for tonic := 0; tonic < 12; tonic++ {
		for _, minor := range []bool{false, true} {
			profile := majorProfile
			if minor {
				profile = minorProfile
			}
			score := stat.Correlation(x, shiftProfile(profile, tonic), nil)
			if math.IsNaN(score) {
				return None(), 0
			}
			if score > bestScore {
				best, _ = New(tonic, minor)
				bestScore = score
			}
		}
	}
	return best, bestScore
}

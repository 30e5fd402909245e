package scoring

import "math"

// Salary scoring constants. The two disjoint-range branches are
// intentionally asymmetric: a job paying more than the candidate expects is
// penalized less harshly than a job offering less, mirroring negotiation
// dynamics.
const (
	noSalaryDataDefault = 0.7
	favorableGapFloor   = 0.2
	unfavorableGapFloor = 0.1
)

// SalaryMatchScore scores the compatibility of the two salary ranges. A
// zero value for any of the four bounds means "unspecified" and yields the
// neutral default: the scorer cannot judge.
func SalaryMatchScore(candidateMin, candidateMax, jobMin, jobMax int) float64 {
	if candidateMin == 0 || candidateMax == 0 || jobMin == 0 || jobMax == 0 {
		return noSalaryDataDefault
	}

	overlapLow := math.Max(float64(candidateMin), float64(jobMin))
	overlapHigh := math.Min(float64(candidateMax), float64(jobMax))

	if overlapHigh >= overlapLow {
		overlap := overlapHigh - overlapLow
		candidateRange := float64(candidateMax - candidateMin)
		jobRange := float64(jobMax - jobMin)

		// A zero-width range that overlaps is fully covered.
		candidateRatio := 1.0
		if candidateRange > 0 {
			candidateRatio = overlap / candidateRange
		}
		jobRatio := 1.0
		if jobRange > 0 {
			jobRatio = overlap / jobRange
		}

		return math.Min(1.0, (candidateRatio+jobRatio)/2.0)
	}

	if candidateMax < jobMin {
		// Job pays more than the candidate expects: favorable gap.
		gap := float64(jobMin - candidateMax)
		return math.Max(favorableGapFloor, 1.0-gap/float64(candidateMax))
	}

	// Candidate wants more than the job offers.
	gap := float64(candidateMin - jobMax)
	return math.Max(unfavorableGapFloor, 1.0-gap/float64(jobMax))
}

package scoring

import (
	"strings"

	"github.com/talentmatch/go-match-engine/model"
)

// Location scores. Remote and hybrid short-circuit: physical location is
// moot or secondary. Onsite comparison tolerates "City, State" vs "City"
// formatting via component/substring matching, without geocoding.
const (
	remoteScore            = 1.0
	hybridScore            = 0.8
	exactLocationScore     = 1.0
	partialLocationScore   = 0.7
	preferredLocationScore = 0.8
	locationMismatchScore  = 0.3
	noLocationDataScore    = 0.6
)

// LocationMatchScore scores physical compatibility between candidate and
// job. Unrecognized remote types fall through to the onsite comparison,
// which returns the neutral-ish 0.6 when no comparison is possible.
func LocationMatchScore(candidate *model.CandidateSnapshot, job *model.JobSnapshot) float64 {
	switch job.RemoteType {
	case model.RemoteTypeRemote:
		return remoteScore
	case model.RemoteTypeHybrid:
		return hybridScore
	}

	jobLoc := normalizeLocation(job.Location)
	candLoc := normalizeLocation(candidate.Location)

	if jobLoc == "" || (candLoc == "" && len(candidate.PreferredLocations) == 0) {
		return noLocationDataScore
	}

	if candLoc != "" && candLoc == jobLoc {
		return exactLocationScore
	}

	// "San Francisco, CA" vs "San Francisco": any comma-separated
	// component of the candidate location appearing in the job location
	// counts as a partial match.
	if candLoc != "" {
		for _, part := range strings.Split(candLoc, ",") {
			part = strings.TrimSpace(part)
			if part != "" && strings.Contains(jobLoc, part) {
				return partialLocationScore
			}
		}
	}

	for _, preferred := range candidate.PreferredLocations {
		if p := normalizeLocation(preferred); p != "" && strings.Contains(p, jobLoc) {
			return preferredLocationScore
		}
	}

	return locationMismatchScore
}

func normalizeLocation(loc string) string {
	return strings.ToLower(strings.TrimSpace(loc))
}

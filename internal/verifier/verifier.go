// ABOUTME: Forest verification collaborator boundary and coverage scoring
// ABOUTME: Defines the Verifier interface and the sequestration calculation

package verifier

import "context"

// VerifiedThreshold is the minimum forest coverage for a location to be
// considered verified.
const VerifiedThreshold = 0.75

// baseSequestrationRate is the average carbon a forest sequesters, in
// metric tons per acre per year.
const baseSequestrationRate = 2.5

// Verification is the outcome of scoring a location's forest coverage.
type Verification struct {
	Verified       bool    `json:"verified"`
	ForestCoverage float64 `json:"forest_coverage"`
	Confidence     float64 `json:"confidence"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

// Verifier scores forest coverage at a location. The real scorer is an
// external imagery/ML collaborator; implementations here stand in at the
// same boundary.
type Verifier interface {
	VerifyForest(ctx context.Context, lat, lon float64) (*Verification, error)
}

// CarbonSequestration estimates annual sequestration in metric tons for
// an area, scaled by its forest coverage.
func CarbonSequestration(acres, forestCoverage float64) float64 {
	return acres * forestCoverage * baseSequestrationRate
}

// Result builds a Verification from a raw coverage score, applying the
// verified threshold and the confidence scaling shared by all
// implementations.
func Result(lat, lon, coverage float64) *Verification {
	confidence := coverage * 1.25
	if confidence > 0.99 {
		confidence = 0.99
	}
	return &Verification{
		Verified:       coverage > VerifiedThreshold,
		ForestCoverage: coverage,
		Confidence:     confidence,
		Latitude:       lat,
		Longitude:      lon,
	}
}

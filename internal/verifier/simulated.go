// ABOUTME: Deterministic simulated verifier for development and demos
// ABOUTME: Derives a stable coverage score from the location coordinates

package verifier

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
)

// Simulated is a Verifier that derives a stable pseudo-coverage score
// from the coordinates alone. The same location always scores the same,
// which makes credit flows reproducible without the external imagery
// collaborator.
type Simulated struct {
	logger *slog.Logger
}

// NewSimulated creates a simulated verifier.
func NewSimulated(logger *slog.Logger) *Simulated {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulated{logger: logger.With("component", "verifier")}
}

// VerifyForest scores the location deterministically.
func (s *Simulated) VerifyForest(ctx context.Context, lat, lon float64) (*Verification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "%.6f:%.6f", lat, lon)
	coverage := float64(h.Sum64()%10000) / 10000.0

	v := Result(lat, lon, coverage)
	s.logger.Debug("forest verification scored",
		"lat", lat,
		"lon", lon,
		"forest_coverage", v.ForestCoverage,
		"verified", v.Verified,
	)
	return v, nil
}

// Static is a Verifier returning a fixed coverage score, for tests.
type Static struct {
	Coverage float64
	Err      error
}

// VerifyForest returns the configured score or error.
func (s *Static) VerifyForest(ctx context.Context, lat, lon float64) (*Verification, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return Result(lat, lon, s.Coverage), nil
}

package domain

import (
	"errors"
	"fmt"
)

// ErrInsufficientData indicates fewer than two valid observations remained
// after validation. No partial result is produced.
var ErrInsufficientData = errors.New("wind profile requires at least two valid observations")

// InvalidObservationError describes a single malformed observation. The
// normalizer drops the offending observation and keeps going; the profile only
// fails when too few valid observations remain.
type InvalidObservationError struct {
	Index  int
	Reason string
}

func (e InvalidObservationError) Error() string {
	return fmt.Sprintf("invalid observation at index %d: %s", e.Index, e.Reason)
}

// DuplicateHeightError indicates two observations share a height. Duplicate
// heights are never merged; the whole profile is rejected.
type DuplicateHeightError struct {
	HeightM float64
}

func (e DuplicateHeightError) Error() string {
	return fmt.Sprintf("duplicate observation height %.1f m", e.HeightM)
}

// InvalidStormMotionError indicates an explicitly supplied storm motion failed
// range validation. The resolver falls back to the Bunkers estimate instead of
// failing the request.
type InvalidStormMotionError struct {
	DirectionDeg float64
	SpeedKt      float64
}

func (e InvalidStormMotionError) Error() string {
	return fmt.Sprintf("storm motion %.1f°/%.1f kt outside valid ranges (direction [0,360], speed [0,100])",
		e.DirectionDeg, e.SpeedKt)
}

// Warning codes attached to an AnalysisResult for non-fatal conditions. They
// explain why specific parameters are absent; the rest of the computation
// proceeds.
const (
	// WarnShallowProfile: the profile does not reach the depth a parameter
	// needs, so that parameter is omitted (Bunkers still estimates from the
	// available depth).
	WarnShallowProfile = "shallow_profile"

	// WarnStormMotionRejected: the explicit storm motion failed range
	// validation and the Bunkers estimate was used instead.
	WarnStormMotionRejected = "storm_motion_rejected"

	// WarnObservationsDropped: one or more raw observations were rejected
	// during normalization.
	WarnObservationsDropped = "observations_dropped"

	// WarnNoSurfaceWind: no surface wind was supplied, so the critical angle
	// and effective shear layer are omitted.
	WarnNoSurfaceWind = "no_surface_wind"
)

package domain

import "time"

// SRH and bulk shear depth bins, in metres.
var (
	srhBinsM   = []float64{500, 1000, 3000}
	shearBinsM = []float64{1000, 3000, 6000}
)

// AnalysisRequest is the immutable per-request input to the engine: the raw
// profile plus the optional operator inputs. The engine holds no state between
// requests; concurrent analyses need no coordination.
type AnalysisRequest struct {
	RequestID    string
	SiteID       string
	Observations []WindObservation

	// StormMotion is the operator-entered motion vector; nil means estimate
	// internally. SurfaceWind is a ground (METAR) wind observation inserted
	// at height 0; nil means the profile starts at the lowest radar level.
	StormMotion *StormMotion
	SurfaceWind *WindObservation

	Mover         Mover
	IncludeHalfKm bool
}

// AnalysisConfig carries the injectable policy knobs of the engine.
type AnalysisConfig struct {
	ShearLayer ShearLayerConfig
}

// DefaultAnalysisConfig returns the reference configuration.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{ShearLayer: DefaultShearLayerConfig()}
}

// DerivedParameters holds every scalar/vector parameter the engine derives.
// Nil fields were not computable from the supplied inputs; they are omitted
// from the serialized form so consumers can tell "not computed" from zero.
type DerivedParameters struct {
	SRH500M  *float64 `json:"srh_0_500m,omitempty"`  // m²/s²
	SRH1Km   *float64 `json:"srh_0_1km,omitempty"`   // m²/s²
	SRH3Km   *float64 `json:"srh_0_3km,omitempty"`   // m²/s²
	Shear1Km *float64 `json:"shear_1km_kt,omitempty"`
	Shear3Km *float64 `json:"shear_3km_kt,omitempty"`
	Shear6Km *float64 `json:"shear_6km_kt,omitempty"`

	ShearLayer    *ShearLayer `json:"shear_layer,omitempty"`
	CriticalAngle *float64    `json:"critical_angle_deg,omitempty"`

	Bunkers *BunkersEstimate `json:"bunkers,omitempty"`
}

// AnalysisResult is the engine's complete output for one request: the
// plot-ready storm-relative point sequence, the derived parameters, and the
// storm motion every parameter was computed against.
type AnalysisResult struct {
	RequestID string `json:"request_id"`
	SiteID    string `json:"site_id"`

	Points      []HodographPoint  `json:"hodograph_points"`
	Parameters  DerivedParameters `json:"parameters"`
	StormMotion StormMotion       `json:"storm_motion"`
	Source      MotionSource      `json:"storm_motion_source"`

	Warnings   []string  `json:"warnings,omitempty"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Analyze runs the full storm-relative kinematics computation. Fatal input
// errors (duplicate heights, too few observations) abort with a typed error;
// everything else degrades to absent parameters plus a warning. The storm
// motion resolved here is threaded unchanged through helicity, shear, and
// hodograph construction.
func Analyze(req AnalysisRequest, cfg AnalysisConfig) (AnalysisResult, error) {
	observations := req.Observations
	if req.SurfaceWind != nil {
		surface := *req.SurfaceWind
		surface.HeightM = 0
		observations = append([]WindObservation{surface}, observations...)
	}

	profile, dropped, err := NormalizeProfile(observations)
	if err != nil {
		return AnalysisResult{}, err
	}

	result := AnalysisResult{
		RequestID:  req.RequestID,
		SiteID:     req.SiteID,
		AnalyzedAt: clock.Now(),
	}
	if len(dropped) > 0 {
		result.Warnings = append(result.Warnings, WarnObservationsDropped)
	}

	resolved := ResolveStormMotion(profile, req.StormMotion, req.Mover)
	result.StormMotion = resolved.Motion
	result.Source = resolved.Source
	result.Parameters.Bunkers = &resolved.Bunkers
	if resolved.Shallow {
		result.Warnings = append(result.Warnings, WarnShallowProfile)
	}
	if resolved.Rejected != nil {
		result.Warnings = append(result.Warnings, WarnStormMotionRejected)
	}

	relative := StormRelative(profile, resolved.Motion)

	result.Parameters.SRH500M = ComputeSRH(relative, srhBinsM[0])
	result.Parameters.SRH1Km = ComputeSRH(relative, srhBinsM[1])
	result.Parameters.SRH3Km = ComputeSRH(relative, srhBinsM[2])

	result.Parameters.Shear1Km = ComputeBulkShear(profile, shearBinsM[0])
	result.Parameters.Shear3Km = ComputeBulkShear(profile, shearBinsM[1])
	result.Parameters.Shear6Km = ComputeBulkShear(profile, shearBinsM[2])

	if !resolved.Shallow && anyNil(
		result.Parameters.SRH500M, result.Parameters.SRH1Km, result.Parameters.SRH3Km,
		result.Parameters.Shear1Km, result.Parameters.Shear3Km, result.Parameters.Shear6Km,
	) {
		result.Warnings = append(result.Warnings, WarnShallowProfile)
	}

	// Critical angle and the effective shear layer are anchored at the true
	// surface; without a ground observation they are not meaningful.
	if req.SurfaceWind != nil {
		result.Parameters.CriticalAngle = ComputeCriticalAngle(profile, resolved.Motion)
		result.Parameters.ShearLayer = ComputeShearLayer(profile, cfg.ShearLayer)
	} else {
		result.Warnings = append(result.Warnings, WarnNoSurfaceWind)
	}

	result.Points = BuildHodograph(relative, req.IncludeHalfKm)

	return result, nil
}

func anyNil(values ...*float64) bool {
	for _, v := range values {
		if v == nil {
			return true
		}
	}
	return false
}

package domain

import "math"

// bunkersDeviationKt is the empirical deviation of supercell motion from the
// 0–6 km mean wind, 7.5 m/s in the standard Bunkers formulation, expressed in
// the engine's working unit.
const bunkersDeviationKt = 7.5 / KtToMps

// bunkersDepthM is the layer the Bunkers technique averages over.
const bunkersDepthM = 6000

// Mover selects which motion vector resolves a request when no explicit storm
// motion is supplied.
type Mover string

const (
	MoverRight Mover = "right-mover"
	MoverLeft  Mover = "left-mover"
	MoverMean  Mover = "mean-wind"
)

// ParseMover maps the wire-format selector (including the short forms the
// original UI used) onto a Mover. Unrecognized or empty values default to the
// right-mover.
func ParseMover(s string) Mover {
	switch s {
	case "blm", "left-mover":
		return MoverLeft
	case "mnw", "mean-wind":
		return MoverMean
	default:
		return MoverRight
	}
}

// BunkersEstimate is the internal-dynamics storm motion estimate: a
// right-mover/left-mover pair straddling the 0–6 km mean wind, offset
// perpendicular to the 0–6 km shear vector.
type BunkersEstimate struct {
	RightMover StormMotion `json:"right_mover"`
	LeftMover  StormMotion `json:"left_mover"`
	MeanWind   StormMotion `json:"mean_wind"`
}

// MotionSource records how a request's storm motion was resolved.
type MotionSource string

const (
	SourceExplicit     MotionSource = "explicit"
	SourceBunkersRight MotionSource = "bunkers-right"
	SourceBunkersLeft  MotionSource = "bunkers-left"
	SourceMeanWind     MotionSource = "mean-wind"
)

// ResolvedMotion is the outcome of storm motion resolution for one request.
// The Bunkers estimate is always computed so it can be reported alongside the
// resolved motion. Rejected is set when an explicit motion failed range
// validation and the estimate was used instead.
type ResolvedMotion struct {
	Motion   StormMotion
	Source   MotionSource
	Bunkers  BunkersEstimate
	Shallow  bool
	Rejected *InvalidStormMotionError
}

// ResolveStormMotion determines the storm motion for a request. An explicit
// motion that passes range validation wins; otherwise the Bunkers estimate is
// used, with the mover selecting between right, left, and mean wind. Shallow
// reports that the profile stops short of 6 km and the estimate was made from
// the available depth.
func ResolveStormMotion(profile Profile, explicit *StormMotion, mover Mover) ResolvedMotion {
	estimate, shallow := ComputeBunkers(profile)

	resolved := ResolvedMotion{Bunkers: estimate, Shallow: shallow}

	if explicit != nil {
		if validStormMotion(*explicit) {
			resolved.Motion = *explicit
			resolved.Source = SourceExplicit
			return resolved
		}
		resolved.Rejected = &InvalidStormMotionError{
			DirectionDeg: explicit.DirectionDeg,
			SpeedKt:      explicit.SpeedKt,
		}
	}

	switch mover {
	case MoverLeft:
		resolved.Motion = estimate.LeftMover
		resolved.Source = SourceBunkersLeft
	case MoverMean:
		resolved.Motion = estimate.MeanWind
		resolved.Source = SourceMeanWind
	default:
		resolved.Motion = estimate.RightMover
		resolved.Source = SourceBunkersRight
	}
	return resolved
}

func validStormMotion(m StormMotion) bool {
	return m.DirectionDeg >= 0 && m.DirectionDeg <= 360 &&
		m.SpeedKt >= 0 && m.SpeedKt <= 100
}

// ComputeBunkers estimates supercell motion from the profile. When the profile
// reaches 6 km the layer is clipped there, with the 6 km vector interpolated;
// shallower profiles use their full depth and report shallow=true.
func ComputeBunkers(profile Profile) (BunkersEstimate, bool) {
	top := profile.Top()
	shallow := top < bunkersDepthM

	layer := make([]WindVector, 0, len(profile)+1)
	for _, vec := range profile {
		if vec.HeightM <= bunkersDepthM {
			layer = append(layer, vec)
		}
	}
	if len(layer) == 0 {
		// The whole profile sits above the Bunkers layer, which is valid
		// input (elevated VAD bases). Estimate from what is available and
		// report it as degraded rather than failing the request.
		layer = append(layer, profile...)
		shallow = true
	}
	topVec := layer[len(layer)-1]
	if !shallow && topVec.HeightM < bunkersDepthM {
		interp, _ := profile.vectorAt(bunkersDepthM)
		layer = append(layer, interp)
		topVec = interp
	}

	var meanU, meanV float64
	for _, vec := range layer {
		meanU += vec.U
		meanV += vec.V
	}
	meanU /= float64(len(layer))
	meanV /= float64(len(layer))

	shearU := topVec.U - profile[0].U
	shearV := topVec.V - profile[0].V

	estimate := BunkersEstimate{MeanWind: polar(meanU, meanV)}

	// Zero shear leaves the perpendicular direction undefined; both movers
	// collapse onto the mean wind.
	shearMag := math.Hypot(shearU, shearV)
	if shearMag == 0 {
		estimate.RightMover = estimate.MeanWind
		estimate.LeftMover = estimate.MeanWind
		return estimate, shallow
	}

	scale := bunkersDeviationKt / shearMag
	estimate.RightMover = polar(meanU+scale*shearV, meanV-scale*shearU)
	estimate.LeftMover = polar(meanU-scale*shearV, meanV+scale*shearU)
	return estimate, shallow
}

func polar(u, v float64) StormMotion {
	direction, speed := vectorToWind(u, v)
	return StormMotion{DirectionDeg: direction, SpeedKt: speed}
}

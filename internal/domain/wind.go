package domain

import (
	"math"
	"sort"
)

// KtToMps converts knots to metres per second.
const KtToMps = 0.514444

// WindObservation is a raw wind report: height above radar level, the compass
// direction the wind blows from, and its speed. Variable marks a METAR "VRB"
// direction, which is treated as 0° by convention (see package doc).
type WindObservation struct {
	HeightM      float64
	DirectionDeg float64
	SpeedKt      float64
	Variable     bool
}

// WindVector is a wind observation decomposed into eastward (U) and northward
// (V) components, in knots.
type WindVector struct {
	HeightM float64 `json:"height_m"`
	U       float64 `json:"u"`
	V       float64 `json:"v"`
}

// Profile is a height-ordered sequence of wind vectors with strictly
// increasing, unique heights. Construct one via NormalizeProfile.
type Profile []WindVector

// Top returns the highest sampled height.
func (p Profile) Top() float64 { return p[len(p)-1].HeightM }

// Bottom returns the lowest sampled height.
func (p Profile) Bottom() float64 { return p[0].HeightM }

// StormMotion is a storm motion vector in polar form.
type StormMotion struct {
	DirectionDeg float64 `json:"direction_deg"`
	SpeedKt      float64 `json:"speed_kt"`
}

// Components decomposes the motion into (u, v) knots using the same
// meteorological convention as wind observations.
func (m StormMotion) Components() (float64, float64) {
	return windComponents(m.DirectionDeg, m.SpeedKt)
}

// windComponents converts meteorological direction/speed to (u, v).
// Direction is the bearing the wind comes from, so the vector points the
// opposite way.
func windComponents(directionDeg, speedKt float64) (u, v float64) {
	rad := directionDeg * math.Pi / 180
	return -speedKt * math.Sin(rad), -speedKt * math.Cos(rad)
}

// vectorToWind is the inverse of windComponents: it recovers direction
// [0,360) and speed from components. A zero vector reports direction 0.
func vectorToWind(u, v float64) (directionDeg, speedKt float64) {
	speedKt = math.Hypot(u, v)
	if speedKt == 0 {
		return 0, 0
	}
	directionDeg = math.Atan2(-u, -v) * 180 / math.Pi
	if directionDeg < 0 {
		directionDeg += 360
	}
	return directionDeg, speedKt
}

// NormalizeProfile converts raw observations into a height-ordered Cartesian
// profile. Observations with negative height or speed, or a non-variable
// direction outside [0,360), are dropped individually and reported in the
// returned rejection list. Duplicate heights and profiles with fewer than two
// valid observations are fatal.
func NormalizeProfile(observations []WindObservation) (Profile, []InvalidObservationError, error) {
	var rejected []InvalidObservationError
	valid := make([]WindObservation, 0, len(observations))

	for i, obs := range observations {
		if reason := validateObservation(obs); reason != "" {
			rejected = append(rejected, InvalidObservationError{Index: i, Reason: reason})
			continue
		}
		valid = append(valid, obs)
	}

	if len(valid) < 2 {
		return nil, rejected, ErrInsufficientData
	}

	sort.SliceStable(valid, func(i, j int) bool { return valid[i].HeightM < valid[j].HeightM })

	profile := make(Profile, len(valid))
	for i, obs := range valid {
		if i > 0 && obs.HeightM == valid[i-1].HeightM {
			return nil, rejected, DuplicateHeightError{HeightM: obs.HeightM}
		}
		direction := obs.DirectionDeg
		if obs.Variable {
			direction = 0
		}
		u, v := windComponents(direction, obs.SpeedKt)
		profile[i] = WindVector{HeightM: obs.HeightM, U: u, V: v}
	}

	return profile, rejected, nil
}

func validateObservation(obs WindObservation) string {
	switch {
	case obs.HeightM < 0:
		return "negative height"
	case obs.SpeedKt < 0:
		return "negative speed"
	case !obs.Variable && (obs.DirectionDeg < 0 || obs.DirectionDeg >= 360):
		return "direction outside [0,360)"
	}
	return ""
}

// vectorAt linearly interpolates the wind vector at the given height.
// Returns false when the height lies outside the sampled range.
func (p Profile) vectorAt(heightM float64) (WindVector, bool) {
	if len(p) == 0 || heightM < p.Bottom() || heightM > p.Top() {
		return WindVector{}, false
	}
	for i := 0; i < len(p)-1; i++ {
		lo, hi := p[i], p[i+1]
		if heightM == lo.HeightM {
			return lo, true
		}
		if heightM > lo.HeightM && heightM <= hi.HeightM {
			frac := (heightM - lo.HeightM) / (hi.HeightM - lo.HeightM)
			return WindVector{
				HeightM: heightM,
				U:       lo.U + frac*(hi.U-lo.U),
				V:       lo.V + frac*(hi.V-lo.V),
			}, true
		}
	}
	return p[len(p)-1], true
}

package domain

import "math"

// StormRelative subtracts the storm motion from every profile vector,
// producing the storm-relative wind series all derived parameters integrate
// over. Pure and deterministic; heights are unchanged.
func StormRelative(profile Profile, motion StormMotion) Profile {
	motionU, motionV := motion.Components()
	relative := make(Profile, len(profile))
	for i, vec := range profile {
		relative[i] = WindVector{HeightM: vec.HeightM, U: vec.U - motionU, V: vec.V - motionV}
	}
	return relative
}

// ComputeSRH integrates storm-relative helicity from the bottom of the
// storm-relative series up to binTopM, in m²/s². The vector at the exact bin
// boundary is linearly interpolated when the boundary falls between sampled
// levels. Returns nil when the series does not reach the bin top — absent is
// distinct from zero.
//
// Sign convention: storm-relative winds rotating clockwise with height
// (veering, right-mover-favorable) integrate positive.
func ComputeSRH(relative Profile, binTopM float64) *float64 {
	if relative.Top() < binTopM {
		return nil
	}

	layer := make([]WindVector, 0, len(relative)+1)
	for _, vec := range relative {
		if vec.HeightM <= binTopM {
			layer = append(layer, vec)
		}
	}
	if len(layer) == 0 || layer[len(layer)-1].HeightM < binTopM {
		boundary, ok := relative.vectorAt(binTopM)
		if !ok {
			return nil
		}
		layer = append(layer, boundary)
	}
	if len(layer) < 2 {
		return nil
	}

	var total float64
	for i := 0; i < len(layer)-1; i++ {
		lo, hi := layer[i], layer[i+1]
		total += (hi.U*lo.V - lo.U*hi.V) * KtToMps * KtToMps
	}
	return &total
}

// ComputeBulkShear returns the magnitude in knots of the vector difference
// between the interpolated wind at depthM and the lowest available level.
// Returns nil when the profile does not bracket depthM.
func ComputeBulkShear(profile Profile, depthM float64) *float64 {
	tip, ok := profile.vectorAt(depthM)
	if !ok {
		return nil
	}
	base := profile[0]
	magnitude := math.Hypot(tip.U-base.U, tip.V-base.V)
	return &magnitude
}

// criticalAngleDepthM is the shear layer the critical angle is measured over.
const criticalAngleDepthM = 500

// ComputeCriticalAngle returns the angle in [0,360) between the
// storm-relative surface wind (surface wind minus storm motion) and the
// 0–500 m shear vector. The profile's lowest level is taken as the surface.
// Returns nil when the 0–500 m shear is unavailable or either vector is
// degenerate.
func ComputeCriticalAngle(profile Profile, motion StormMotion) *float64 {
	tip, ok := profile.vectorAt(profile.Bottom() + criticalAngleDepthM)
	if !ok {
		return nil
	}

	surface := profile[0]
	motionU, motionV := motion.Components()

	relU, relV := surface.U-motionU, surface.V-motionV
	shearU, shearV := tip.U-surface.U, tip.V-surface.V

	if (relU == 0 && relV == 0) || (shearU == 0 && shearV == 0) {
		return nil
	}

	cross := relU*shearV - relV*shearU
	dot := relU*shearU + relV*shearV
	angle := math.Atan2(cross, dot) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return &angle
}

// ShearLayerConfig holds the qualification threshold for the effective shear
// layer. The exact rule is an operational policy choice, so it is injected
// rather than hardcoded; DefaultShearLayerConfig carries the reference value.
type ShearLayerConfig struct {
	// MaxDeviationDeg is the largest angular deviation from the
	// surface-to-lowest-radar-level reference vector a level may have and
	// still count as part of the aligned layer.
	MaxDeviationDeg float64
}

// DefaultShearLayerConfig returns the reference threshold of ±5°.
func DefaultShearLayerConfig() ShearLayerConfig {
	return ShearLayerConfig{MaxDeviationDeg: 5}
}

// ShearLayer is the effective inflow shear layer: the maximum depth over which
// the low-level shear stays aligned, and the bulk shear magnitude across it.
type ShearLayer struct {
	DepthM      float64 `json:"depth_m"`
	MagnitudeKt float64 `json:"magnitude_kt"`
}

// ComputeShearLayer finds the aligned shear layer anchored at the profile's
// lowest level (the surface wind, when one was supplied). Each level's shear
// vector from the surface is compared against the reference vector to the
// first elevated level; levels within the configured angular deviation
// qualify. Returns nil when no level qualifies.
func ComputeShearLayer(profile Profile, cfg ShearLayerConfig) *ShearLayer {
	if len(profile) < 2 {
		return nil
	}

	surface := profile[0]
	refU := profile[1].U - surface.U
	refV := profile[1].V - surface.V
	refMag := math.Hypot(refU, refV)
	if refMag == 0 {
		return nil
	}

	var top *WindVector
	for i := 1; i < len(profile); i++ {
		vecU := profile[i].U - surface.U
		vecV := profile[i].V - surface.V
		vecMag := math.Hypot(vecU, vecV)
		if vecMag == 0 {
			continue
		}
		cos := (refU*vecU + refV*vecV) / (refMag * vecMag)
		cos = math.Max(-1, math.Min(1, cos))
		deviation := math.Acos(cos) * 180 / math.Pi
		if deviation <= cfg.MaxDeviationDeg {
			top = &profile[i]
		}
	}
	if top == nil {
		return nil
	}

	return &ShearLayer{
		DepthM:      top.HeightM - surface.HeightM,
		MagnitudeKt: math.Hypot(top.U-surface.U, top.V-surface.V),
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStormRelative(t *testing.T) {
	profile, _, err := NormalizeProfile([]WindObservation{
		{HeightM: 0, DirectionDeg: 180, SpeedKt: 10},
		{HeightM: 1000, DirectionDeg: 270, SpeedKt: 20},
	})
	require.NoError(t, err)

	motion := StormMotion{DirectionDeg: 270, SpeedKt: 10} // vector (10, 0)
	relative := StormRelative(profile, motion)

	require.Len(t, relative, 2)
	assert.Equal(t, 0.0, relative[0].HeightM)
	assert.InDelta(t, -10, relative[0].U, 1e-9)
	assert.InDelta(t, 10, relative[0].V, 1e-9)
	assert.InDelta(t, 10, relative[1].U, 1e-9)
	assert.InDelta(t, 0, relative[1].V, 1e-9)

	// Input untouched.
	assert.InDelta(t, 0, profile[0].U, 1e-9)
}

func TestComputeSRH(t *testing.T) {
	t.Run("clockwise rotation integrates positive", func(t *testing.T) {
		relative := Profile{
			{HeightM: 0, U: 0, V: 10},
			{HeightM: 500, U: 7, V: 7},
			{HeightM: 1000, U: 10, V: 0},
		}
		srh := ComputeSRH(relative, 1000)
		require.NotNil(t, srh)
		assert.Positive(t, *srh)
	})

	t.Run("counter-clockwise rotation integrates negative", func(t *testing.T) {
		relative := Profile{
			{HeightM: 0, U: 10, V: 0},
			{HeightM: 500, U: 7, V: 7},
			{HeightM: 1000, U: 0, V: 10},
		}
		srh := ComputeSRH(relative, 1000)
		require.NotNil(t, srh)
		assert.Negative(t, *srh)
	})

	t.Run("single pair value", func(t *testing.T) {
		relative := Profile{
			{HeightM: 0, U: 5, V: 0},
			{HeightM: 1000, U: 0, V: 5},
		}
		srh := ComputeSRH(relative, 1000)
		require.NotNil(t, srh)
		// (u2*v1 - u1*v2) converted to m/s: -25 kt² * 0.514444².
		assert.InDelta(t, -25*KtToMps*KtToMps, *srh, 1e-9)
	})

	t.Run("bin boundary interpolated between levels", func(t *testing.T) {
		relative := Profile{
			{HeightM: 0, U: 0, V: 10},
			{HeightM: 2000, U: 10, V: 0},
		}
		srh := ComputeSRH(relative, 1000)
		require.NotNil(t, srh)

		// The interpolated 1 km vector is (5, 5); one clockwise pair worth
		// 50 kt² converted to m²/s².
		assert.InDelta(t, 50*KtToMps*KtToMps, *srh, 1e-9)
	})

	t.Run("bin above profile top is absent", func(t *testing.T) {
		relative := Profile{
			{HeightM: 0, U: 0, V: 10},
			{HeightM: 2000, U: 10, V: 0},
		}
		assert.Nil(t, ComputeSRH(relative, 3000))
	})

	t.Run("deterministic", func(t *testing.T) {
		relative := Profile{
			{HeightM: 0, U: 3, V: 9},
			{HeightM: 700, U: 8, V: 4},
			{HeightM: 1400, U: 12, V: -2},
		}
		first := ComputeSRH(relative, 1000)
		second := ComputeSRH(relative, 1000)
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, *first, *second)
	})
}

func TestComputeBulkShear(t *testing.T) {
	profile, _, err := NormalizeProfile([]WindObservation{
		{HeightM: 0, DirectionDeg: 0, SpeedKt: 0},
		{HeightM: 1000, DirectionDeg: 270, SpeedKt: 20},
		{HeightM: 3000, DirectionDeg: 270, SpeedKt: 40},
	})
	require.NoError(t, err)

	t.Run("sampled depth", func(t *testing.T) {
		shear := ComputeBulkShear(profile, 1000)
		require.NotNil(t, shear)
		assert.InDelta(t, 20, *shear, 1e-9)
	})

	t.Run("interpolated depth", func(t *testing.T) {
		shear := ComputeBulkShear(profile, 2000)
		require.NotNil(t, shear)
		assert.InDelta(t, 30, *shear, 1e-9)
	})

	t.Run("depth beyond profile top is absent", func(t *testing.T) {
		assert.Nil(t, ComputeBulkShear(profile, 6000))
	})
}

func TestComputeCriticalAngle(t *testing.T) {
	t.Run("known geometry", func(t *testing.T) {
		// Surface southerly 10 kt at 0 m, southerly 20 kt at 500 m:
		// storm-relative surface wind (-10, 10) against shear (0, 10).
		profile, _, err := NormalizeProfile([]WindObservation{
			{HeightM: 0, DirectionDeg: 180, SpeedKt: 10},
			{HeightM: 500, DirectionDeg: 180, SpeedKt: 20},
		})
		require.NoError(t, err)

		angle := ComputeCriticalAngle(profile, StormMotion{DirectionDeg: 270, SpeedKt: 10})
		require.NotNil(t, angle)
		assert.InDelta(t, 315, *angle, 1e-9)
	})

	t.Run("result stays in [0,360)", func(t *testing.T) {
		profiles := [][]WindObservation{
			{{HeightM: 0, DirectionDeg: 90, SpeedKt: 5}, {HeightM: 500, DirectionDeg: 200, SpeedKt: 25}},
			{{HeightM: 0, DirectionDeg: 300, SpeedKt: 15}, {HeightM: 600, DirectionDeg: 10, SpeedKt: 30}},
			{{HeightM: 0, DirectionDeg: 180, SpeedKt: 1}, {HeightM: 500, DirectionDeg: 181, SpeedKt: 2}},
		}
		for i, obs := range profiles {
			profile, _, err := NormalizeProfile(obs)
			require.NoError(t, err)
			angle := ComputeCriticalAngle(profile, StormMotion{DirectionDeg: 240, SpeedKt: 25})
			require.NotNil(t, angle, "profile %d", i)
			assert.GreaterOrEqual(t, *angle, 0.0, "profile %d", i)
			assert.Less(t, *angle, 360.0, "profile %d", i)
		}
	})

	t.Run("absent when 0-500m shear unavailable", func(t *testing.T) {
		profile, _, err := NormalizeProfile([]WindObservation{
			{HeightM: 0, DirectionDeg: 180, SpeedKt: 10},
			{HeightM: 400, DirectionDeg: 190, SpeedKt: 15},
		})
		require.NoError(t, err)

		assert.Nil(t, ComputeCriticalAngle(profile, StormMotion{DirectionDeg: 240, SpeedKt: 25}))
	})

	t.Run("absent for degenerate vectors", func(t *testing.T) {
		// Storm motion equal to the surface wind makes the storm-relative
		// surface wind a zero vector.
		profile, _, err := NormalizeProfile([]WindObservation{
			{HeightM: 0, DirectionDeg: 180, SpeedKt: 10},
			{HeightM: 500, DirectionDeg: 180, SpeedKt: 20},
		})
		require.NoError(t, err)

		assert.Nil(t, ComputeCriticalAngle(profile, StormMotion{DirectionDeg: 180, SpeedKt: 10}))
	})
}

func TestComputeShearLayer(t *testing.T) {
	cfg := DefaultShearLayerConfig()

	t.Run("aligned layer depth and magnitude", func(t *testing.T) {
		// Shear stays unidirectional (westerly increase) through 2 km, then
		// swings far off the reference direction.
		profile := Profile{
			{HeightM: 0, U: 0, V: 0},
			{HeightM: 500, U: 10, V: 0},
			{HeightM: 1000, U: 20, V: 0},
			{HeightM: 2000, U: 35, V: 0},
			{HeightM: 3000, U: 0, V: 40},
		}
		layer := ComputeShearLayer(profile, cfg)
		require.NotNil(t, layer)
		assert.Equal(t, 2000.0, layer.DepthM)
		assert.InDelta(t, 35, layer.MagnitudeKt, 1e-9)
	})

	t.Run("threshold is injectable", func(t *testing.T) {
		profile := Profile{
			{HeightM: 0, U: 0, V: 0},
			{HeightM: 500, U: 10, V: 0},
			{HeightM: 1000, U: 20, V: 3}, // ~8.5° off the reference
		}
		strict := ComputeShearLayer(profile, ShearLayerConfig{MaxDeviationDeg: 5})
		require.NotNil(t, strict)
		assert.Equal(t, 500.0, strict.DepthM)

		loose := ComputeShearLayer(profile, ShearLayerConfig{MaxDeviationDeg: 10})
		require.NotNil(t, loose)
		assert.Equal(t, 1000.0, loose.DepthM)
	})

	t.Run("absent when reference vector is degenerate", func(t *testing.T) {
		profile := Profile{
			{HeightM: 0, U: 5, V: 5},
			{HeightM: 500, U: 5, V: 5},
		}
		assert.Nil(t, ComputeShearLayer(profile, cfg))
	})
}

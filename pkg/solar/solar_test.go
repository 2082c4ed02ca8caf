package solar

import (
	"testing"
	"time"

	"github.com/condor86/CurveGrowthSystem/pkg/vecmath"
	"github.com/stretchr/testify/assert"
)

// DirectionToSun at zero elevation and zero azimuth points due north.
func TestDirectionToSunAtHorizonNorth(t *testing.T) {
	up := vecmath.Vec3{Z: 1}
	north := vecmath.Vec3{Y: 1}
	dir := DirectionToSun(0, 0, up, north)
	assert.InDelta(t, 0.0, dir.X, 1e-9)
	assert.InDelta(t, 1.0, dir.Y, 1e-9)
	assert.InDelta(t, 0.0, dir.Z, 1e-9)
}

// DirectionToSun at 90 degrees elevation points straight up regardless of azimuth.
func TestDirectionToSunAtZenithIsUpRegardlessOfAzimuth(t *testing.T) {
	up := vecmath.Vec3{Z: 1}
	north := vecmath.Vec3{Y: 1}
	for _, az := range []float64{0, 45, 90, 180, 270, 359} {
		dir := DirectionToSun(90, az, up, north)
		assert.InDelta(t, 0.0, dir.X, 1e-9, "az=%v", az)
		assert.InDelta(t, 0.0, dir.Y, 1e-9, "az=%v", az)
		assert.InDelta(t, 1.0, dir.Z, 1e-9, "az=%v", az)
	}
}

// At latitude 32.06N, longitude 118.80E, tz +8, 2025-06-21 12:00 local,
// the apparent elevation should be close to 81 degrees and azimuth close
// to 180 degrees (the sun nearly due south at summer local noon). Local
// 12:00 is about six minutes before solar noon, and with the sun under 9
// degrees from the zenith that puts it about 9 degrees east of south
// (azimuth ~170.8).
func TestSolarSanitySummerNoon(t *testing.T) {
	local := time.Date(2025, time.June, 21, 12, 0, 0, 0, time.UTC)
	pos := Compute(local, 32.0603, 118.7969, 8, true)
	assert.InDelta(t, 81.0, pos.ApparentElevDeg, 1.0)
	assert.InDelta(t, 170.8, pos.AzimuthDegFromN, 1.0)
}

func TestRefractionOnlyAppliedAboveThreshold(t *testing.T) {
	// at night the geometric elevation is well below -0.575 deg
	midnight := time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC)
	pos := Compute(midnight, 32.0603, 118.7969, 8, true)
	assert.Less(t, pos.GeometricElevDeg, -0.575)
	assert.Equal(t, pos.GeometricElevDeg, pos.ApparentElevDeg)
}

func TestVectorsFiltersBelowMinElevation(t *testing.T) {
	date := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)
	up := vecmath.Vec3{Z: 1}
	north := vecmath.Vec3{Y: 1}
	vs := Vectors(date, 0, 23*time.Hour+59*time.Minute, time.Hour, 32.0603, 118.7969, 8, 0, up, north)
	assert.NotEmpty(t, vs)
	for _, v := range vs {
		assert.InDelta(t, 1.0, v.Norm(), 1e-6)
	}
	// sampling the same window with an absurdly high threshold yields nothing
	none := Vectors(date, 0, 23*time.Hour+59*time.Minute, time.Hour, 32.0603, 118.7969, 8, 89, up, north)
	assert.Empty(t, none)
}

func TestVectorsEmptyIntervalReturnsNil(t *testing.T) {
	date := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)
	up := vecmath.Vec3{Z: 1}
	north := vecmath.Vec3{Y: 1}
	vs := Vectors(date, 0, time.Hour, 0, 32.0603, 118.7969, 8, 0, up, north)
	assert.Nil(t, vs)
}

package evaluator

import (
	"testing"
	"time"

	"github.com/condor86/CurveGrowthSystem/pkg/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScene() Scene {
	return Scene{
		StartingPositions: []vecmath.Vec3{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
		},
		RepellerPositions: []vecmath.Vec3{{X: 50, Y: 50}},
		GrowthConfig:      DefaultGrowthConfig(),
		Room:              Room{Width: 200, Height: 200, CellSize: 10},
		Site: Site{
			LatitudeDeg:     32.0603,
			LongitudeDeg:    118.7969,
			TZOffsetHours:   8,
			MinElevationDeg: -90,
			Up:              vecmath.Vec3{Z: 1},
			North:           vecmath.Vec3{Y: 1},
			SummerDate:      time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
			WinterDate:      time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC),
			WindowStart:     8 * time.Hour,
			WindowEnd:       16 * time.Hour,
			SampleInterval:  2 * time.Hour,
		},
	}
}

func sampleGenes() []float64 {
	genes := make([]float64, GeneCount)
	for i := 0; i < repellerGeneCount; i++ {
		genes[i] = 1.0
	}
	for i := repellerGeneCount; i < GeneCount; i++ {
		genes[i] = 10.0
	}
	return genes
}

func TestEvalPanicsOnWrongGeneCount(t *testing.T) {
	e := New(testScene())
	assert.Panics(t, func() {
		e.Eval([]float64{1, 2, 3})
	})
}

func TestEvalReturnsTwoMinimizationObjectives(t *testing.T) {
	e := New(testScene())
	obj := e.Eval(sampleGenes())
	require.Len(t, obj, 2)
	assert.GreaterOrEqual(t, obj[0], 0.0)  // summer hours, non-negative
	assert.LessOrEqual(t, obj[1], 0.0)     // negated winter hours
}

func TestEvalIsDeterministicForFixedGenes(t *testing.T) {
	e := New(testScene())
	genes := sampleGenes()
	obj1 := e.Eval(genes)
	obj2 := e.Eval(genes)
	assert.Equal(t, obj1, obj2)
}

func TestToVerticalPlaneMapsXYToXZ(t *testing.T) {
	pts := []vecmath.Vec3{{X: 1, Y: 2, Z: 0}}
	out := toVerticalPlane(pts)
	require.Len(t, out, 1)
	assert.Equal(t, vecmath.Vec3{X: 1, Y: 0, Z: 2}, out[0])
}

// Open Question 2: offsets beyond the vertical curve's length are inactive,
// never applied, regardless of genome content.
func TestApplyOffsetsOnlyAffectsAvailablePoints(t *testing.T) {
	vertical := []vecmath.Vec3{{X: 0, Y: 5}, {X: 1, Y: 5}}
	offsets := []float64{1, 2, 3, 4} // longer than vertical
	out := applyOffsets(vertical, offsets)
	require.Len(t, out, 2)
	assert.Equal(t, 4.0, out[0].Y)
	assert.Equal(t, 3.0, out[1].Y)
}

func TestDefaultBoundsCoverFixedGeneLayout(t *testing.T) {
	lo, hi := DefaultBounds()
	require.Len(t, lo, GeneCount)
	require.Len(t, hi, GeneCount)
	for i := 0; i < repellerGeneCount; i++ {
		assert.Equal(t, repellerFactorLo, lo[i])
		assert.Equal(t, repellerFactorHi, hi[i])
	}
	for i := repellerGeneCount; i < GeneCount; i++ {
		assert.Equal(t, offsetLo, lo[i])
		assert.Equal(t, offsetHi, hi[i])
	}
}

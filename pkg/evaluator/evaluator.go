// Package evaluator wires the growth engine and the shadow rasterizer into
// a single genes-to-objectives function suitable for pkg/nsga2.EvalFunc.
package evaluator

import (
	"time"

	"github.com/cpmech/gosl/chk"

	"github.com/condor86/CurveGrowthSystem/pkg/growth"
	"github.com/condor86/CurveGrowthSystem/pkg/raster"
	"github.com/condor86/CurveGrowthSystem/pkg/solar"
	"github.com/condor86/CurveGrowthSystem/pkg/vecmath"
)

const (
	repellerGeneCount = 4   // genes[0:4): repeller factors
	offsetGeneCount   = 400 // genes[4:404): per-vertex offsets
	repellerFactorLo  = 0.01
	repellerFactorHi  = 5.0
	offsetLo          = 0.0
	offsetHi          = 100.0

	growthMaxPoints = 200
	growthMaxIters  = 200
	growthBaseDist  = 75
)

// GeneCount is the fixed genome length this evaluator expects.
const GeneCount = repellerGeneCount + offsetGeneCount

// Site describes the fixed solar geometry shared across every candidate
// evaluation: location, orientation, the two sampling dates, and the
// daily sampling window. It is built once and read-only thereafter, so
// it can be shared across worker goroutines without locking.
type Site struct {
	LatitudeDeg     float64
	LongitudeDeg    float64
	TZOffsetHours   float64
	MinElevationDeg float64
	Up, North       vecmath.Vec3
	SummerDate      time.Time
	WinterDate      time.Time
	WindowStart     time.Duration // offset from local midnight
	WindowEnd       time.Duration
	SampleInterval  time.Duration
}

// Room describes the floor footprint the rasterizer grids over.
type Room struct {
	Width, Height, CellSize float64
}

// Scene bundles everything an Evaluator needs besides the candidate genes:
// the growth engine's starting curve, the fixed repeller positions (their
// factors are genes, their positions are not), the room, and the site.
// Passed explicitly to New rather than held in package-level state, so
// multiple scenes can be evaluated concurrently without interference.
type Scene struct {
	StartingPositions []vecmath.Vec3
	RepellerPositions []vecmath.Vec3
	GrowthConfig      growth.Config
	Room              Room
	Site              Site
}

// Evaluator holds one Scene plus its precomputed summer/winter sun vectors.
// A single Evaluator's Eval method is safe to call concurrently: it opens
// no shared mutable state, only reads Scene and the precomputed vectors.
type Evaluator struct {
	scene      Scene
	summerSuns []vecmath.Vec3
	winterSuns []vecmath.Vec3
}

// New constructs an Evaluator, precomputing the summer and winter sun
// vector sets once.
func New(scene Scene) *Evaluator {
	if len(scene.StartingPositions) == 0 {
		chk.Panic("evaluator: Scene.StartingPositions must not be empty")
	}
	site := scene.Site
	e := &Evaluator{scene: scene}
	e.summerSuns = solar.Vectors(site.SummerDate, site.WindowStart, site.WindowEnd, site.SampleInterval,
		site.LatitudeDeg, site.LongitudeDeg, site.TZOffsetHours, site.MinElevationDeg, site.Up, site.North)
	e.winterSuns = solar.Vectors(site.WinterDate, site.WindowStart, site.WindowEnd, site.SampleInterval,
		site.LatitudeDeg, site.LongitudeDeg, site.TZOffsetHours, site.MinElevationDeg, site.Up, site.North)
	return e
}

// Eval implements nsga2.EvalFunc: genes[0:4) are repeller factors, genes[4:404)
// are per-vertex offsets. Returns (summerHours, -winterHours) so both
// objectives are minimization-oriented.
func (e *Evaluator) Eval(genes []float64) []float64 {
	_, _, summer, winter := e.Geometry(genes)
	return []float64{float64(summer.TotalHours()), -float64(winter.TotalHours())}
}

// Geometry runs the same pipeline as Eval but returns the intermediate
// vertical/extruded curves and both rasterizers, for callers (the CLI's
// final-result export) that need the full geometry of one candidate rather
// than just its two objective values.
func (e *Evaluator) Geometry(genes []float64) (vertical, extruded []vecmath.Vec3, summer, winter *raster.Rasterizer) {
	if len(genes) != GeneCount {
		chk.Panic("evaluator: expected %d genes, got %d", GeneCount, len(genes))
	}
	factors := genes[:repellerGeneCount]
	offsets := genes[repellerGeneCount:]

	repellers := growth.Repellers{Points: e.scene.RepellerPositions, Factors: factors}
	engine := growth.NewEngine(e.scene.StartingPositions, repellers, e.scene.GrowthConfig)
	engine.Run(growthMaxIters)

	vertical = toVerticalPlane(engine.Points)
	extruded = applyOffsets(vertical, offsets)

	room := e.scene.Room
	closed := e.scene.GrowthConfig.Closed

	summer = raster.New(vertical, extruded, room.Width, room.Height, room.CellSize, closed)
	summer.RunWithSunVectors(e.summerSuns)

	winter = raster.New(vertical, extruded, room.Width, room.Height, room.CellSize, closed)
	winter.RunWithSunVectors(e.winterSuns)

	return vertical, extruded, summer, winter
}

// toVerticalPlane reinterprets each planar growth point (x, y, 0) as
// (x, 0, y), mapping the XY growth plane onto the XZ vertical plane.
func toVerticalPlane(points []vecmath.Vec3) []vecmath.Vec3 {
	out := make([]vecmath.Vec3, len(points))
	for i, p := range points {
		out[i] = vecmath.Vec3{X: p.X, Y: 0, Z: p.Y}
	}
	return out
}

// applyOffsets produces the extruded curve: for i in [0, min(n, len(offsets))),
// y -= offsets[i]. Offsets beyond the growth curve's length are inactive.
func applyOffsets(vertical []vecmath.Vec3, offsets []float64) []vecmath.Vec3 {
	out := make([]vecmath.Vec3, len(vertical))
	copy(out, vertical)
	n := len(out)
	if len(offsets) < n {
		n = len(offsets)
	}
	for i := 0; i < n; i++ {
		out[i].Y -= offsets[i]
	}
	return out
}

// DefaultBounds returns the fixed per-gene [lo, hi] bounds for the 404-gene
// layout, ready to drop into nsga2.Config.LowerBounds/UpperBounds.
func DefaultBounds() (lo, hi []float64) {
	lo = make([]float64, GeneCount)
	hi = make([]float64, GeneCount)
	for i := 0; i < repellerGeneCount; i++ {
		lo[i], hi[i] = repellerFactorLo, repellerFactorHi
	}
	for i := repellerGeneCount; i < GeneCount; i++ {
		lo[i], hi[i] = offsetLo, offsetHi
	}
	return lo, hi
}

// DefaultGrowthConfig returns the fixed growth parameters used for every
// evaluation: maxPoints=200, baseDist=75, with the tile/density defaults
// from growth.DefaultConfig. The iteration count (200) is not part of the
// config; Geometry passes it to Engine.Run.
func DefaultGrowthConfig() growth.Config {
	cfg := growth.DefaultConfig()
	cfg.MaxPoints = growthMaxPoints
	cfg.BaseDist = growthBaseDist
	return cfg
}

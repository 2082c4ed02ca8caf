// Package growth implements the differential growth engine: a closed
// planar curve grown under short-range repulsion with toroidal (9-tile
// mirrored) wrap-around and local density modulation, inserting midpoints
// to maintain edge length.
package growth

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/condor86/CurveGrowthSystem/pkg/kdtree"
	"github.com/condor86/CurveGrowthSystem/pkg/vecmath"
)

const (
	selfDistEps = 1e-3 // same-point rejection tolerance in the growth force
)

// Repellers pairs an unordered set of 3-D positions with a scalar factor
// sequence; see Engine.Density for how a repeller's factor index is chosen.
type Repellers struct {
	Points  []vecmath.Vec3
	Factors []float64
}

// Config holds the tunables of one growth run. Zero-value Config is not
// usable; start from DefaultConfig for the tile/density constants. NewEngine
// validates MaxPoints and BaseDist but fills in no defaults.
type Config struct {
	MaxPoints     int
	BaseDist      float64
	TileW, TileH  float64 // default 1000, 1000
	MaxFactor     float64 // default 1.5
	MaxEffectDist float64 // default 300
	Closed        bool    // default true; the curve's topology flag
}

// DefaultConfig returns Config with sensible tile/density defaults applied;
// callers still set MaxPoints/BaseDist.
func DefaultConfig() Config {
	return Config{
		TileW:         1000,
		TileH:         1000,
		MaxFactor:     1.5,
		MaxEffectDist: 300,
		Closed:        true,
	}
}

// Engine grows an ordered closed sequence of points in place. Engine owns
// its transient per-iteration state (mirrored cloud, KD tree, force
// accumulators); none of it survives past Run.
type Engine struct {
	Points    []vecmath.Vec3
	Repellers Repellers
	Config    Config
}

// NewEngine constructs an Engine from initial points, repellers, and
// config, failing fast on obviously-broken inputs.
func NewEngine(initial []vecmath.Vec3, repellers Repellers, cfg Config) *Engine {
	if cfg.MaxPoints <= 0 {
		chk.Panic("growth: MaxPoints must be positive, got %d", cfg.MaxPoints)
	}
	if cfg.BaseDist <= 0 {
		chk.Panic("growth: BaseDist must be positive, got %g", cfg.BaseDist)
	}
	if len(repellers.Points) > 0 && len(repellers.Factors) == 0 {
		chk.Panic("growth: repellers given without any factor values")
	}
	pts := make([]vecmath.Vec3, len(initial))
	copy(pts, initial)
	return &Engine{Points: pts, Repellers: repellers, Config: cfg}
}

// Density returns the per-point target-spacing multiplier, always >= 1.
// With zero repellers it is exactly 1.
func (e *Engine) Density(p vecmath.Vec3) float64 {
	best := 1.0
	for i, r := range e.Repellers.Points {
		d := p.Distance(r)
		if d > e.Config.MaxEffectDist {
			continue
		}
		f := e.factorFor(i)
		val := 1 + (e.Config.MaxFactor-1)*f*(1-d/e.Config.MaxEffectDist)
		if val > best {
			best = val
		}
	}
	return best
}

func (e *Engine) factorFor(i int) float64 {
	k := len(e.Repellers.Factors)
	if k == 0 {
		return 0
	}
	if i > k-1 {
		i = k - 1
	}
	return e.Repellers.Factors[i]
}

// Run executes up to `iterations` growth iterations. If maxPoints is
// already reached, Run is a no-op. Run with iterations == 0 returns the
// input unchanged.
func (e *Engine) Run(iterations int) {
	for i := 0; i < iterations; i++ {
		if len(e.Points) >= e.Config.MaxPoints {
			break
		}
		e.step()
	}
}

func (e *Engine) step() {
	n := len(e.Points)
	mirroredKeys, mirroredPts, origIdx := e.buildMirroredCloud()
	values := make([]int, len(mirroredKeys))
	for i := range values {
		values[i] = i
	}
	tree := kdtree.New(mirroredKeys, values)

	totalMove := make([]vecmath.Vec3, n)
	collisions := make([]int, n)
	searchRadius := e.Config.BaseDist * e.Config.MaxFactor

	for i := 0; i < n; i++ {
		ci := e.Points[i]
		hits := tree.RadialSearch(ci.XY(), searchRadius)
		for _, jm := range hits {
			j := origIdx[jm]
			if j == i {
				continue
			}
			delta := ci.Sub(mirroredPts[jm])
			d := delta.Norm()
			if d < selfDistEps {
				continue
			}
			localDist := 0.5 * e.Config.BaseDist * (e.Density(ci) + e.Density(e.Points[j]))
			if d > localDist {
				continue
			}
			push := math.Min(0.5*(localDist-d), 0.5*e.Config.BaseDist)
			m := delta.Scale(push / d)
			totalMove[i] = totalMove[i].Add(m)
			totalMove[j] = totalMove[j].Sub(m)
			collisions[i]++
			collisions[j]++
		}
	}

	for i := 0; i < n; i++ {
		if collisions[i] > 0 {
			e.Points[i] = e.Points[i].Add(totalMove[i].Scale(1 / float64(collisions[i])))
		}
	}

	e.insertionPass()
}

// buildMirroredCloud returns nine affine copies of Points under the tile
// offset set, their planar keys for the KD tree, and the back-reference
// orig(j) = j mod n for each mirrored entry.
func (e *Engine) buildMirroredCloud() (keys []vecmath.Vec2, pts []vecmath.Vec3, orig []int) {
	n := len(e.Points)
	keys = make([]vecmath.Vec2, 0, 9*n)
	pts = make([]vecmath.Vec3, 0, 9*n)
	orig = make([]int, 0, 9*n)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			offset := vecmath.Vec3{X: float64(dx) * e.Config.TileW, Y: float64(dy) * e.Config.TileH}
			for i, p := range e.Points {
				mp := p.Add(offset)
				keys = append(keys, mp.XY())
				pts = append(pts, mp)
				orig = append(orig, i)
			}
		}
	}
	return
}

type pendingInsertion struct {
	target int
	point  vecmath.Vec3
}

// insertionPass inserts midpoints wherever an edge's length exceeds the
// density-modulated threshold, in descending target-index order so earlier
// insertions are never shifted by later ones.
func (e *Engine) insertionPass() {
	n := len(e.Points)
	edges := n
	if !e.Config.Closed {
		edges = n - 1
	}
	var pending []pendingInsertion
	for a := 0; a < edges; a++ {
		b := (a + 1) % n
		ca, cb := e.Points[a], e.Points[b]
		threshold := 0.5*e.Config.BaseDist*(e.Density(ca)+e.Density(cb)) - 1
		if ca.Distance(cb) > threshold {
			mid := ca.Add(cb).Scale(0.5)
			pending = append(pending, pendingInsertion{target: a + 1, point: mid})
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].target > pending[j].target })
	for _, ins := range pending {
		if len(e.Points) >= e.Config.MaxPoints {
			break
		}
		e.Points = insertAt(e.Points, ins.target, ins.point)
	}
}

func insertAt(pts []vecmath.Vec3, idx int, p vecmath.Vec3) []vecmath.Vec3 {
	out := make([]vecmath.Vec3, 0, len(pts)+1)
	out = append(out, pts[:idx]...)
	out = append(out, p)
	out = append(out, pts[idx:]...)
	return out
}

// Package raster implements the solar-shadow rasterizer: it projects each
// extruded quad strip of a curtain wall curve onto the floor along the sun
// direction and accumulates un-shadowed sample counts per grid cell.
package raster

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/condor86/CurveGrowthSystem/pkg/vecmath"
)

const grazingEps = 1e-8 // near-grazing sun-direction guard

// Rasterizer holds the fixed geometry (two parallel curves forming an
// extruded strip) and floor grid for one set of runs. It is safe to call
// RunWithSunVectors multiple times; counts accumulate across calls.
type Rasterizer struct {
	verticalCurve  []vecmath.Vec3
	extrudedCurve  []vecmath.Vec3
	closed         bool
	w, h, cellSize float64
	cols, rows     int
	hours          [][]int // hours[col][row]
}

// New constructs a Rasterizer for a room footprint (w, h) at z=0 with grid
// cell size g. The two curves must have equal length; a mismatch is
// rejected at construction with a descriptive error.
func New(verticalCurve, extrudedCurve []vecmath.Vec3, w, h, cellSize float64, closed bool) *Rasterizer {
	if len(verticalCurve) != len(extrudedCurve) {
		chk.Panic("raster: verticalCurve and extrudedCurve must have equal length, got %d and %d",
			len(verticalCurve), len(extrudedCurve))
	}
	if cellSize <= 0 {
		chk.Panic("raster: cellSize must be positive, got %g", cellSize)
	}
	cols := int(math.Ceil(w / cellSize))
	rows := int(math.Ceil(h / cellSize))
	hours := make([][]int, cols)
	for c := range hours {
		hours[c] = make([]int, rows)
	}
	return &Rasterizer{
		verticalCurve: verticalCurve,
		extrudedCurve: extrudedCurve,
		closed:        closed,
		w:             w,
		h:             h,
		cellSize:      cellSize,
		cols:          cols,
		rows:          rows,
		hours:         hours,
	}
}

// Dims returns the floor grid's (cols, rows).
func (r *Rasterizer) Dims() (cols, rows int) { return r.cols, r.rows }

// Hours returns the accumulated unshadowed-sample count at (col, row).
func (r *Rasterizer) Hours(col, row int) int { return r.hours[col][row] }

// RunWithSunVectors accumulates direct-sun sample counts for each sun
// vector in vs. A no-op on empty input.
func (r *Rasterizer) RunWithSunVectors(vs []vecmath.Vec3) {
	if len(vs) == 0 || len(r.verticalCurve) == 0 {
		return
	}
	shadow := make([][]bool, r.cols)
	for c := range shadow {
		shadow[c] = make([]bool, r.rows)
	}
	n := len(r.verticalCurve)
	segs := n - 1
	if r.closed {
		segs = n
	}

	for _, toSun := range vs {
		d := toSun.Normalize().Scale(-1)
		if math.Abs(d.Z) < grazingEps {
			continue
		}
		for c := range shadow {
			for row := range shadow[c] {
				shadow[c][row] = false
			}
		}

		for i := 0; i < segs; i++ {
			j := (i + 1) % n
			quad := [4]vecmath.Vec2{
				project(r.verticalCurve[i], d),
				project(r.verticalCurve[j], d),
				project(r.extrudedCurve[j], d),
				project(r.extrudedCurve[i], d),
			}
			r.rasterizeQuad(quad, shadow)
		}

		for c := range shadow {
			for row := range shadow[c] {
				if !shadow[c][row] {
					r.hours[c][row]++
				}
			}
		}
	}
}

// project maps p onto the floor (z=0) along direction d (pointing from sun
// toward the scene), per p_out = p - (p.z/d.z)*d.
func project(p, d vecmath.Vec3) vecmath.Vec2 {
	t := p.Z / d.Z
	out := p.Sub(d.Scale(t))
	return vecmath.Vec2{X: out.X, Y: out.Y}
}

func (r *Rasterizer) rasterizeQuad(quad [4]vecmath.Vec2, shadow [][]bool) {
	minX, maxX := quad[0].X, quad[0].X
	minY, maxY := quad[0].Y, quad[0].Y
	for _, p := range quad[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	colLo := clampInt(int(math.Floor(minX/r.cellSize)), 0, r.cols-1)
	colHi := clampInt(int(math.Floor(maxX/r.cellSize)), 0, r.cols-1)
	rowLo := clampInt(int(math.Floor(minY/r.cellSize)), 0, r.rows-1)
	rowHi := clampInt(int(math.Floor(maxY/r.cellSize)), 0, r.rows-1)
	if colHi < colLo || rowHi < rowLo {
		return
	}
	for col := colLo; col <= colHi; col++ {
		for row := rowLo; row <= rowHi; row++ {
			center := vecmath.Vec2{
				X: (float64(col) + 0.5) * r.cellSize,
				Y: (float64(row) + 0.5) * r.cellSize,
			}
			if pointInQuad(center, quad) {
				shadow[col][row] = true
			}
		}
	}
}

// pointInQuad implements the same-side test: p is inside iff the signed
// cross product across every directed edge shares sign (all >= 0 or all
// <= 0). Collinear/degenerate quads simply fail or accept a zero-area
// strip without corrupting counts.
func pointInQuad(p vecmath.Vec2, quad [4]vecmath.Vec2) bool {
	allNonNeg, allNonPos := true, true
	for k := 0; k < 4; k++ {
		a, b := quad[k], quad[(k+1)%4]
		cross := vecmath.Cross2(a, b, p)
		if cross < 0 {
			allNonNeg = false
		}
		if cross > 0 {
			allNonPos = false
		}
	}
	return allNonNeg || allNonPos
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// TotalHours returns the sum of hours across the whole grid.
func (r *Rasterizer) TotalHours() int {
	total := 0
	for _, col := range r.hours {
		for _, h := range col {
			total += h
		}
	}
	return total
}

// AverageHours returns TotalHours divided by the number of grid cells.
func (r *Rasterizer) AverageHours() float64 {
	cells := r.cols * r.rows
	if cells == 0 {
		return 0
	}
	return float64(r.TotalHours()) / float64(cells)
}

// Package iox implements the CSV input/output formats: starting-position
// and repeller point files, repeller-factor files, curve and lighting
// result files, and the per-generation NSGA-II log files.
package iox

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/io"

	"github.com/condor86/CurveGrowthSystem/pkg/nsga2"
	"github.com/condor86/CurveGrowthSystem/pkg/raster"
	"github.com/condor86/CurveGrowthSystem/pkg/vecmath"
)

// LoadPoints reads a file of lines `{x, y, z}` (braces optional,
// comma-separated, z defaulting to 0 when absent) using locale-independent
// number parsing.
func LoadPoints(path string) ([]vecmath.Vec3, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("iox: cannot read point file %q: %w", path, err)
	}
	var pts []vecmath.Vec3
	for lineNo, line := range splitNonEmptyLines(string(b)) {
		fields := splitFields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("iox: %q line %d: expected at least x,y, got %q", path, lineNo+1, line)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("iox: %q line %d: bad x value %q: %w", path, lineNo+1, fields[0], err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("iox: %q line %d: bad y value %q: %w", path, lineNo+1, fields[1], err)
		}
		z := 0.0
		if len(fields) >= 3 {
			z, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("iox: %q line %d: bad z value %q: %w", path, lineNo+1, fields[2], err)
			}
		}
		pts = append(pts, vecmath.Vec3{X: x, Y: y, Z: z})
	}
	return pts, nil
}

// LoadFactors reads a file with one floating-point scalar per line.
func LoadFactors(path string) ([]float64, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("iox: cannot read factor file %q: %w", path, err)
	}
	var out []float64
	for lineNo, line := range splitNonEmptyLines(string(b)) {
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			return nil, fmt.Errorf("iox: %q line %d: bad factor value %q: %w", path, lineNo+1, line, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func splitNonEmptyLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

func splitFields(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "{")
	line = strings.TrimSuffix(line, "}")
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// SaveCurve writes one `{x, y, z}` per line, with no trailing newline
// after the last point.
func SaveCurve(dirOut, filename string, points []vecmath.Vec3) {
	var buf bytes.Buffer
	for i, p := range points {
		buf.WriteString(io.Sf("{%s, %s, %s}", formatNumber(p.X), formatNumber(p.Y), formatNumber(p.Z)))
		if i < len(points)-1 {
			buf.WriteString("\n")
		}
	}
	io.WriteFileD(dirOut, filename, &buf)
}

// SaveLighting writes the alternating coordinate/hours-value lines for one
// rasterizer grid, row-major over (row, col): cell center coordinate line
// `{x, y, 0.0}` followed by its integer hours value.
func SaveLighting(dirOut, filename string, r *raster.Rasterizer, cellSize float64) {
	var buf bytes.Buffer
	cols, rows := r.Dims()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := (float64(col) + 0.5) * cellSize
			y := (float64(row) + 0.5) * cellSize
			buf.WriteString(io.Sf("{%s, %s, 0.0}\n", formatNumber(x), formatNumber(y)))
			buf.WriteString(io.Sf("%d\n", r.Hours(col, row)))
		}
	}
	io.WriteFileD(dirOut, filename, &buf)
}

// WriteFront0CSV writes the front-0 individuals of one generation:
// header `f0,f1,...,g0,...,g_{L-1}`, one individual per line, each value
// formatted with strconv's shortest round-trip representation.
func WriteFront0CSV(dirOut string, gen int, pop nsga2.Population) {
	var buf bytes.Buffer
	var front0 nsga2.Population
	for _, ind := range pop {
		if ind.FrontId == 0 {
			front0 = append(front0, ind)
		}
	}
	if len(front0) == 0 {
		return
	}
	nobj := len(front0[0].Ova)
	L := len(front0[0].Genes)
	buf.WriteString(csvHeader(nobj, L))
	buf.WriteString("\n")
	for i, ind := range front0 {
		writeIndividualRow(&buf, ind)
		if i < len(front0)-1 {
			buf.WriteString("\n")
		}
	}
	io.WriteFileD(dirOut, io.Sf("gen_%d_front0.csv", gen), &buf)
}

func csvHeader(nobj, L int) string {
	var parts []string
	for i := 0; i < nobj; i++ {
		parts = append(parts, io.Sf("f%d", i))
	}
	for i := 0; i < L; i++ {
		parts = append(parts, io.Sf("g%d", i))
	}
	return strings.Join(parts, ",")
}

func writeIndividualRow(buf *bytes.Buffer, ind *nsga2.Individual) {
	var parts []string
	for _, v := range ind.Ova {
		parts = append(parts, formatNumber(v))
	}
	for _, v := range ind.Genes {
		parts = append(parts, formatNumber(v))
	}
	buf.WriteString(strings.Join(parts, ","))
}

// WriteBestGenesCSV writes one line of L comma-separated doubles: the
// genes of the individual with the smallest objective-value sum.
func WriteBestGenesCSV(dirOut string, gen int, pop nsga2.Population) {
	if len(pop) == 0 {
		return
	}
	best := pop[0]
	bestSum := objectiveSum(best)
	for _, ind := range pop[1:] {
		if s := objectiveSum(ind); s < bestSum {
			best, bestSum = ind, s
		}
	}
	var parts []string
	for _, v := range best.Genes {
		parts = append(parts, formatNumber(v))
	}
	var buf bytes.Buffer
	buf.WriteString(strings.Join(parts, ","))
	io.WriteFileD(dirOut, io.Sf("gen_%d_bestGenes.csv", gen), &buf)
}

func objectiveSum(ind *nsga2.Individual) float64 {
	sum := 0.0
	for _, v := range ind.Ova {
		sum += v
	}
	return sum
}

package iox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/condor86/CurveGrowthSystem/pkg/nsga2"
	"github.com/condor86/CurveGrowthSystem/pkg/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPointsParsesBracesAndDefaultsZ(t *testing.T) {
	path := writeTempFile(t, "{1, 2, 3}\n4, 5\n{6,7,8}\n")
	pts, err := LoadPoints(path)
	require.NoError(t, err)
	require.Len(t, pts, 3)
	assert.Equal(t, vecmath.Vec3{X: 1, Y: 2, Z: 3}, pts[0])
	assert.Equal(t, vecmath.Vec3{X: 4, Y: 5, Z: 0}, pts[1])
	assert.Equal(t, vecmath.Vec3{X: 6, Y: 7, Z: 8}, pts[2])
}

func TestLoadPointsRejectsMalformedLine(t *testing.T) {
	path := writeTempFile(t, "{1}\n")
	_, err := LoadPoints(path)
	assert.Error(t, err)
}

func TestLoadFactorsParsesOnePerLine(t *testing.T) {
	path := writeTempFile(t, "0.5\n1.25\n3\n")
	factors, err := LoadFactors(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.25, 3}, factors)
}

func TestSaveCurveThenLoadPointsRoundTrips(t *testing.T) {
	dir := t.TempDir()
	pts := []vecmath.Vec3{{X: 1.5, Y: -2.25, Z: 0}, {X: 3, Y: 4, Z: 5}}
	SaveCurve(dir, "resultsCrv.csv", pts)

	content, err := os.ReadFile(filepath.Join(dir, "resultsCrv.csv"))
	require.NoError(t, err)
	assert.NotRegexp(t, `\n$`, string(content), "no trailing newline after the last point")

	roundTripped, err := LoadPoints(filepath.Join(dir, "resultsCrv.csv"))
	require.NoError(t, err)
	assert.Equal(t, pts, roundTripped)
}

func TestWriteFront0CSVWritesOnlyFrontZero(t *testing.T) {
	dir := t.TempDir()
	pop := nsga2.Population{
		{Genes: []float64{1, 2}, Ova: []float64{0.1, 0.2}, FrontId: 0},
		{Genes: []float64{3, 4}, Ova: []float64{0.5, 0.6}, FrontId: 1},
	}
	WriteFront0CSV(dir, 3, pop)

	content, err := os.ReadFile(filepath.Join(dir, "gen_3_front0.csv"))
	require.NoError(t, err)
	lines := splitNonEmptyLines(string(content))
	require.Len(t, lines, 2)
	assert.Equal(t, "f0,f1,g0,g1", lines[0])
}

func TestWriteBestGenesCSVPicksSmallestObjectiveSum(t *testing.T) {
	dir := t.TempDir()
	pop := nsga2.Population{
		{Genes: []float64{9, 9}, Ova: []float64{5, 5}},
		{Genes: []float64{1, 2}, Ova: []float64{0.1, 0.2}},
	}
	WriteBestGenesCSV(dir, 1, pop)

	content, err := os.ReadFile(filepath.Join(dir, "gen_1_bestGenes.csv"))
	require.NoError(t, err)
	assert.Equal(t, "1,2", string(content))
}

package kdtree

import (
	"sort"
	"testing"

	"github.com/condor86/CurveGrowthSystem/pkg/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() (*Tree, []vecmath.Vec2) {
	keys := []vecmath.Vec2{
		{0, 0}, {1, 0}, {0, 1}, {5, 5}, {5, 6}, {-3, -3}, {2, 2}, {2.1, 2.1},
	}
	values := make([]int, len(keys))
	for i := range values {
		values[i] = i
	}
	return New(keys, values), keys
}

func TestRadialSearchFindsExpectedPoints(t *testing.T) {
	tree, _ := sampleTree()
	got := tree.RadialSearch(vecmath.Vec2{0, 0}, 1.01)
	sort.Ints(got)
	assert.Equal(t, []int{0, 1, 2}, got)
}

// Radial search with radius = 0 over a set containing q returns exactly
// the entries coincident with q.
func TestRadialSearchZeroRadiusIsExactCoincidence(t *testing.T) {
	keys := []vecmath.Vec2{{1, 1}, {1, 1}, {2, 2}, {1, 1.0000001}}
	values := []int{0, 1, 2, 3}
	tree := New(keys, values)
	got := tree.RadialSearch(vecmath.Vec2{1, 1}, 0)
	sort.Ints(got)
	assert.Equal(t, []int{0, 1}, got)
}

func TestRadialSearchEmptyTree(t *testing.T) {
	tree := New(nil, nil)
	require.NotPanics(t, func() {
		got := tree.RadialSearch(vecmath.Vec2{0, 0}, 10)
		assert.Empty(t, got)
	})
}

func TestRadialSearchNoMatches(t *testing.T) {
	tree, _ := sampleTree()
	got := tree.RadialSearch(vecmath.Vec2{100, 100}, 1)
	assert.Empty(t, got)
}

func TestNewPanicsOnMismatchedLengths(t *testing.T) {
	assert.Panics(t, func() {
		New([]vecmath.Vec2{{0, 0}}, nil)
	})
}

func TestRadialSearchMatchesBruteForce(t *testing.T) {
	tree, keys := sampleTree()
	q := vecmath.Vec2{1.5, 1.5}
	r := 3.2
	var want []int
	for i, k := range keys {
		if k.Distance(q) <= r {
			want = append(want, i)
		}
	}
	got := tree.RadialSearch(q, r)
	sort.Ints(want)
	sort.Ints(got)
	assert.Equal(t, want, got)
}

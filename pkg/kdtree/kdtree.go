// Package kdtree implements a 2-D, median-split KD tree with exact radial
// search, used by the differential growth engine to find nearby mirrored
// points in O(log N) per query.
package kdtree

import (
	"sort"

	"github.com/condor86/CurveGrowthSystem/pkg/vecmath"
)

// Tree is a read-only, balanced 2-D KD tree built once per growth
// iteration. Construction sorts at every level, O(N log² N); RadialSearch is O(log N + k) for
// k results, pruned by per-node axis-aligned bounding boxes.
type Tree struct {
	root *node
	size int
}

type node struct {
	key         vecmath.Vec2
	value       int
	axis        int // 0 = split on x, 1 = split on y
	left, right *node
	minX, maxX  float64
	minY, maxY  float64
}

// New builds a KD tree from parallel keys/values slices. len(keys) must
// equal len(values); the tree takes no ownership of the input slices beyond
// reading them during construction.
func New(keys []vecmath.Vec2, values []int) *Tree {
	if len(keys) != len(values) {
		panic("kdtree: keys and values must have the same length")
	}
	if len(keys) == 0 {
		return &Tree{}
	}
	items := make([]item, len(keys))
	for i := range keys {
		items[i] = item{keys[i], values[i]}
	}
	t := &Tree{size: len(items)}
	t.root = build(items, 0)
	return t
}

type item struct {
	key   vecmath.Vec2
	value int
}

func build(items []item, depth int) *node {
	if len(items) == 0 {
		return nil
	}
	axis := depth % 2
	sort.Slice(items, func(i, j int) bool {
		if axis == 0 {
			return items[i].key.X < items[j].key.X
		}
		return items[i].key.Y < items[j].key.Y
	})
	mid := len(items) / 2
	n := &node{key: items[mid].key, value: items[mid].value, axis: axis}
	n.left = build(items[:mid], depth+1)
	n.right = build(items[mid+1:], depth+1)
	n.minX, n.maxX = n.key.X, n.key.X
	n.minY, n.maxY = n.key.Y, n.key.Y
	if n.left != nil {
		n.minX = min(n.minX, n.left.minX)
		n.maxX = max(n.maxX, n.left.maxX)
		n.minY = min(n.minY, n.left.minY)
		n.maxY = max(n.maxY, n.left.maxY)
	}
	if n.right != nil {
		n.minX = min(n.minX, n.right.minX)
		n.maxX = max(n.maxX, n.right.maxX)
		n.minY = min(n.minY, n.right.minY)
		n.maxY = max(n.maxY, n.right.maxY)
	}
	return n
}

// Size returns the number of points stored in the tree.
func (t *Tree) Size() int { return t.size }

// RadialSearch returns the values of every stored point whose key lies
// within Euclidean distance r (inclusive) of q. Order is unspecified.
func (t *Tree) RadialSearch(q vecmath.Vec2, r float64) []int {
	if t == nil || t.root == nil || r < 0 {
		return nil
	}
	var out []int
	r2 := r * r
	var visit func(n *node)
	visit = func(n *node) {
		if n == nil || !boxWithinReach(n, q, r) {
			return
		}
		if sq(n.key.X-q.X)+sq(n.key.Y-q.Y) <= r2 {
			out = append(out, n.value)
		}
		visit(n.left)
		visit(n.right)
	}
	visit(t.root)
	return out
}

// boxWithinReach reports whether the node's bounding box could possibly
// contain a point within distance r of q; used to prune whole subtrees.
func boxWithinReach(n *node, q vecmath.Vec2, r float64) bool {
	dx := 0.0
	if q.X < n.minX {
		dx = n.minX - q.X
	} else if q.X > n.maxX {
		dx = q.X - n.maxX
	}
	dy := 0.0
	if q.Y < n.minY {
		dy = n.minY - q.Y
	} else if q.Y > n.maxY {
		dy = q.Y - n.maxY
	}
	return dx*dx+dy*dy <= r*r
}

func sq(x float64) float64 { return x * x }

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

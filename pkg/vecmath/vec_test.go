package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.InDelta(t, 32.0, a.Dot(b), 1e-12)
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, x.Cross(y))
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	assert.InDelta(t, 1.0, n.Norm(), 1e-12)
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)

	zero := Vec3{}
	assert.Equal(t, zero, zero.Normalize())
}

func TestVec3Distance(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{3, 4, 0}
	assert.InDelta(t, 5.0, a.Distance(b), 1e-12)
}

func TestVec2CrossAndDistance(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{1, 0}
	c := Vec2{0, 1}
	assert.InDelta(t, 1.0, Cross2(a, b, c), 1e-12)
	assert.InDelta(t, math.Sqrt2, a.Distance(Vec2{1, 1}), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 10))
	assert.Equal(t, 10.0, Clamp(50, 0, 10))
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
}

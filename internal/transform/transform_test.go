package transform

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, -4, 2}

	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.InDelta(t, 5.0, float64(a.Lerp(b, 0.5).X), tol)
	assert.InDelta(t, -2.0, float64(a.Lerp(b, 0.5).Y), tol)
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}.Normalize()
	assert.InDelta(t, 1.0, float64(v.Length()), tol)

	// Zero vector stays zero instead of producing NaN.
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestQuatSlerpEndpoints(t *testing.T) {
	q1 := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.3)
	q2 := QuatFromAxisAngle(Vec3{0, 1, 0}, 2.1)

	at0 := q1.Slerp(q2, 0)
	at1 := q1.Slerp(q2, 1)

	assert.InDelta(t, 1.0, float64(math32.Abs(at0.Dot(q1))), tol)
	assert.InDelta(t, 1.0, float64(math32.Abs(at1.Dot(q2))), tol)
}

func TestQuatSlerpNormPreserving(t *testing.T) {
	q1 := QuatFromAxisAngle(Vec3{1, 2, 3}, 0.7)
	q2 := QuatFromAxisAngle(Vec3{-1, 0, 1}, 2.6)

	for alpha := float32(0); alpha <= 1.0001; alpha += 0.05 {
		got := q1.Slerp(q2, alpha)
		assert.InDelta(t, 1.0, float64(got.Norm()), tol, "alpha=%v", alpha)
	}
}

func TestQuatSlerpShortestArc(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.5)
	neg := Quat{-q.W, -q.X, -q.Y, -q.Z}

	// q and -q are the same rotation; the midpoint must stay on it.
	mid := q.Slerp(neg, 0.5)
	assert.InDelta(t, 1.0, float64(math32.Abs(mid.Dot(q))), tol)
}

func TestQuatSlerpNearParallel(t *testing.T) {
	q1 := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.5)
	q2 := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.5000001)

	got := q1.Slerp(q2, 0.5)
	require.True(t, got.IsFinite())
	assert.InDelta(t, 1.0, float64(got.Norm()), tol)
}

func TestQuatRotate(t *testing.T) {
	// 90° around Y sends +X to -Z.
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, math32.Pi/2)
	v := q.Rotate(Vec3{1, 0, 0})

	assert.InDelta(t, 0.0, float64(v.X), tol)
	assert.InDelta(t, 0.0, float64(v.Y), tol)
	assert.InDelta(t, -1.0, float64(v.Z), tol)
}

func TestTransformIsFinite(t *testing.T) {
	tr := Identity()
	assert.True(t, tr.IsFinite())

	tr.Position.Y = math32.NaN()
	assert.False(t, tr.IsFinite())

	tr = Identity()
	tr.Orientation.W = math32.Inf(1)
	assert.False(t, tr.IsFinite())
}

func TestTransformLerp(t *testing.T) {
	a := Identity()
	b := Identity()
	b.Position = Vec3{2, 4, 6}
	b.Scale = Vec3{3, 3, 3}

	mid := a.Lerp(b, 0.5)
	assert.InDelta(t, 1.0, float64(mid.Position.X), tol)
	assert.InDelta(t, 2.0, float64(mid.Scale.X), tol)
	assert.InDelta(t, 1.0, float64(mid.Orientation.Norm()), tol)
}

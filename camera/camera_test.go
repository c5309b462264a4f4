package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPosition(t *testing.T) {
	c := New(10)
	// Yaw and pitch zero puts the camera on the +X axis.
	p := c.Position()
	assert.InDelta(t, 10, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.InDelta(t, 0, p.Z(), 1e-5)

	c.Target = mgl32.Vec3{1, 2, 3}
	p = c.Position()
	assert.InDelta(t, 11, p.X(), 1e-5)
	assert.InDelta(t, 2, p.Y(), 1e-5)
	assert.InDelta(t, 3, p.Z(), 1e-5)
}

func TestRotateClampsPitch(t *testing.T) {
	c := New(5)
	c.Rotate(0, 10)
	assert.Equal(t, float32(maxPitch), c.Pitch)
	c.Rotate(0, -20)
	assert.Equal(t, float32(-maxPitch), c.Pitch)
}

func TestZoomFloor(t *testing.T) {
	c := New(1)
	c.Zoom(1e-9)
	assert.Greater(t, c.Distance, float32(0))
}

func TestFocus(t *testing.T) {
	c := New(1)
	c.Focus(4)
	assert.Equal(t, float32(10), c.Distance)
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := New(7)
	c.Rotate(0.8, 0.3)
	c.Target = mgl32.Vec3{2, -1, 0.5}

	// The target maps to a point straight ahead: x == y == 0, z < 0.
	view := c.ViewMatrix()
	t4 := view.Mul4x1(c.Target.Vec4(1))
	assert.InDelta(t, 0, t4.X(), 1e-4)
	assert.InDelta(t, 0, t4.Y(), 1e-4)
	assert.InDelta(t, -7, t4.Z(), 1e-4)
}

func TestProjectionResize(t *testing.T) {
	p := NewProjection(1280, 720)
	assert.InDelta(t, 1280.0/720.0, p.Aspect, 1e-5)
	p.Resize(100, 200)
	assert.InDelta(t, 0.5, p.Aspect, 1e-5)

	m := p.Matrix()
	assert.NotEqual(t, mgl32.Mat4{}, m)
}

// Package camera supplies the view and projection matrices consumed by
// renderables each frame.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a target point. Yaw and pitch are in radians; Distance is
// the orbit radius in world units.
type Camera struct {
	Target   mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Distance float32
}

// maxPitch keeps the camera off the poles where LookAtV degenerates.
const maxPitch = 1.5

// New returns a camera orbiting the origin at the given distance.
func New(distance float32) *Camera {
	return &Camera{Distance: distance}
}

// Rotate adds to the yaw and pitch, clamping pitch away from the poles.
func (c *Camera) Rotate(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch += dpitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Zoom scales the orbit distance.
func (c *Camera) Zoom(factor float32) {
	c.Distance *= factor
	if c.Distance < 1e-3 {
		c.Distance = 1e-3
	}
}

// Focus frames an object of the given effective radius, backing the
// camera off far enough that the whole object fits a 45 degree frustum.
func (c *Camera) Focus(radius float32) {
	c.Distance = radius * 2.5
}

// Position converts the spherical orbit coordinates to cartesian.
func (c *Camera) Position() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	x := c.Distance * cp * math32.Cos(c.Yaw)
	y := c.Distance * math32.Sin(c.Pitch)
	z := c.Distance * cp * math32.Sin(c.Yaw)
	return c.Target.Add(mgl32.Vec3{x, y, z})
}

// ViewMatrix returns the 4x4 view matrix for the current orbit state.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// Projection is a perspective projection. Fovy is in radians.
type Projection struct {
	Fovy   float32
	Aspect float32
	Near   float32
	Far    float32
}

// NewProjection returns a 45 degree perspective projection for the given
// viewport size.
func NewProjection(width, height int) *Projection {
	return &Projection{
		Fovy:   mgl32.DegToRad(45),
		Aspect: float32(width) / float32(height),
		Near:   0.1,
		Far:    1000,
	}
}

// Resize updates the aspect ratio for a new viewport size.
func (p *Projection) Resize(width, height int) {
	p.Aspect = float32(width) / float32(height)
}

// Matrix returns the 4x4 projection matrix.
func (p *Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(p.Fovy, p.Aspect, p.Near, p.Far)
}

// Package render draws scalar-field cross-sections through a shader-based
// OpenGL pipeline.
//
// Every GL-touching entry point (Initialize, Render, Destroy, texture
// accessors) must run on the thread that owns the GL context; nothing in
// this package locks.
package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"fieldview/camera"
)

// Object is the base renderable: it owns the shared program handle and
// the initialized flag, and uploads the camera matrices each frame.
// Concrete renderables embed it and call its Render first. Render before
// a successful Initialize is undefined.
type Object struct {
	program       uint32
	projectionLoc int32
	viewLoc       int32
	initialized   bool
}

// Initialized reports whether Initialize has completed for this object.
func (o *Object) Initialized() bool { return o.initialized }

// Program returns the shared shader program handle, 0 before
// initialization.
func (o *Object) Program() uint32 { return o.program }

// bindProgram stores the shared program and resolves the matrix uniform
// locations once, so Render does not look them up every frame.
func (o *Object) bindProgram(program uint32) {
	o.program = program
	o.projectionLoc = gl.GetUniformLocation(program, gl.Str("projection\x00"))
	o.viewLoc = gl.GetUniformLocation(program, gl.Str("view\x00"))
}

// Render activates the shared program and uploads the projection and view
// matrices to the uniforms of the same names.
func (o *Object) Render(cam *camera.Camera, proj *camera.Projection) {
	gl.UseProgram(o.program)

	projection := proj.Matrix()
	view := cam.ViewMatrix()
	gl.UniformMatrix4fv(o.projectionLoc, 1, false, &projection[0])
	gl.UniformMatrix4fv(o.viewLoc, 1, false, &view[0])
}

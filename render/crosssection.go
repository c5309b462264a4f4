package render

import (
	"errors"
	"fmt"
	"log"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"fieldview/camera"
	"fieldview/colormap"
	"fieldview/field"
)

// maxGuaranteedTexDim is the 3D texture size every GL implementation is
// required to support; larger fields may fail to upload on some drivers.
const maxGuaranteedTexDim = 256

// ErrEmptyModel reports a model whose base parameterization yields no
// vertices.
var ErrEmptyModel = errors.New("cross-section model produced no vertices")

// floatSize is the byte size of a float32 in the vertex layout.
const floatSize = 4

// vertexStride is the number of floats per vertex record: position xyz
// followed by texture coordinate uvw.
const vertexStride = 6

// CrossSection displays the values of a 3D scalar field over the geometry
// its model intersects. The mesh is built once at construction; the field
// is uploaded as a 3D texture at initialization and re-uploaded on
// replacement.
type CrossSection struct {
	Object

	model    Model
	field    *field.ScalarField
	offset   mgl32.Vec3
	xSize    float32
	ySize    float32
	zSize    float32
	vmin     float32
	vmax     float32
	colormap *colormap.Colormap
	programs *ProgramRegistry

	// Interleaved (x, y, z, u, v, w) records, immutable after construction.
	vertices []float32

	// GL object names, 0 while unallocated.
	vao uint32
	vbo uint32
	tex uint32
}

// Option configures optional cross-section parameters at construction.
type Option func(*CrossSection)

// WithExtent overrides the rendered box dimensions in world units. A zero
// component keeps the default for that axis (the field dimension).
func WithExtent(x, y, z float32) Option {
	return func(cs *CrossSection) {
		if x > 0 {
			cs.xSize = x
		}
		if y > 0 {
			cs.ySize = y
		}
		if z > 0 {
			cs.zSize = z
		}
	}
}

// WithRange overrides the color normalization window.
func WithRange(vmin, vmax float32) Option {
	return func(cs *CrossSection) {
		cs.vmin = vmin
		cs.vmax = vmax
	}
}

// WithColormap overrides the default viridis colormap.
func WithColormap(cm *colormap.Colormap) Option {
	return func(cs *CrossSection) {
		if cm != nil {
			cs.colormap = cm
		}
	}
}

// WithPrograms renders through a private program registry instead of the
// process-wide shared one.
func WithPrograms(r *ProgramRegistry) Option {
	return func(cs *CrossSection) {
		if r != nil {
			cs.programs = r
		}
	}
}

// NewCrossSection builds a cross-section of f using the model's
// parameterization, centered at offset. Extents default to the field
// dimensions, the color window to the field's min/max, and the colormap
// to viridis. No GL call is made here; geometry and validation are pure
// CPU work.
func NewCrossSection(model Model, f *field.ScalarField, offset mgl32.Vec3, opts ...Option) (*CrossSection, error) {
	if model == nil {
		return nil, errors.New("cross-section model is nil")
	}
	if f == nil {
		return nil, errors.New("cross-section field is nil")
	}
	if f.MaxDim() > maxGuaranteedTexDim {
		log.Printf("warning: field dimension %d exceeds the %d^3 texture size OpenGL guarantees", f.MaxDim(), maxGuaranteedTexDim)
	}

	nx, ny, nz := f.Shape()
	cs := &CrossSection{
		model:    model,
		field:    f,
		offset:   offset,
		xSize:    float32(nx),
		ySize:    float32(ny),
		zSize:    float32(nz),
		vmin:     f.Min(),
		vmax:     f.Max(),
		colormap: colormap.Viridis,
		programs: SharedPrograms,
	}
	for _, opt := range opts {
		opt(cs)
	}

	uvw := model.BaseModel()
	if len(uvw) == 0 {
		return nil, fmt.Errorf("model %q: %w", model.Kind(), ErrEmptyModel)
	}
	cs.vertices = buildMesh(uvw, cs.offset, cs.xSize, cs.ySize, cs.zSize)
	return cs, nil
}

// buildMesh translates the unit-cube parameterization into world space:
// center at the origin, scale by the per-axis extents, add the offset.
// Each vertex becomes a 6-float record (x, y, z, u, v, w).
func buildMesh(uvw []mgl32.Vec3, offset mgl32.Vec3, xs, ys, zs float32) []float32 {
	out := make([]float32, 0, len(uvw)*vertexStride)
	for _, t := range uvw {
		out = append(out,
			(t.X()-0.5)*xs+offset.X(),
			(t.Y()-0.5)*ys+offset.Y(),
			(t.Z()-0.5)*zs+offset.Z(),
			t.X(), t.Y(), t.Z(),
		)
	}
	return out
}

// Model returns the cross-section's parameterization.
func (cs *CrossSection) Model() Model { return cs.model }

// Field returns the displayed scalar field.
func (cs *CrossSection) Field() *field.ScalarField { return cs.field }

// Extent returns the rendered box dimensions in world units.
func (cs *CrossSection) Extent() (x, y, z float32) { return cs.xSize, cs.ySize, cs.zSize }

// Range returns the color normalization window.
func (cs *CrossSection) Range() (vmin, vmax float32) { return cs.vmin, cs.vmax }

// Colormap returns the colormap used for display.
func (cs *CrossSection) Colormap() *colormap.Colormap { return cs.colormap }

// VertexCount returns the number of mesh vertices.
func (cs *CrossSection) VertexCount() int { return len(cs.vertices) / vertexStride }

// EffectiveRadius is the Euclidean norm of the three extents, used by
// camera-framing logic.
func (cs *CrossSection) EffectiveRadius() float32 {
	return math32.Sqrt(cs.xSize*cs.xSize + cs.ySize*cs.ySize + cs.zSize*cs.zSize)
}

// Initialize prepares the cross-section for rendering: it ensures the
// shared shader program for this model kind exists, allocates the vertex
// array/buffer, uploads the mesh, creates the 3D field texture, and binds
// the sampler uniforms. Calling it again after success is a no-op. On
// failure the object stays uninitialized and Render must not be called.
func (cs *CrossSection) Initialize() error {
	if cs.Initialized() {
		return nil
	}

	program, err := cs.programs.Ensure(cs.model.Kind(), vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return fmt.Errorf("cross-section %q: %w", cs.model.Kind(), err)
	}
	cs.bindProgram(program)

	cs.createBuffers()
	cs.uploadMesh()
	cs.uploadTexture()

	// Sampler units are fixed: colormap on 0, field on 1.
	gl.UseProgram(cs.program)
	gl.Uniform1i(gl.GetUniformLocation(cs.program, gl.Str("cmap\x00")), 0)
	gl.Uniform1i(gl.GetUniformLocation(cs.program, gl.Str("field\x00")), 1)

	cs.initialized = true
	return nil
}

// createBuffers allocates a fresh vertex array and buffer, discarding any
// prior ones, and configures the 6-float interleaved attribute layout.
func (cs *CrossSection) createBuffers() {
	if cs.vao != 0 {
		gl.DeleteVertexArrays(1, &cs.vao)
		cs.vao = 0
	}
	if cs.vbo != 0 {
		gl.DeleteBuffers(1, &cs.vbo)
		cs.vbo = 0
	}

	gl.GenVertexArrays(1, &cs.vao)
	gl.GenBuffers(1, &cs.vbo)

	gl.BindVertexArray(cs.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, cs.vbo)

	stride := int32(vertexStride * floatSize)

	// Position (x, y, z)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)

	// Texture coordinate (u, v, w)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, uintptr(3*floatSize))
	gl.EnableVertexAttribArray(1)
}

// uploadMesh copies the vertex records into the bound buffer.
func (cs *CrossSection) uploadMesh() {
	gl.BindBuffer(gl.ARRAY_BUFFER, cs.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cs.vertices)*floatSize, gl.Ptr(cs.vertices), gl.STATIC_DRAW)
}

// uploadTexture (re)creates the single-channel 3D texture sized exactly
// to the field and uploads the normalized samples. Values are remapped
// from [vmin, vmax] to [0,1] without clamping; the shader clamps.
func (cs *CrossSection) uploadTexture() {
	if cs.tex == 0 {
		gl.GenTextures(1, &cs.tex)
		gl.BindTexture(gl.TEXTURE_3D, cs.tex)
		// Nearest filtering avoids interpolation artifacts across voxel
		// boundaries.
		gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}

	data := cs.field.Normalized(cs.vmin, cs.vmax)
	nx, ny, nz := cs.field.Shape()
	gl.BindTexture(gl.TEXTURE_3D, cs.tex)
	gl.TexImage3D(gl.TEXTURE_3D, 0, gl.R32F, int32(nx), int32(ny), int32(nz),
		0, gl.RED, gl.FLOAT, gl.Ptr(data))
}

// SetField replaces the displayed field. The new field's shape must match
// exactly; on mismatch a *field.MismatchError is returned and the current
// field stays in place. If already initialized the texture is re-uploaded
// using the current window; callers wanting a rescaled range must call
// SetRange afterward.
func (cs *CrossSection) SetField(f *field.ScalarField) error {
	if err := cs.field.Replace(f); err != nil {
		return err
	}
	if cs.Initialized() {
		cs.uploadTexture()
	}
	return nil
}

// SetRange updates the color normalization window and re-uploads the
// texture if initialized.
func (cs *CrossSection) SetRange(vmin, vmax float32) {
	cs.vmin = vmin
	cs.vmax = vmax
	if cs.Initialized() {
		cs.uploadTexture()
	}
}

// Render draws the cross-section. The base renderable activates the
// shared program and uploads the camera matrices; this binds the colormap
// to unit 0, the field texture to unit 1, the vertex array, and issues
// one triangle-list draw over every vertex. The data model is untouched.
func (cs *CrossSection) Render(cam *camera.Camera, proj *camera.Projection) {
	cs.Object.Render(cam, proj)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_1D, cs.colormap.Texture())
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_3D, cs.tex)

	gl.BindVertexArray(cs.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, cs.vbo)

	gl.DrawArrays(gl.TRIANGLES, 0, int32(cs.VertexCount()))
}

// Destroy releases the per-instance GL objects. The shared program stays
// in the registry for other instances of the same kind.
func (cs *CrossSection) Destroy() {
	if cs.vao != 0 {
		gl.DeleteVertexArrays(1, &cs.vao)
		cs.vao = 0
	}
	if cs.vbo != 0 {
		gl.DeleteBuffers(1, &cs.vbo)
		cs.vbo = 0
	}
	if cs.tex != 0 {
		gl.DeleteTextures(1, &cs.tex)
		cs.tex = 0
	}
	cs.initialized = false
}

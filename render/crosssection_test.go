package render

import (
	"bytes"
	"log"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldview/colormap"
	"fieldview/field"
)

func testField(t *testing.T, nx, ny, nz int) *field.ScalarField {
	t.Helper()
	f, err := field.Generate(nx, ny, nz, func(x, y, z int) float32 {
		return float32(x + y + z)
	})
	require.NoError(t, err)
	return f
}

func TestConstructionDefaults(t *testing.T) {
	f := testField(t, 4, 5, 6)
	cs, err := NewCrossSection(NewBox(), f, mgl32.Vec3{})
	require.NoError(t, err)

	// Extents default to the field dimensions.
	xs, ys, zs := cs.Extent()
	assert.Equal(t, float32(4), xs)
	assert.Equal(t, float32(5), ys)
	assert.Equal(t, float32(6), zs)

	// The window defaults to the field's actual extrema.
	vmin, vmax := cs.Range()
	assert.Equal(t, f.Min(), vmin)
	assert.Equal(t, f.Max(), vmax)

	assert.Same(t, colormap.Viridis, cs.Colormap())
	assert.False(t, cs.Initialized())
}

func TestConstructionOptions(t *testing.T) {
	f := testField(t, 4, 4, 4)
	reg := NewProgramRegistry()
	cs, err := NewCrossSection(NewBox(), f, mgl32.Vec3{},
		WithExtent(10, 0, 30),
		WithRange(-1, 1),
		WithColormap(colormap.Plasma),
		WithPrograms(reg))
	require.NoError(t, err)

	xs, ys, zs := cs.Extent()
	assert.Equal(t, float32(10), xs)
	assert.Equal(t, float32(4), ys) // zero keeps the default
	assert.Equal(t, float32(30), zs)

	vmin, vmax := cs.Range()
	assert.Equal(t, float32(-1), vmin)
	assert.Equal(t, float32(1), vmax)
	assert.Same(t, colormap.Plasma, cs.Colormap())
	assert.Same(t, reg, cs.programs)
}

func TestEffectiveRadius(t *testing.T) {
	f := testField(t, 2, 2, 2)
	cs, err := NewCrossSection(NewBox(), f, mgl32.Vec3{}, WithExtent(3, 4, 12))
	require.NoError(t, err)
	// sqrt(9 + 16 + 144) = 13 exactly.
	assert.Equal(t, float32(13), cs.EffectiveRadius())
}

func TestMeshSpan(t *testing.T) {
	// Field shape (4,4,4), no offset, no explicit extents: world
	// positions span [-2, 2] on every axis.
	f := testField(t, 4, 4, 4)
	cs, err := NewCrossSection(NewBox(), f, mgl32.Vec3{})
	require.NoError(t, err)

	for axis := 0; axis < 3; axis++ {
		lo, hi := float32(0), float32(0)
		for i := 0; i < cs.VertexCount(); i++ {
			p := cs.vertices[i*vertexStride+axis]
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
		assert.Equal(t, float32(-2), lo)
		assert.Equal(t, float32(2), hi)
	}
}

func TestMeshOffset(t *testing.T) {
	f := testField(t, 4, 4, 4)
	cs, err := NewCrossSection(NewPlane(AxisZ, 0.5), f, mgl32.Vec3{10, 20, 30})
	require.NoError(t, err)

	// Offset is applied after scaling: x spans [8, 12].
	lo, hi := cs.vertices[0], cs.vertices[0]
	for i := 0; i < cs.VertexCount(); i++ {
		p := cs.vertices[i*vertexStride]
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	assert.Equal(t, float32(8), lo)
	assert.Equal(t, float32(12), hi)

	// Texture coordinates are untouched by offset or extent.
	for i := 0; i < cs.VertexCount(); i++ {
		w := cs.vertices[i*vertexStride+5]
		assert.Equal(t, float32(0.5), w)
	}
}

func TestVertexCountIndependentOfResolution(t *testing.T) {
	for _, n := range []int{2, 8, 32} {
		f := testField(t, n, n, n)

		plane, err := NewCrossSection(NewPlane(AxisX, 0.25), f, mgl32.Vec3{})
		require.NoError(t, err)
		assert.Equal(t, 6, plane.VertexCount())

		box, err := NewCrossSection(NewBox(), f, mgl32.Vec3{})
		require.NoError(t, err)
		assert.Equal(t, 36, box.VertexCount())
	}
}

func TestSetFieldBeforeInitialize(t *testing.T) {
	f := testField(t, 3, 3, 3)
	cs, err := NewCrossSection(NewBox(), f, mgl32.Vec3{})
	require.NoError(t, err)
	vminBefore, vmaxBefore := cs.Range()

	same, err := field.Generate(3, 3, 3, func(x, y, z int) float32 { return 42 })
	require.NoError(t, err)
	require.NoError(t, cs.SetField(same))
	assert.Equal(t, float32(42), cs.Field().At(1, 1, 1))

	// Replacement keeps the current window; it is never recomputed.
	vmin, vmax := cs.Range()
	assert.Equal(t, vminBefore, vmin)
	assert.Equal(t, vmaxBefore, vmax)

	// Shape and extents are unchanged by a successful replacement.
	xs, ys, zs := cs.Extent()
	assert.Equal(t, [3]float32{3, 3, 3}, [3]float32{xs, ys, zs})
}

func TestSetFieldMismatch(t *testing.T) {
	f := testField(t, 3, 3, 3)
	cs, err := NewCrossSection(NewBox(), f, mgl32.Vec3{})
	require.NoError(t, err)

	wrong := testField(t, 3, 3, 4)
	err = cs.SetField(wrong)
	var mismatch *field.MismatchError
	require.ErrorAs(t, err, &mismatch)

	// The original samples survive the failed replacement.
	assert.Equal(t, float32(3), cs.Field().At(1, 1, 1))
}

type emptyModel struct{}

func (emptyModel) Kind() string            { return "empty" }
func (emptyModel) BaseModel() []mgl32.Vec3 { return nil }

func TestEmptyModelRejected(t *testing.T) {
	f := testField(t, 2, 2, 2)
	_, err := NewCrossSection(emptyModel{}, f, mgl32.Vec3{})
	require.ErrorIs(t, err, ErrEmptyModel)
}

func TestNilArgumentsRejected(t *testing.T) {
	f := testField(t, 2, 2, 2)
	_, err := NewCrossSection(nil, f, mgl32.Vec3{})
	assert.Error(t, err)
	_, err = NewCrossSection(NewBox(), nil, mgl32.Vec3{})
	assert.Error(t, err)
}

func TestOversizedFieldAdvisory(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	// A 300-voxel dimension logs an advisory but construction succeeds.
	f := testField(t, 300, 2, 2)
	cs, err := NewCrossSection(NewPlane(AxisZ, 0.5), f, mgl32.Vec3{})
	require.NoError(t, err)
	assert.NotNil(t, cs)
	assert.Contains(t, buf.String(), "256")
}

func TestProgramRegistryHas(t *testing.T) {
	reg := NewProgramRegistry()
	assert.False(t, reg.Has("plane"))
}

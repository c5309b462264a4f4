// Package field holds 3D scalar sample data and the CPU-side math that
// prepares it for texture upload.
package field

import (
	"fmt"

	"github.com/chewxy/math32"
)

// ShapeError reports a field constructed with the wrong number of dimensions.
type ShapeError struct {
	Dims int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("expected a 3D field (was %d-dimensional)", e.Dims)
}

// MismatchError reports a replacement field whose shape differs from the
// field it would replace.
type MismatchError struct {
	Want [3]int
	Got  [3]int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("field shape does not match (expected %dx%dx%d, got %dx%dx%d)",
		e.Want[0], e.Want[1], e.Want[2], e.Got[0], e.Got[1], e.Got[2])
}

// ScalarField is a 3D array of float32 samples with shape (nx, ny, nz).
// Data is stored x-fastest: data[(z*ny+y)*nx + x]. The shape is fixed at
// construction; Replace swaps the samples but never the shape.
type ScalarField struct {
	data []float32
	nx   int
	ny   int
	nz   int
}

// New builds a scalar field from flat sample data and its shape. The shape
// must have exactly three dimensions whose product equals len(data).
func New(data []float32, shape ...int) (*ScalarField, error) {
	if len(shape) != 3 {
		return nil, &ShapeError{Dims: len(shape)}
	}
	nx, ny, nz := shape[0], shape[1], shape[2]
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("field dimensions must be positive (got %dx%dx%d)", nx, ny, nz)
	}
	if len(data) != nx*ny*nz {
		return nil, fmt.Errorf("field data has %d samples, shape %dx%dx%d needs %d",
			len(data), nx, ny, nz, nx*ny*nz)
	}
	f := &ScalarField{
		data: make([]float32, len(data)),
		nx:   nx,
		ny:   ny,
		nz:   nz,
	}
	copy(f.data, data)
	return f, nil
}

// Generate fills a field of the given shape by evaluating fn at every
// sample index.
func Generate(nx, ny, nz int, fn func(x, y, z int) float32) (*ScalarField, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("field dimensions must be positive (got %dx%dx%d)", nx, ny, nz)
	}
	data := make([]float32, nx*ny*nz)
	i := 0
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				data[i] = fn(x, y, z)
				i++
			}
		}
	}
	return &ScalarField{data: data, nx: nx, ny: ny, nz: nz}, nil
}

// Shape returns (nx, ny, nz).
func (f *ScalarField) Shape() (int, int, int) { return f.nx, f.ny, f.nz }

// MaxDim returns the largest of the three dimensions.
func (f *ScalarField) MaxDim() int {
	m := f.nx
	if f.ny > m {
		m = f.ny
	}
	if f.nz > m {
		m = f.nz
	}
	return m
}

// Len returns the total sample count.
func (f *ScalarField) Len() int { return len(f.data) }

// At returns the sample at (x, y, z). Indices are not range checked beyond
// the slice bounds.
func (f *ScalarField) At(x, y, z int) float32 {
	return f.data[(z*f.ny+y)*f.nx+x]
}

// Min returns the smallest sample value.
func (f *ScalarField) Min() float32 {
	m := f.data[0]
	for _, v := range f.data[1:] {
		m = math32.Min(m, v)
	}
	return m
}

// Max returns the largest sample value.
func (f *ScalarField) Max() float32 {
	m := f.data[0]
	for _, v := range f.data[1:] {
		m = math32.Max(m, v)
	}
	return m
}

// Normalized returns the samples linearly remapped so vmin maps to 0 and
// vmax maps to 1. Values outside the window are not clamped here; the
// shader clamps at sample time. A degenerate window (vmax == vmin) maps
// every sample to 0 so no Inf or NaN ever reaches the GPU.
func (f *ScalarField) Normalized(vmin, vmax float32) []float32 {
	out := make([]float32, len(f.data))
	span := vmax - vmin
	if span == 0 {
		return out
	}
	inv := 1.0 / span
	for i, v := range f.data {
		out[i] = (v - vmin) * inv
	}
	return out
}

// Replace swaps in the samples of other. The shapes must match exactly;
// on mismatch the receiver is left untouched and a *MismatchError is
// returned.
func (f *ScalarField) Replace(other *ScalarField) error {
	if other.nx != f.nx || other.ny != f.ny || other.nz != f.nz {
		return &MismatchError{
			Want: [3]int{f.nx, f.ny, f.nz},
			Got:  [3]int{other.nx, other.ny, other.nz},
		}
	}
	copy(f.data, other.data)
	return nil
}

// sliceIndex maps a normalized position in [0,1] to the nearest sample
// index along an axis of n samples.
func sliceIndex(t float32, n int) int {
	t = math32.Min(math32.Max(t, 0), 1)
	return int(math32.Round(t * float32(n-1)))
}

// SliceX extracts the 2D slice nearest the normalized position u in [0,1]
// along the x axis, as z rows of ny samples. Used by the streaming server.
func (f *ScalarField) SliceX(u float32) []float32 {
	x := sliceIndex(u, f.nx)
	out := make([]float32, f.ny*f.nz)
	i := 0
	for z := 0; z < f.nz; z++ {
		for y := 0; y < f.ny; y++ {
			out[i] = f.data[(z*f.ny+y)*f.nx+x]
			i++
		}
	}
	return out
}

// SliceY extracts the 2D slice nearest the normalized position v in [0,1]
// along the y axis, as z rows of nx samples.
func (f *ScalarField) SliceY(v float32) []float32 {
	y := sliceIndex(v, f.ny)
	out := make([]float32, f.nx*f.nz)
	i := 0
	for z := 0; z < f.nz; z++ {
		row := (z*f.ny + y) * f.nx
		copy(out[i:i+f.nx], f.data[row:row+f.nx])
		i += f.nx
	}
	return out
}

// SliceZ extracts the 2D slice nearest the normalized depth w in [0,1],
// as y rows of nx samples.
func (f *ScalarField) SliceZ(w float32) []float32 {
	z := sliceIndex(w, f.nz)
	out := make([]float32, f.nx*f.ny)
	copy(out, f.data[z*f.nx*f.ny:(z+1)*f.nx*f.ny])
	return out
}

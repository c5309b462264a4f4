// Package colormap provides lookup colormaps realized as 1D textures.
package colormap

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Size is the number of entries in every lookup table.
const Size = 256

// Colormap maps a normalized scalar in [0,1] to an RGB color through a
// fixed lookup table. The GL texture is created lazily on first use and
// shared by every object that renders with this map.
type Colormap struct {
	name string
	lut  [Size][3]float32
	tex  uint32
}

// newColormap expands anchor colors into a full lookup table by linear
// interpolation between adjacent anchors.
func newColormap(name string, anchors [][3]float32) *Colormap {
	cm := &Colormap{name: name}
	n := len(anchors)
	for i := 0; i < Size; i++ {
		t := float32(i) / float32(Size-1) * float32(n-1)
		lo := int(t)
		if lo >= n-1 {
			lo = n - 2
		}
		frac := t - float32(lo)
		for c := 0; c < 3; c++ {
			cm.lut[i][c] = anchors[lo][c] + (anchors[lo+1][c]-anchors[lo][c])*frac
		}
	}
	return cm
}

// Name returns the colormap's name.
func (cm *Colormap) Name() string { return cm.name }

// At looks up the color for a normalized value, clamping to [0,1].
func (cm *Colormap) At(v float32) [3]float32 {
	v = math32.Min(math32.Max(v, 0), 1)
	return cm.lut[int(v*float32(Size-1))]
}

// Texture returns the GL handle of the 1D lookup texture, creating and
// uploading it on first call. Must be called with a current GL context on
// the GL thread.
func (cm *Colormap) Texture() uint32 {
	if cm.tex != 0 {
		return cm.tex
	}
	flat := make([]float32, Size*3)
	for i, rgb := range cm.lut {
		flat[i*3] = rgb[0]
		flat[i*3+1] = rgb[1]
		flat[i*3+2] = rgb[2]
	}
	gl.GenTextures(1, &cm.tex)
	gl.BindTexture(gl.TEXTURE_1D, cm.tex)
	gl.TexParameteri(gl.TEXTURE_1D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_1D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_1D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage1D(gl.TEXTURE_1D, 0, gl.RGB32F, Size, 0, gl.RGB, gl.FLOAT, gl.Ptr(flat))
	return cm.tex
}

// Destroy releases the GL texture, if one was created.
func (cm *Colormap) Destroy() {
	if cm.tex != 0 {
		gl.DeleteTextures(1, &cm.tex)
		cm.tex = 0
	}
}

// ByName returns the named colormap, or Viridis if the name is unknown.
func ByName(name string) *Colormap {
	for _, cm := range All {
		if cm.Name() == name {
			return cm
		}
	}
	return Viridis
}
